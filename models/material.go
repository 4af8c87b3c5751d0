package models

import "gorm.io/gorm"

// Material is a study resource shared with a team
type Material struct {
	gorm.Model
	OwnerID     uint   `gorm:"not null;index" json:"owner_id"`
	TeamID      uint   `gorm:"not null;index" json:"team_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"not null" json:"description"`
	File        string `gorm:"not null" json:"file"`
	Type        string `gorm:"not null" json:"type"` // pdf, video, link, ...

	// Relations
	Owner User `json:"-"`
	Team  Team `json:"-"`
}
