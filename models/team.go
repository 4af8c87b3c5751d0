package models

import "gorm.io/gorm"

// Membership lifecycle: a join request starts pending and is either
// accepted by the leader or deleted (reject/leave/remove).
const (
	MemberStatusPending  = "pending"
	MemberStatusAccepted = "accepted"
)

// Team represents a collaboration group owned by a leader
type Team struct {
	gorm.Model
	TeamName    string `gorm:"not null;index" json:"teamname"`
	Thumbnail   string `gorm:"not null" json:"thumbnail"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"not null" json:"description"`
	Category    string `gorm:"not null;index" json:"category"`

	LeaderID uint `gorm:"not null;index" json:"leader_id"`

	// Relations
	Leader       User          `json:"-"`
	Members      []TeamMember  `gorm:"foreignKey:TeamID" json:"members,omitempty"`
	Tasks        []Task        `gorm:"foreignKey:TeamID" json:"tasks,omitempty"`
	Materials    []Material    `gorm:"foreignKey:TeamID" json:"materials,omitempty"`
	LiveSessions []LiveSession `gorm:"foreignKey:TeamID" json:"live_sessions,omitempty"`
}

// TeamMember binds a user to a team with a role and an approval status
type TeamMember struct {
	gorm.Model
	TeamID   uint `gorm:"not null;index;uniqueIndex:idx_team_member" json:"team_id"`
	MemberID uint `gorm:"not null;index;uniqueIndex:idx_team_member" json:"member_id"`

	Role   string `gorm:"not null" json:"role"`                      // leader, member
	Status string `gorm:"not null;default:'pending'" json:"status"` // pending, accepted

	// Relations
	Team   Team `json:"-"`
	Member User `json:"-"`
}
