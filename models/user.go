package models

import (
	"time"

	"gorm.io/gorm"
)

// Role values a user can sign up with. A leader owns teams; a member joins
// them. The role on the account gates the leader-only route group.
const (
	RoleLeader = "leader"
	RoleMember = "member"
)

// User represents a user account in the system
type User struct {
	gorm.Model

	// Authentication fields
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`

	// The refresh token currently issued to this user. Rotated on every
	// refresh; a presented token that does not match is rejected.
	RefreshToken string `json:"-"`

	// Profile information
	FullName    string     `gorm:"not null" json:"full_name"`
	AvatarURL   string     `json:"avatar_url"`
	ContactNo   string     `json:"contact_no"`
	DOB         *time.Time `json:"dob,omitempty"`
	Address     string     `json:"address"`
	Language    string     `gorm:"default:'en'" json:"language"`
	Institution string     `json:"institution"`
	Expertise   string     `json:"expertise"`

	Role string `gorm:"not null;default:'member'" json:"role"` // leader, member

	IsActive bool `gorm:"default:true" json:"is_active"`

	// Relations
	TeamMemberships []TeamMember `gorm:"foreignKey:MemberID" json:"memberships,omitempty"`
	Submissions     []Submission `gorm:"foreignKey:OwnerID" json:"submissions,omitempty"`
}

// Sanitize clears credential material before the user is serialized into a
// response payload alongside other entities.
func (u *User) Sanitize() {
	u.PasswordHash = ""
	u.RefreshToken = ""
}
