package models

import (
	"time"

	"gorm.io/gorm"
)

// Computed live-session status values relative to the request instant.
const (
	SessionUpcoming = "upcoming"
	SessionLive     = "live"
	SessionOver     = "over"
)

// LiveSession is a scheduled meeting for a team
type LiveSession struct {
	gorm.Model
	OwnerID   uint      `gorm:"not null;index" json:"owner_id"`
	TeamID    uint      `gorm:"not null;index" json:"team_id"`
	Topic     string    `gorm:"not null" json:"topic"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	// Relations
	Owner User `json:"-"`
	Team  Team `json:"-"`
}

// Status buckets the session against now: started and not ended is live,
// ended is over, otherwise upcoming.
func (s *LiveSession) Status(now time.Time) string {
	if s.StartTime.Before(now) {
		if s.EndTime.Before(now) {
			return SessionOver
		}
		return SessionLive
	}
	return SessionUpcoming
}
