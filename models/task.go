package models

import (
	"time"

	"gorm.io/gorm"
)

// MarksUnmarked is the sentinel a submission carries until the leader
// grades it. Unmarked submissions are excluded from accuracy math.
const MarksUnmarked = "unmarked"

// Task is an assignment owned by a team
type Task struct {
	gorm.Model
	OwnerID     uint      `gorm:"not null;index" json:"owner_id"`
	TeamID      uint      `gorm:"not null;index" json:"team_id"`
	Description string    `gorm:"not null" json:"description"`
	Document    string    `gorm:"not null" json:"document"`
	Deadline    time.Time `gorm:"not null" json:"deadline"`
	FullMarks   int       `gorm:"not null;default:100" json:"fullmarks"`

	// Relations
	Owner       User         `json:"-"`
	Team        Team         `json:"-"`
	Submissions []Submission `gorm:"foreignKey:TaskID" json:"submissions,omitempty"`
}

// Submission is one member's answer to a task. FullMarks is snapshotted
// from the task at submission time and is not re-synced afterwards.
type Submission struct {
	gorm.Model
	OwnerID     uint   `gorm:"not null;index;uniqueIndex:idx_task_owner" json:"owner_id"`
	TaskID      uint   `gorm:"not null;index;uniqueIndex:idx_task_owner" json:"task_id"`
	Description string `gorm:"not null" json:"description"`
	Document    string `gorm:"not null" json:"document"`
	FullMarks   int    `gorm:"not null" json:"full_marks"`
	Marks       string `gorm:"not null;default:'unmarked'" json:"marks"`

	// Relations
	Owner User `json:"-"`
	Task  Task `json:"-"`
}
