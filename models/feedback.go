package models

import "gorm.io/gorm"

// Feedback target types.
const (
	FeedbackTypeTeam     = "team"
	FeedbackTypeTask     = "task"
	FeedbackTypeMaterial = "material"
	FeedbackTypeMember   = "member"
)

// Emotion labels attached by the sentiment classifier. A feedback whose
// text matched neither heuristic keyword stays unlabeled.
const (
	EmotionPositive = "POSITIVE"
	EmotionNegative = "NEGATIVE"
)

// DuplicatePolicy names what happens when a provider submits feedback for
// a target they already reviewed.
type DuplicatePolicy int

const (
	// UpsertOnDuplicate updates text/emotion of the existing record in place.
	UpsertOnDuplicate DuplicatePolicy = iota
	// RejectOnDuplicate refuses the second submission with a conflict error.
	RejectOnDuplicate
)

// PolicyFor returns the duplicate policy for a feedback type. Team and
// member feedback update in place; task and material feedback reject a
// second submission. The split mirrors the product's per-entity behavior
// and is kept explicit rather than unified.
func PolicyFor(feedbackType string) DuplicatePolicy {
	switch feedbackType {
	case FeedbackTypeTask, FeedbackTypeMaterial:
		return RejectOnDuplicate
	default:
		return UpsertOnDuplicate
	}
}

// Feedback is one opinion record: at most one per (provider, type, target),
// enforced by the composite unique index rather than find-before-create.
type Feedback struct {
	gorm.Model
	ProviderID uint   `gorm:"not null;index;uniqueIndex:idx_feedback_once" json:"provider_id"`
	Type       string `gorm:"not null;uniqueIndex:idx_feedback_once" json:"type"` // team, task, material, member

	// TargetID denormalizes whichever For* reference matches Type so a
	// single unique index covers every feedback flavor.
	TargetID uint `gorm:"not null;uniqueIndex:idx_feedback_once" json:"-"`

	Text    string `json:"text"`
	Emotion string `json:"emotion"` // POSITIVE, NEGATIVE, or empty

	// Star ratings, 0 when the flow does not collect them
	Communication  int `gorm:"not null;default:0" json:"communication"`
	Collaboration  int `gorm:"not null;default:0" json:"collaboration"`
	Accountability int `gorm:"not null;default:0" json:"accountability"`

	// Exactly one of these is populated, matching Type. Member feedback
	// additionally records the team it was given in.
	ForTeamID     *uint `gorm:"index" json:"for_team,omitempty"`
	ForTaskID     *uint `gorm:"index" json:"for_task,omitempty"`
	ForMaterialID *uint `gorm:"index" json:"for_material,omitempty"`
	ForMemberID   *uint `gorm:"index" json:"for_member,omitempty"`

	// Relations
	Provider User `json:"-"`
}
