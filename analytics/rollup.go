// Package analytics holds the pure aggregation math behind the team and
// user reports. Every function here is a side-effect-free transform of
// rows the controllers have already fetched, so the rollup semantics can
// be tested without a database.
package analytics

import (
	"teamnest/models"
)

// Stars per rating dimension a single feedback can award.
const maxStarsPerFeedback = 5

// EmotionCount is one bucket of the emotion rollup.
type EmotionCount struct {
	Emotion string `json:"emotion"`
	Count   int    `json:"count"`
}

// EmotionRollup groups feedback by emotion label, in first-seen order.
// Zero feedback yields an empty sequence, not a zero-filled one.
func EmotionRollup(feedbacks []models.Feedback) []EmotionCount {
	counts := make(map[string]int, len(feedbacks))
	order := make([]string, 0, len(feedbacks))
	for _, fb := range feedbacks {
		if _, seen := counts[fb.Emotion]; !seen {
			order = append(order, fb.Emotion)
		}
		counts[fb.Emotion]++
	}

	rollup := make([]EmotionCount, 0, len(order))
	for _, emotion := range order {
		rollup = append(rollup, EmotionCount{Emotion: emotion, Count: counts[emotion]})
	}
	return rollup
}

// StarRollup sums the star ratings across a target's feedback set. The
// Full* fields are the theoretical ceilings (5 per feedback); these are
// additive rollups, never averages, so a zero-feedback target reports
// all zeros.
type StarRollup struct {
	TotalFeedbackCount       int `json:"totalFeedbackCount"`
	FullCommunication        int `json:"fullCommunication"`
	FullCollaboration        int `json:"fullCollaboration"`
	FullAccountability       int `json:"fullAccountability"`
	TotalCommunicationStars  int `json:"totalCommunicationStars"`
	TotalCollaborationStars  int `json:"totalCollaborationStars"`
	TotalAccountabilityStars int `json:"totalAccountabilityStars"`
}

// Stars computes the star rollup for one target's feedback set.
func Stars(feedbacks []models.Feedback) StarRollup {
	r := StarRollup{
		TotalFeedbackCount: len(feedbacks),
		FullCommunication:  maxStarsPerFeedback * len(feedbacks),
		FullCollaboration:  maxStarsPerFeedback * len(feedbacks),
		FullAccountability: maxStarsPerFeedback * len(feedbacks),
	}
	for _, fb := range feedbacks {
		r.TotalCommunicationStars += fb.Communication
		r.TotalCollaborationStars += fb.Collaboration
		r.TotalAccountabilityStars += fb.Accountability
	}
	return r
}

// PositiveNegative counts POSITIVE and NEGATIVE labels; unlabeled feedback
// lands in neither bucket.
func PositiveNegative(feedbacks []models.Feedback) (positive, negative int) {
	for _, fb := range feedbacks {
		switch fb.Emotion {
		case models.EmotionPositive:
			positive++
		case models.EmotionNegative:
			negative++
		}
	}
	return positive, negative
}

// GroupByTarget indexes a feedback set by the target id the key function
// extracts. Feedback the key function rejects is dropped.
func GroupByTarget(feedbacks []models.Feedback, key func(models.Feedback) (uint, bool)) map[uint][]models.Feedback {
	grouped := make(map[uint][]models.Feedback)
	for _, fb := range feedbacks {
		if id, ok := key(fb); ok {
			grouped[id] = append(grouped[id], fb)
		}
	}
	return grouped
}

// TaskKey extracts the task target of a feedback.
func TaskKey(fb models.Feedback) (uint, bool) {
	if fb.ForTaskID == nil {
		return 0, false
	}
	return *fb.ForTaskID, true
}

// MaterialKey extracts the material target of a feedback.
func MaterialKey(fb models.Feedback) (uint, bool) {
	if fb.ForMaterialID == nil {
		return 0, false
	}
	return *fb.ForMaterialID, true
}
