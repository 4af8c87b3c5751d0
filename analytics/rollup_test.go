package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"teamnest/models"
)

func fb(emotion string, comm, collab, acc int) models.Feedback {
	return models.Feedback{
		Emotion:        emotion,
		Communication:  comm,
		Collaboration:  collab,
		Accountability: acc,
	}
}

func TestEmotionRollup(t *testing.T) {
	tests := []struct {
		name      string
		feedbacks []models.Feedback
		want      []EmotionCount
	}{
		{
			name:      "empty set yields empty rollup",
			feedbacks: nil,
			want:      []EmotionCount{},
		},
		{
			name: "counts grouped in first-seen order",
			feedbacks: []models.Feedback{
				fb(models.EmotionNegative, 0, 0, 0),
				fb(models.EmotionPositive, 0, 0, 0),
				fb(models.EmotionNegative, 0, 0, 0),
				fb(models.EmotionNegative, 0, 0, 0),
			},
			want: []EmotionCount{
				{Emotion: models.EmotionNegative, Count: 3},
				{Emotion: models.EmotionPositive, Count: 1},
			},
		},
		{
			name: "unlabeled feedback gets its own bucket",
			feedbacks: []models.Feedback{
				fb("", 0, 0, 0),
				fb(models.EmotionPositive, 0, 0, 0),
			},
			want: []EmotionCount{
				{Emotion: "", Count: 1},
				{Emotion: models.EmotionPositive, Count: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EmotionRollup(tt.feedbacks)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStars(t *testing.T) {
	t.Run("empty set reports all zeros", func(t *testing.T) {
		assert.Equal(t, StarRollup{}, Stars(nil))
	})

	t.Run("ceilings are five per feedback and totals are sums", func(t *testing.T) {
		feedbacks := []models.Feedback{
			fb(models.EmotionPositive, 5, 4, 3),
			fb(models.EmotionNegative, 1, 2, 0),
			fb("", 3, 3, 3),
		}

		got := Stars(feedbacks)

		assert.Equal(t, 3, got.TotalFeedbackCount)
		assert.Equal(t, 15, got.FullCommunication)
		assert.Equal(t, 15, got.FullCollaboration)
		assert.Equal(t, 15, got.FullAccountability)
		assert.Equal(t, 9, got.TotalCommunicationStars)
		assert.Equal(t, 9, got.TotalCollaborationStars)
		assert.Equal(t, 6, got.TotalAccountabilityStars)
	})
}

func TestPositiveNegative(t *testing.T) {
	feedbacks := []models.Feedback{
		fb(models.EmotionPositive, 0, 0, 0),
		fb(models.EmotionPositive, 0, 0, 0),
		fb(models.EmotionNegative, 0, 0, 0),
		fb("", 0, 0, 0),
	}

	positive, negative := PositiveNegative(feedbacks)

	assert.Equal(t, 2, positive)
	assert.Equal(t, 1, negative)
}

func TestGroupByTarget(t *testing.T) {
	taskA, taskB := uint(7), uint(9)
	feedbacks := []models.Feedback{
		{ForTaskID: &taskA, Emotion: models.EmotionPositive},
		{ForTaskID: &taskB, Emotion: models.EmotionNegative},
		{ForTaskID: &taskA, Emotion: models.EmotionNegative},
		{ForMaterialID: &taskA}, // not a task feedback, must be dropped
	}

	grouped := GroupByTarget(feedbacks, TaskKey)

	assert.Len(t, grouped, 2)
	assert.Len(t, grouped[taskA], 2)
	assert.Len(t, grouped[taskB], 1)
}

func TestMaterialKey(t *testing.T) {
	materialID := uint(3)

	id, ok := MaterialKey(models.Feedback{ForMaterialID: &materialID})
	assert.True(t, ok)
	assert.Equal(t, materialID, id)

	_, ok = MaterialKey(models.Feedback{ForTaskID: &materialID})
	assert.False(t, ok)
}
