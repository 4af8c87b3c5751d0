package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamnest/models"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name   string
		points []SubmissionPoint
		want   *float64
	}{
		{
			name:   "no submissions",
			points: nil,
			want:   nil,
		},
		{
			name: "only unmarked submissions",
			points: []SubmissionPoint{
				{Marks: models.MarksUnmarked, FullMarks: 100},
				{Marks: models.MarksUnmarked, FullMarks: 50},
			},
			want: nil,
		},
		{
			name: "unmarked excluded from both sides of the ratio",
			points: []SubmissionPoint{
				{Marks: "80", FullMarks: 100},
				{Marks: models.MarksUnmarked, FullMarks: 50},
				{Marks: "40", FullMarks: 50},
			},
			want: ptr(80.0),
		},
		{
			name: "unparseable marks are skipped",
			points: []SubmissionPoint{
				{Marks: "10", FullMarks: 20},
				{Marks: "n/a", FullMarks: 100},
			},
			want: ptr(50.0),
		},
		{
			name: "rounded to two decimals",
			points: []SubmissionPoint{
				{Marks: "1", FullMarks: 3},
			},
			want: ptr(33.33),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Accuracy(tt.points)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 0.001)
		})
	}
}

func TestPendingTasks(t *testing.T) {
	t.Run("sums deficits per team", func(t *testing.T) {
		loads := []TeamTaskLoad{
			{TeamID: 1, Assigned: 5, Submitted: 3},
			{TeamID: 2, Assigned: 2, Submitted: 2},
		}
		assert.Equal(t, int64(2), PendingTasks(loads))
	})

	t.Run("surplus in one team never offsets another's deficit", func(t *testing.T) {
		loads := []TeamTaskLoad{
			{TeamID: 1, Assigned: 1, Submitted: 4},
			{TeamID: 2, Assigned: 3, Submitted: 0},
		}
		assert.Equal(t, int64(3), PendingTasks(loads))
	})

	t.Run("no memberships", func(t *testing.T) {
		assert.Equal(t, int64(0), PendingTasks(nil))
	})
}

func TestUpcomingSessions(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	starts := []time.Time{
		now.Add(-time.Hour),   // already started
		now,                   // starting exactly now is not upcoming
		now.Add(time.Minute),  // upcoming
		now.Add(48 * time.Hour),
	}

	assert.Equal(t, 2, UpcomingSessions(starts, now))
}

func ptr(f float64) *float64 {
	return &f
}
