package analytics

import (
	"math"
	"strconv"
	"time"

	"teamnest/models"
)

// SubmissionPoint is one entry of the per-user submission time series.
type SubmissionPoint struct {
	Marks     string    `json:"marks"`
	FullMarks int       `json:"fullMarks"`
	CreatedAt time.Time `json:"createdAt"`
}

// Accuracy is the overall marked-submission score percentage, rounded to
// two decimals. Submissions still carrying the unmarked sentinel (or
// unparseable marks) count in neither numerator nor denominator. Returns
// nil when nothing is marked so the client can render "N/A" instead of a
// division by zero.
func Accuracy(points []SubmissionPoint) *float64 {
	var totalMarks, totalFullMarks int
	for _, p := range points {
		if p.Marks == models.MarksUnmarked {
			continue
		}
		marks, err := strconv.Atoi(p.Marks)
		if err != nil {
			continue
		}
		totalMarks += marks
		totalFullMarks += p.FullMarks
	}

	if totalFullMarks == 0 {
		return nil
	}

	accuracy := math.Round(float64(totalMarks)/float64(totalFullMarks)*100*100) / 100
	return &accuracy
}

// TeamTaskLoad pairs a membership's assigned task count with how many of
// those tasks the member has submitted.
type TeamTaskLoad struct {
	TeamID    uint  `json:"team_id"`
	Assigned  int64 `json:"assigned"`
	Submitted int64 `json:"submitted"`
}

// PendingTasks sums assigned-minus-submitted per membership group. The
// per-group computation matters: a surplus submission in one team never
// offsets a missing one in another.
func PendingTasks(loads []TeamTaskLoad) int64 {
	var pending int64
	for _, load := range loads {
		if diff := load.Assigned - load.Submitted; diff > 0 {
			pending += diff
		}
	}
	return pending
}

// UpcomingSessions counts sessions starting strictly after now; a session
// starting exactly at now is excluded.
func UpcomingSessions(startTimes []time.Time, now time.Time) int {
	count := 0
	for _, start := range startTimes {
		if start.After(now) {
			count++
		}
	}
	return count
}
