package controller

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamnest/analytics"
)

// The team report is consumed by clients keyed on taskId/materialId per
// entry; the id key must match the entity flavor.
func TestTeamAnalyticsResponseKeys(t *testing.T) {
	resp := TeamAnalyticsResponse{
		TeamFeedbacks: []analytics.EmotionCount{{Emotion: "POSITIVE", Count: 2}},
		TaskFeedbacksEmotions: []TaskEmotions{
			{TaskID: 7, Description: "essay", PositiveFeedbackCount: 1},
		},
		TaskStarsCount: []TaskStars{
			{TaskID: 7, Description: "essay", StarRollup: analytics.StarRollup{TotalFeedbackCount: 1}},
		},
		MaterialFeedbacksEmotions: []MaterialEmotions{
			{MaterialID: 3, Description: "slides", NegativeFeedbackCount: 1},
		},
		MaterialStarsCount: []MaterialStars{
			{MaterialID: 3, Description: "slides"},
		},
	}

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	taskEmotions := decoded["taskFeedbacksEmotions"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(7), taskEmotions["taskId"])
	assert.NotContains(t, taskEmotions, "targetId")

	taskStars := decoded["taskStarsCount"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(7), taskStars["taskId"])
	assert.Contains(t, taskStars, "totalFeedbackCount")

	materialEmotions := decoded["materialFeedbacksEmotions"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(3), materialEmotions["materialId"])
	assert.NotContains(t, materialEmotions, "taskId")

	materialStars := decoded["materialStarsCount"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(3), materialStars["materialId"])
	assert.Contains(t, materialStars, "fullCommunication")
}
