package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyFor(t *testing.T) {
	tests := []struct {
		feedbackType string
		want         DuplicatePolicy
	}{
		{FeedbackTypeTeam, UpsertOnDuplicate},
		{FeedbackTypeMember, UpsertOnDuplicate},
		{FeedbackTypeTask, RejectOnDuplicate},
		{FeedbackTypeMaterial, RejectOnDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.feedbackType, func(t *testing.T) {
			assert.Equal(t, tt.want, PolicyFor(tt.feedbackType))
		})
	}
}
