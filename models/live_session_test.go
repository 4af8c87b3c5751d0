package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLiveSessionStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  string
	}{
		{"starts later", now.Add(time.Hour), now.Add(2 * time.Hour), SessionUpcoming},
		{"in progress", now.Add(-time.Hour), now.Add(time.Hour), SessionLive},
		{"already ended", now.Add(-2 * time.Hour), now.Add(-time.Hour), SessionOver},
		{"starts exactly now", now, now.Add(time.Hour), SessionUpcoming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := LiveSession{StartTime: tt.start, EndTime: tt.end}
			assert.Equal(t, tt.want, session.Status(now))
		})
	}
}
