package sentiment

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamnest/models"
	"teamnest/utils"
)

func TestClassifyRemote(t *testing.T) {
	t.Run("decodes the emotion label", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/sentiment", r.URL.Path)
			assert.Equal(t, "really enjoyed this", r.URL.Query().Get("text"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"emotion":"POSITIVE"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		emotion, err := client.Classify("really enjoyed this", ModeRemote)

		require.NoError(t, err)
		assert.Equal(t, models.EmotionPositive, emotion)
	})

	t.Run("trailing slash in base URL is tolerated", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/sentiment", r.URL.Path)
			w.Write([]byte(`{"emotion":"NEGATIVE"}`))
		}))
		defer server.Close()

		client := NewClient(server.URL + "/")
		emotion, err := client.Classify("text", ModeRemote)

		require.NoError(t, err)
		assert.Equal(t, models.EmotionNegative, emotion)
	})

	t.Run("non-success status surfaces as external service error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.Classify("text", ModeRemote)

		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, http.StatusBadRequest, appErr.Status)
		assert.Equal(t, "Sentiment Analysis API is not working", appErr.Message)
	})

	t.Run("unreachable service surfaces as external service error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := NewClient(server.URL)
		_, err := client.Classify("text", ModeRemote)

		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Sentiment Analysis API is not working", appErr.Message)
	})

	t.Run("malformed response surfaces as external service error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client := NewClient(server.URL)
		_, err := client.Classify("text", ModeRemote)

		var appErr *utils.AppError
		require.ErrorAs(t, err, &appErr)
	})
}

func TestHeuristic(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"good keyword", "this was a good session", models.EmotionPositive},
		{"bad keyword", "bad instructions", models.EmotionNegative},
		{"good wins over bad", "good effort, bad timing", models.EmotionPositive},
		{"neither keyword", "it was fine", ""},
		{"empty text", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Heuristic(tt.text))
		})
	}
}

func TestHeuristicMode(t *testing.T) {
	// Heuristic mode never touches the network
	client := NewClient("http://127.0.0.1:1")
	emotion, err := client.Classify("good stuff", ModeHeuristic)

	require.NoError(t, err)
	assert.Equal(t, models.EmotionPositive, emotion)
}
