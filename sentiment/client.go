package sentiment

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"teamnest/models"
	"teamnest/utils"
)

// Mode selects the classification strategy. Team and member feedback go to
// the external service; task and material feedback use the keyword
// heuristic.
type Mode int

const (
	ModeRemote Mode = iota
	ModeHeuristic
)

// Client labels feedback text with an emotion. The base URL is injected at
// construction time; handlers never read the environment themselves.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// No explicit timeout: rely on the transport defaults
		http: http.DefaultClient,
	}
}

// Classify returns the emotion label for text under the given mode. Remote
// failures are single-attempt and surface as an ExternalServiceError.
func (c *Client) Classify(text string, mode Mode) (string, error) {
	if mode == ModeHeuristic {
		return Heuristic(text), nil
	}
	return c.classifyRemote(text)
}

func (c *Client) classifyRemote(text string) (string, error) {
	endpoint := fmt.Sprintf("%s/sentiment?text=%s", c.baseURL, url.QueryEscape(text))

	resp, err := c.http.Post(endpoint, "application/json", nil)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"endpoint": c.baseURL,
		}).WithError(err).Error("sentiment API unreachable")
		return "", utils.NewExternalServiceError("Sentiment Analysis API is not working", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logrus.WithFields(logrus.Fields{
			"endpoint": c.baseURL,
			"status":   resp.StatusCode,
		}).Error("sentiment API returned non-success status")
		return "", utils.NewExternalServiceError("Sentiment Analysis API is not working",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body struct {
		Emotion string `json:"emotion"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", utils.NewExternalServiceError("Sentiment Analysis API is not working", err)
	}

	return body.Emotion, nil
}

// Heuristic labels text by keyword: "good" wins over "bad", anything else
// stays unlabeled.
func Heuristic(text string) string {
	if strings.Contains(text, "good") {
		return models.EmotionPositive
	}
	if strings.Contains(text, "bad") {
		return models.EmotionNegative
	}
	return ""
}
