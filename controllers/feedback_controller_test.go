package controller

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"teamnest/models"
	"teamnest/sentiment"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	// TranslateError matches the production connection so unique-index
	// violations surface as gorm.ErrDuplicatedKey.
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	return db, mock
}

func feedbackTestApp(fc *FeedbackController, handler func(*FeedbackController) fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Post("/feedback", func(c *fiber.Ctx) error {
		user := &models.User{Role: models.RoleMember}
		user.ID = 9
		c.Locals("user", user)
		return handler(fc)(c)
	})
	return app
}

type envelope struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// A second team feedback from the same provider lands on the existing row:
// the insert carries the conflict clause updating text and emotion only,
// and the response reports an update, not a new record.
func TestGiveTeamFeedbackUpdatesExisting(t *testing.T) {
	db, mock := newTestDB(t)

	classifier := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"emotion":"NEGATIVE"}`))
	}))
	defer classifier.Close()

	fc := NewFeedbackController(db, log.New(io.Discard, "", 0), sentiment.NewClient(classifier.URL))
	app := feedbackTestApp(fc, func(fc *FeedbackController) fiber.Handler { return fc.GiveTeamFeedback })

	mock.ExpectQuery(`SELECT \* FROM "teams"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "leader_id"}).AddRow(1, 2))
	mock.ExpectQuery(`SELECT \* FROM "team_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "team_id", "member_id", "role", "status"}).
			AddRow(5, 1, 9, models.RoleMember, models.MemberStatusAccepted))
	mock.ExpectQuery(`SELECT \* FROM "feedbacks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "provider_id", "type", "target_id", "text", "emotion"}).
			AddRow(11, 9, models.FeedbackTypeTeam, 1, "first impression", "POSITIVE"))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "feedbacks" .+ON CONFLICT \("provider_id","type","target_id"\) DO UPDATE SET "emotion"=.+"text"=.+"updated_at"=.+RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	req := httptest.NewRequest(fiber.MethodPost, "/feedback?id=1",
		strings.NewReader(`{"text":"changed my mind"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Feedback updated successfully", body.Message)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// A second task feedback hits the unique index instead of updating: the
// violation maps to a 409 and nothing else is written.
func TestGiveTaskFeedbackRejectsDuplicate(t *testing.T) {
	db, mock := newTestDB(t)

	fc := NewFeedbackController(db, log.New(io.Discard, "", 0), sentiment.NewClient("http://localhost:0"))
	app := feedbackTestApp(fc, func(fc *FeedbackController) fiber.Handler { return fc.GiveTaskFeedback })

	mock.ExpectQuery(`SELECT \* FROM "tasks"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "team_id", "full_marks"}).AddRow(4, 1, 100))
	mock.ExpectQuery(`SELECT \* FROM "team_members"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "team_id", "member_id", "status"}).
			AddRow(5, 1, 9, models.MemberStatusAccepted))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "feedbacks"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	req := httptest.NewRequest(fiber.MethodPost, "/feedback?taskId=4",
		strings.NewReader(`{"text":"bad instructions","communication":3,"collaboration":4,"accountability":5}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, fiber.StatusConflict, body.StatusCode)
	assert.Equal(t, "You have already given feedback for this task", body.Message)

	assert.NoError(t, mock.ExpectationsWereMet())
}
