package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reminder-service/internal/models"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

var reminderCols = []string{"id", "title", "description", "due_date", "created_by"}

func TestCreateUser(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("u1", "Jane Doe", "a@x.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	user := &models.User{ID: "u1", FullName: "Jane Doe", Email: "a@x.com", Password: "hash"}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	assert.Equal(t, now.Format(time.RFC3339), user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.CreateUser(context.Background(), &models.User{ID: "u1", Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestFindUserByIDNotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name", "email", "password_hash"}))

	_, err := repo.FindUserByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindUpcomingReminders(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("due_date >= $2")).
		WithArgs("u1", "2026-03-05T10:00:00Z").
		WillReturnRows(sqlmock.NewRows(reminderCols).
			AddRow("r1", "dentist", "checkup", "2099-01-01T00:00:00Z", "u1"))

	got, err := repo.FindUpcomingReminders(context.Background(), "u1", "2026-03-05T10:00:00Z")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindRemindersDueOn(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("due_date = $2")).
		WithArgs("u1", "2026-03-05").
		WillReturnRows(sqlmock.NewRows(reminderCols))

	got, err := repo.FindRemindersDueOn(context.Background(), "u1", "2026-03-05")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateReminderPartialArgs(t *testing.T) {
	repo, mock := newMock(t)
	title := "new title"

	// nil description and due date pass through as NULL for COALESCE
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE reminders")).
		WithArgs("r1", "new title", nil, nil).
		WillReturnRows(sqlmock.NewRows(reminderCols).
			AddRow("r1", "new title", "old desc", "2099-01-01", "u1"))

	got, err := repo.UpdateReminder(context.Background(), "r1", models.ReminderUpdate{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "new title", got.Title)
	assert.Equal(t, "old desc", got.Description)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReminder(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM reminders")).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows(reminderCols).
			AddRow("r1", "dentist", "checkup", "2099-01-01", "u1"))

	got, err := repo.DeleteReminder(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", got.ID)
}

func TestDeleteReminderNotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM reminders")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(reminderCols))

	_, err := repo.DeleteReminder(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
