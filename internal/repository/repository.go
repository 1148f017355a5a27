package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"reminder-service/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique constraint is violated.
var ErrDuplicate = errors.New("record already exists")

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, full_name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at`
	var createdAt, updatedAt time.Time
	err := r.db.QueryRowContext(ctx, query, user.ID, user.FullName, user.Email, user.Password).
		Scan(&createdAt, &updatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.CreatedAt = createdAt.Format(time.RFC3339)
	user.UpdatedAt = updatedAt.Format(time.RFC3339)
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, full_name, email, password_hash
		FROM users
		WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, full_name, email, password_hash
		FROM users
		WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *Repository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.FullName, &user.Email, &user.Password)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateReminder creates a new reminder in the database
func (r *Repository) CreateReminder(ctx context.Context, reminder *models.Reminder) error {
	query := `
		INSERT INTO reminders (id, title, description, due_date, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at`
	var createdAt, updatedAt time.Time
	err := r.db.QueryRowContext(ctx, query,
		reminder.ID, reminder.Title, reminder.Description, reminder.DueDate, reminder.CreatedBy).
		Scan(&createdAt, &updatedAt)
	if err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	reminder.CreatedAt = createdAt.Format(time.RFC3339)
	reminder.UpdatedAt = updatedAt.Format(time.RFC3339)
	return nil
}

const reminderColumns = `id, title, description, due_date, created_by`

// FindReminderByID retrieves a reminder by id
func (r *Repository) FindReminderByID(ctx context.Context, id string) (*models.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE id = $1`
	reminder := &models.Reminder{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&reminder.ID, &reminder.Title, &reminder.Description, &reminder.DueDate, &reminder.CreatedBy)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find reminder: %w", err)
	}
	return reminder, nil
}

// FindAllReminders retrieves every reminder in the store
func (r *Repository) FindAllReminders(ctx context.Context) ([]models.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders`
	return r.queryReminders(ctx, query)
}

// FindRemindersByUser retrieves all reminders created by the given user
func (r *Repository) FindRemindersByUser(ctx context.Context, userID string) ([]models.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE created_by = $1`
	return r.queryReminders(ctx, query, userID)
}

// FindUpcomingReminders retrieves the user's reminders whose due date is at or
// after the cutoff instant. due_date is TEXT, so this is a lexicographic
// comparison, which orders correctly for fixed-width ISO-8601 values.
func (r *Repository) FindUpcomingReminders(ctx context.Context, userID, cutoff string) ([]models.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE created_by = $1 AND due_date >= $2`
	return r.queryReminders(ctx, query, userID, cutoff)
}

// FindRemindersDueOn retrieves the user's reminders whose due date equals the
// given YYYY-MM-DD label exactly.
func (r *Repository) FindRemindersDueOn(ctx context.Context, userID, day string) ([]models.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE created_by = $1 AND due_date = $2`
	return r.queryReminders(ctx, query, userID, day)
}

// FindAllRemindersDueOn retrieves every reminder due on the given day,
// regardless of owner. Used by the notification sweep.
func (r *Repository) FindAllRemindersDueOn(ctx context.Context, day string) ([]models.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE due_date = $1`
	return r.queryReminders(ctx, query, day)
}

// UpdateReminder merges the supplied fields into an existing reminder.
// Nil fields keep their current value.
func (r *Repository) UpdateReminder(ctx context.Context, id string, upd models.ReminderUpdate) (*models.Reminder, error) {
	query := `
		UPDATE reminders
		SET title = COALESCE($2, title),
		    description = COALESCE($3, description),
		    due_date = COALESCE($4, due_date),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING ` + reminderColumns
	reminder := &models.Reminder{}
	err := r.db.QueryRowContext(ctx, query, id, upd.Title, upd.Description, upd.DueDate).
		Scan(&reminder.ID, &reminder.Title, &reminder.Description, &reminder.DueDate, &reminder.CreatedBy)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}
	return reminder, nil
}

// DeleteReminder removes a reminder and returns the deleted record
func (r *Repository) DeleteReminder(ctx context.Context, id string) (*models.Reminder, error) {
	query := `DELETE FROM reminders WHERE id = $1 RETURNING ` + reminderColumns
	reminder := &models.Reminder{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&reminder.ID, &reminder.Title, &reminder.Description, &reminder.DueDate, &reminder.CreatedBy)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete reminder: %w", err)
	}
	return reminder, nil
}

func (r *Repository) queryReminders(ctx context.Context, query string, args ...any) ([]models.Reminder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminders: %w", err)
	}
	defer rows.Close()

	var out []models.Reminder
	for rows.Next() {
		var reminder models.Reminder
		if err := rows.Scan(&reminder.ID, &reminder.Title, &reminder.Description,
			&reminder.DueDate, &reminder.CreatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		out = append(out, reminder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reminders: %w", err)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
