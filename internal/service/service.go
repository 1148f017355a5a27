package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"reminder-service/internal/auth"
	"reminder-service/internal/models"
	"reminder-service/internal/notify"
	"reminder-service/internal/repository"
)

// Store is the persistence surface the service depends on.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)

	CreateReminder(ctx context.Context, reminder *models.Reminder) error
	FindReminderByID(ctx context.Context, id string) (*models.Reminder, error)
	FindAllReminders(ctx context.Context) ([]models.Reminder, error)
	FindRemindersByUser(ctx context.Context, userID string) ([]models.Reminder, error)
	FindUpcomingReminders(ctx context.Context, userID, cutoff string) ([]models.Reminder, error)
	FindRemindersDueOn(ctx context.Context, userID, day string) ([]models.Reminder, error)
	FindAllRemindersDueOn(ctx context.Context, day string) ([]models.Reminder, error)
	UpdateReminder(ctx context.Context, id string, upd models.ReminderUpdate) (*models.Reminder, error)
	DeleteReminder(ctx context.Context, id string) (*models.Reminder, error)
}

// Service handles business logic
type Service struct {
	repo      Store
	log       *logrus.Logger
	sink      notify.Sink
	jwtSecret string

	// now is swappable in tests
	now func() time.Time
}

// NewService initializes a new service
func NewService(repo Store, log *logrus.Logger, sink notify.Sink, jwtSecret string) *Service {
	return &Service{
		repo:      repo,
		log:       log,
		sink:      sink,
		jwtSecret: jwtSecret,
		now:       time.Now,
	}
}

// Register creates a new user with a hashed password
func (s *Service) Register(ctx context.Context, fullName, email, password string) (*models.User, error) {
	if fullName == "" || email == "" || len(fullName) < 3 {
		return nil, ErrInvalidName
	}

	// availability is checked before the password: a taken email is a
	// conflict even when the password would also be rejected
	if _, err := s.repo.FindUserByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check user availability: %w", err)
	}

	if len(password) < 6 {
		return nil, ErrInvalidPassword
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:       uuid.New().String(),
		FullName: fullName,
		Email:    email,
		Password: hash,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		// unique violation lost the race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a signed identity token
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, ErrMissingCredentials
	}

	user, err := s.repo.FindUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil, ErrUserNotFound
	}
	if err != nil {
		return "", nil, err
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", nil, ErrPasswordMismatch
	}

	token, err := auth.MakeToken(user.ID, user.FullName, user.Email, s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return token, user, nil
}

// CreateReminder validates and persists a new reminder
func (s *Service) CreateReminder(ctx context.Context, title, description, dueDate, createdBy string) (*models.Reminder, error) {
	if title == "" || description == "" || dueDate == "" || createdBy == "" {
		return nil, ErrMissingFields
	}

	reminder := &models.Reminder{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		CreatedBy:   createdBy,
	}
	if err := s.repo.CreateReminder(ctx, reminder); err != nil {
		return nil, err
	}

	s.log.Infof("Reminder created for user %s: %s", createdBy, reminder.Title)
	return reminder, nil
}

// ListAllReminders returns every reminder in the store
func (s *Service) ListAllReminders(ctx context.Context) ([]models.Reminder, error) {
	return s.repo.FindAllReminders(ctx)
}

// ListRemindersByUser returns all reminders created by the given user.
// An empty result is reported as ErrNoData, matching the external contract.
func (s *Service) ListRemindersByUser(ctx context.Context, userID string) ([]models.Reminder, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	reminders, err := s.repo.FindRemindersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(reminders) == 0 {
		return nil, ErrNoData
	}
	return reminders, nil
}

// UpdateReminder merges the supplied fields into an existing reminder.
// Fields absent from the update are left untouched.
func (s *Service) UpdateReminder(ctx context.Context, id string, upd models.ReminderUpdate) (*models.Reminder, error) {
	if _, err := s.repo.FindReminderByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, err
	}

	reminder, err := s.repo.UpdateReminder(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("failed to update reminder %s: %w", id, err)
	}
	return reminder, nil
}

// DeleteReminder removes a reminder and returns the deleted record.
// A zero-row delete after the existence check is an internal error, not a
// silent success.
func (s *Service) DeleteReminder(ctx context.Context, id string) (*models.Reminder, error) {
	if _, err := s.repo.FindReminderByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, err
	}

	reminder, err := s.repo.DeleteReminder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete reminder %s: %w", id, err)
	}

	s.log.Infof("Reminder deleted: %s", id)
	return reminder, nil
}

// UpcomingReminders returns the user's reminders whose due date instant is at
// or after the current instant.
func (s *Service) UpcomingReminders(ctx context.Context, userID string) ([]models.Reminder, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	reminders, err := s.repo.FindUpcomingReminders(ctx, userID, upcomingCutoff(s.now()))
	if err != nil {
		return nil, err
	}
	if len(reminders) == 0 {
		return nil, ErrNoUpcoming
	}
	return reminders, nil
}

// DueTodayReminders returns the user's reminders due on today's calendar date
// and publishes a notification intent for each. The result may be empty; that
// is not an error here, unlike UpcomingReminders.
func (s *Service) DueTodayReminders(ctx context.Context, userID string) ([]models.Reminder, error) {
	if err := s.checkUser(ctx, userID); err != nil {
		return nil, err
	}

	reminders, err := s.repo.FindRemindersDueOn(ctx, userID, todayLabel(s.now()))
	if err != nil {
		return nil, err
	}

	for _, reminder := range reminders {
		s.sink.Publish(notify.Intent{UserID: reminder.CreatedBy, Description: reminder.Description})
	}
	return reminders, nil
}

// SweepDueToday publishes notification intents for every reminder due today,
// across all users. Run from the cron scheduler.
func (s *Service) SweepDueToday(ctx context.Context) error {
	day := todayLabel(s.now())
	reminders, err := s.repo.FindAllRemindersDueOn(ctx, day)
	if err != nil {
		return fmt.Errorf("failed to sweep reminders due on %s: %w", day, err)
	}

	for _, reminder := range reminders {
		s.sink.Publish(notify.Intent{UserID: reminder.CreatedBy, Description: reminder.Description})
	}
	s.log.Infof("Due-today sweep for %s: %d reminders", day, len(reminders))
	return nil
}

func (s *Service) checkUser(ctx context.Context, userID string) error {
	_, err := s.repo.FindUserByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
