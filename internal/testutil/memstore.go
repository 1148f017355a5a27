package testutil

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"reminder-service/internal/models"
	"reminder-service/internal/repository"
)

// MemStore is an in-memory store for tests. It implements the lookup surface
// of the authorization gate and the full store surface of the service.
type MemStore struct {
	mu        sync.Mutex
	Users     map[string]*models.User
	Reminders map[string]*models.Reminder

	// Err, when set, is returned by every method to simulate a store failure.
	Err error
}

func NewMemStore() *MemStore {
	return &MemStore{
		Users:     make(map[string]*models.User),
		Reminders: make(map[string]*models.Reminder),
	}
}

// DiscardLogger returns a logger whose output is thrown away.
func DiscardLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func (m *MemStore) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for _, u := range m.Users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	cp := *user
	m.Users[user.ID] = &cp
	return nil
}

func (m *MemStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MemStore) FindUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	u, ok := m.Users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MemStore) CreateReminder(_ context.Context, reminder *models.Reminder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	cp := *reminder
	m.Reminders[reminder.ID] = &cp
	return nil
}

func (m *MemStore) FindReminderByID(_ context.Context, id string) (*models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	rem, ok := m.Reminders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *rem
	return &cp, nil
}

func (m *MemStore) FindAllReminders(_ context.Context) ([]models.Reminder, error) {
	return m.filter(func(*models.Reminder) bool { return true })
}

func (m *MemStore) FindRemindersByUser(_ context.Context, userID string) ([]models.Reminder, error) {
	return m.filter(func(r *models.Reminder) bool { return r.CreatedBy == userID })
}

func (m *MemStore) FindUpcomingReminders(_ context.Context, userID, cutoff string) ([]models.Reminder, error) {
	return m.filter(func(r *models.Reminder) bool {
		return r.CreatedBy == userID && r.DueDate >= cutoff
	})
}

func (m *MemStore) FindRemindersDueOn(_ context.Context, userID, day string) ([]models.Reminder, error) {
	return m.filter(func(r *models.Reminder) bool {
		return r.CreatedBy == userID && r.DueDate == day
	})
}

func (m *MemStore) FindAllRemindersDueOn(_ context.Context, day string) ([]models.Reminder, error) {
	return m.filter(func(r *models.Reminder) bool { return r.DueDate == day })
}

func (m *MemStore) UpdateReminder(_ context.Context, id string, upd models.ReminderUpdate) (*models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	rem, ok := m.Reminders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if upd.Title != nil {
		rem.Title = *upd.Title
	}
	if upd.Description != nil {
		rem.Description = *upd.Description
	}
	if upd.DueDate != nil {
		rem.DueDate = *upd.DueDate
	}
	cp := *rem
	return &cp, nil
}

func (m *MemStore) DeleteReminder(_ context.Context, id string) (*models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	rem, ok := m.Reminders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(m.Reminders, id)
	cp := *rem
	return &cp, nil
}

func (m *MemStore) filter(keep func(*models.Reminder) bool) ([]models.Reminder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []models.Reminder
	for _, r := range m.Reminders {
		if keep(r) {
			out = append(out, *r)
		}
	}
	return out, nil
}
