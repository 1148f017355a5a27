package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"reminder-service/internal/models"
	"reminder-service/internal/service"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, StatusBadRequest, envelope{"message": "invalid request body"})
		return
	}

	user, err := h.svc.Register(r.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, StatusCreated, envelope{
		"message":      "User registered successfully",
		"registerUser": user,
	})
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, StatusBadRequest, envelope{"message": "invalid request body"})
		return
	}

	token, user, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, StatusSuccess, envelope{
		"message":  "User logged in successfully",
		"jwtToken": token,
		"tokenObject": envelope{
			"id":       user.ID,
			"fullName": user.FullName,
			"email":    user.Email,
		},
	})
}

// AddReminder handles reminder creation
func (h *Handler) AddReminder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		DueDate     string `json:"dueDate"`
		CreatedBy   string `json:"createdBy"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, StatusBadRequest, envelope{"message": "invalid request body"})
		return
	}

	reminder, err := h.svc.CreateReminder(r.Context(), req.Title, req.Description, req.DueDate, req.CreatedBy)
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, StatusCreated, envelope{
		"message":  "Reminder added successfully",
		"reminder": reminder,
	})
}

// GetReminders handles listing every reminder in the store
func (h *Handler) GetReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.svc.ListAllReminders(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, StatusSuccess, envelope{
		"message":   "All reminders",
		"reminders": reminders,
	})
}

// GetReminder handles listing a specific user's reminders
func (h *Handler) GetReminder(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	reminders, err := h.svc.ListRemindersByUser(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, StatusSuccess, envelope{
		"message": "All reminders of user",
		"data":    reminders,
	})
}

// UpdateReminder handles a partial update of an existing reminder
func (h *Handler) UpdateReminder(w http.ResponseWriter, r *http.Request) {
	reminderID := mux.Vars(r)["reminderId"]

	var upd models.ReminderUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		writeJSON(w, StatusBadRequest, envelope{"message": "invalid request body"})
		return
	}

	reminder, err := h.svc.UpdateReminder(r.Context(), reminderID, upd)
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, StatusSuccess, envelope{
		"message":         "Reminder updated successfully",
		"updatedReminder": reminder,
	})
}

// DeleteReminder handles deletion of an existing reminder
func (h *Handler) DeleteReminder(w http.ResponseWriter, r *http.Request) {
	reminderID := mux.Vars(r)["reminderId"]

	reminder, err := h.svc.DeleteReminder(r.Context(), reminderID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, StatusSuccess, envelope{
		"message":         "Reminder deleted successfully",
		"deletedReminder": reminder,
	})
}

// UpcomingReminder handles listing a user's reminders due at or after now
func (h *Handler) UpcomingReminder(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	reminders, err := h.svc.UpcomingReminders(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, StatusSuccess, envelope{
		"message":          "Upcoming reminders",
		"upComingReminder": reminders,
	})
}

// PushNotification handles the due-today query and notification emission
func (h *Handler) PushNotification(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["id"]

	reminders, err := h.svc.DueTodayReminders(r.Context(), userID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, StatusSuccess, envelope{
		"message":          "Push notification sent",
		"remindingMessage": reminders,
	})
}

// respondError maps service failures onto the response contract. Internal
// failures are logged and surface only as a generic server error.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidName),
		errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrMissingCredentials),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrMissingFields):
		writeJSON(w, StatusBadRequest, envelope{"message": err.Error()})
	case errors.Is(err, service.ErrUserExists):
		writeJSON(w, StatusAlreadyExists, envelope{"message": err.Error()})
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrReminderNotFound),
		errors.Is(err, service.ErrNoData),
		errors.Is(err, service.ErrNoUpcoming):
		writeJSON(w, StatusNotFound, envelope{"message": err.Error()})
	default:
		h.log.Errorf("request failed: %v", err)
		writeJSON(w, StatusServerError, envelope{"message": "server error"})
	}
}
