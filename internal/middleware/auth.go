package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"reminder-service/internal/auth"
	"reminder-service/internal/models"
	"reminder-service/internal/repository"
)

type ctxKey string

// UserIDKey carries the authenticated user's id through the request context.
const UserIDKey ctxKey = "uid"

// Store is the read-only lookup surface the gate needs.
type Store interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindReminderByID(ctx context.Context, id string) (*models.Reminder, error)
}

// scopeKind tags how a request addresses the resource it wants to act on.
type scopeKind int

const (
	scopeNone scopeKind = iota
	scopeUser     // path parameter names a user id
	scopeReminder // path parameter names a reminder id
	scopeBody     // body createdBy names the acting user (creation)
)

type scope struct {
	kind scopeKind
	id   string
}

// resolveScope picks the addressing mode once, in fixed precedence order:
// path user id, then path reminder id, then body createdBy. The body is
// re-buffered so the handler can read it again.
func resolveScope(r *http.Request) (scope, error) {
	vars := mux.Vars(r)
	if id := vars["id"]; id != "" {
		return scope{kind: scopeUser, id: id}, nil
	}
	if id := vars["reminderId"]; id != "" {
		return scope{kind: scopeReminder, id: id}, nil
	}

	if r.Body != nil {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return scope{}, err
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		var payload struct {
			CreatedBy string `json:"createdBy"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.CreatedBy != "" {
			return scope{kind: scopeBody, id: payload.CreatedBy}, nil
		}
	}
	return scope{kind: scopeNone}, nil
}

// Authorize verifies the bearer token, resolves the caller's identity and
// checks ownership of the addressed resource before the handler runs.
func Authorize(secret string, store Store, log *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" {
				deny(w, http.StatusForbidden, "token is required")
				return
			}
			raw = strings.TrimPrefix(raw, "Bearer ")

			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				deny(w, http.StatusForbidden, "invalid or expired token")
				return
			}

			user, err := store.FindUserByID(r.Context(), claims.UserID)
			if errors.Is(err, repository.ErrNotFound) {
				deny(w, http.StatusNotFound, "user not found")
				return
			}
			if err != nil {
				log.Errorf("auth: user lookup failed: %v", err)
				deny(w, http.StatusInternalServerError, "server error")
				return
			}

			sc, err := resolveScope(r)
			if err != nil {
				log.Errorf("auth: failed to read request body: %v", err)
				deny(w, http.StatusInternalServerError, "server error")
				return
			}

			switch sc.kind {
			case scopeUser, scopeBody:
				if user.ID != sc.id {
					deny(w, http.StatusForbidden, "you are not allowed to perform this action")
					return
				}
			case scopeReminder:
				reminder, err := store.FindReminderByID(r.Context(), sc.id)
				if errors.Is(err, repository.ErrNotFound) {
					deny(w, http.StatusNotFound, "reminder not found")
					return
				}
				if err != nil {
					log.Errorf("auth: reminder lookup failed: %v", err)
					deny(w, http.StatusInternalServerError, "server error")
					return
				}
				if reminder.CreatedBy != user.ID {
					deny(w, http.StatusForbidden, "you are not allowed to perform this action")
					return
				}
			default:
				deny(w, http.StatusBadRequest, "invalid request")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
