package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/fintrack/internal/service"
)

const maxBodySize = 1 << 20

type ctxKey int

const versionKey ctxKey = iota

// WithAPIVersion marks ctx as serving a versioned namespace; responses get the envelope
func WithAPIVersion(ctx context.Context, version string) context.Context {
	return context.WithValue(ctx, versionKey, version)
}

func apiVersion(r *http.Request) string {
	v, _ := r.Context().Value(versionKey).(string)
	return v
}

// envelope wraps every response of the versioned API
type envelope struct {
	Version   string `json:"version"`
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp"`
}

type errorResponse struct {
	Error    string   `json:"error"`
	Messages []string `json:"messages,omitempty"`
}

func writeBody(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// WriteJSON writes data, wrapped in the envelope on versioned routes
func WriteJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	if v := apiVersion(r); v != "" {
		writeBody(w, status, envelope{
			Version:   v,
			Success:   true,
			Data:      data,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	writeBody(w, status, data)
}

// WriteError writes an error body. messages carries the per-field problems of a validation failure.
func WriteError(w http.ResponseWriter, r *http.Request, status int, message string, messages []string) {
	if v := apiVersion(r); v != "" {
		var data any
		if len(messages) > 0 {
			data = messages
		}
		writeBody(w, status, envelope{
			Version:   v,
			Success:   false,
			Data:      data,
			Message:   message,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	writeBody(w, status, errorResponse{Error: message, Messages: messages})
}

// noContent answers a successful delete: 204 on the plain API, an empty envelope on versioned routes
func noContent(w http.ResponseWriter, r *http.Request, message string) {
	if v := apiVersion(r); v != "" {
		writeBody(w, http.StatusOK, envelope{
			Version:   v,
			Success:   true,
			Message:   message,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleError maps service errors to statuses. Anything unexpected is logged and hidden behind a 500.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteError(w, r, http.StatusBadRequest, "validation failed", verr.Messages)
	case errors.Is(err, service.ErrInvalidCredentials):
		WriteError(w, r, http.StatusUnauthorized, "invalid email or password", nil)
	case errors.Is(err, service.ErrUnauthorized):
		WriteError(w, r, http.StatusUnauthorized, "authentication required", nil)
	case errors.Is(err, service.ErrForbidden):
		WriteError(w, r, http.StatusForbidden, "you do not have permission to perform this action", nil)
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, r, http.StatusNotFound, "not found", nil)
	case errors.Is(err, service.ErrConflict):
		WriteError(w, r, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, service.ErrUnavailable):
		WriteError(w, r, http.StatusServiceUnavailable, "this feature is not configured", nil)
	default:
		h.log.WithFields(logrus.Fields{
			"module":   "handler",
			"funcName": funcName,
			"method":   r.Method,
			"path":     r.URL.Path,
		}).Error(err.Error())
		WriteError(w, r, http.StatusInternalServerError, "internal server error", nil)
	}
}

// decode reads a JSON request body into dst
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return badRequest("request body must be valid JSON")
	}
	return nil
}

func badRequest(messages ...string) error {
	return &service.ValidationError{Messages: messages}
}
