package handler

import (
	"net/http"
	"time"

	"github.com/Dan9191/fintrack/internal/models"
)

// SessionCookie carries the session JWT
const SessionCookie = "session"

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in models.RegisterInput
	if err := decode(w, r, &in); err != nil {
		h.handleError(w, r, "Register", err)
		return
	}
	user, err := h.svc.Register(r.Context(), in)
	if err != nil {
		h.handleError(w, r, "Register", err)
		return
	}
	WriteJSON(w, r, http.StatusCreated, user)
}

// Login handles user authentication and opens a cookie session
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in models.LoginInput
	if err := decode(w, r, &in); err != nil {
		h.handleError(w, r, "Login", err)
		return
	}
	token, user, err := h.svc.Login(r.Context(), in)
	if err != nil {
		h.handleError(w, r, "Login", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.SessionTTL),
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	WriteJSON(w, r, http.StatusOK, loginResponse{Token: token, User: user})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	noContent(w, r, "logged out")
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.svc.Me(r.Context())
	if err != nil {
		h.handleError(w, r, "Me", err)
		return
	}
	WriteJSON(w, r, http.StatusOK, user)
}
