package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/ferrogaz/website/internal/auth"
	"github.com/ferrogaz/website/internal/middleware"
	"github.com/ferrogaz/website/internal/model"
	"github.com/ferrogaz/website/internal/session"
	"github.com/ferrogaz/website/internal/store"
)

// LoginRequest is the login form payload.
type LoginRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captchaToken"`
}

// Login authenticates a user and starts a session.
// POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Geçersiz istek gövdesi")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		WriteValidationError(w, map[string]string{"email": "gerekli", "password": "gerekli"})
		return
	}

	if h.loginGuard != nil {
		if locked, remaining := h.loginGuard.IsAccountLocked(email); locked {
			WriteError(w, http.StatusTooManyRequests, "account_locked",
				fmt.Sprintf("Hesap kilitli, %d dakika sonra tekrar deneyin", int(remaining.Minutes())+1), nil)
			return
		}
	}

	if !h.verifyCaptcha(w, r, req.CaptchaToken) {
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		WriteInternalError(w, "Giriş yapılamadı")
		return
	}

	ok := false
	if err == nil {
		ok, _ = auth.CheckPassword(req.Password, user.PasswordHash)
	}
	if !ok {
		if h.loginGuard != nil {
			if locked, dur := h.loginGuard.RecordFailedAttempt(email); locked {
				slog.Warn("login lockout triggered",
					"category", model.EventCategoryAuth,
					"email", email, "ip", middleware.GetClientIP(r), "duration", dur,
				)
			}
		}
		WriteUnauthorized(w, "E-posta veya şifre hatalı")
		return
	}

	if h.loginGuard != nil {
		h.loginGuard.RecordSuccessfulLogin(email)
	}

	// New session token on privilege change.
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		WriteInternalError(w, "Oturum başlatılamadı")
		return
	}
	h.sessions.Put(r.Context(), session.KeyUserID, user.ID)
	h.sessions.Put(r.Context(), session.KeyUserRole, user.Role)
	_ = h.queries.TouchUserLogin(r.Context(), user.ID, time.Now())

	slog.Info("user logged in",
		"category", model.EventCategoryAuth,
		"user_id", user.ID, "ip", middleware.GetClientIP(r),
	)
	WriteSuccess(w, user, nil)
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	CaptchaToken string `json:"captchaToken"`
}

// Register creates a member account.
// POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Geçersiz istek gövdesi")
		return
	}

	fieldErrors := map[string]string{}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" {
		fieldErrors["name"] = "gerekli"
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		fieldErrors["email"] = "geçersiz e-posta adresi"
	}
	if len(req.Password) < 8 {
		fieldErrors["password"] = "en az 8 karakter olmalı"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	if !h.verifyCaptcha(w, r, req.CaptchaToken) {
		return
	}

	exists, err := h.queries.EmailExists(r.Context(), req.Email)
	if err != nil {
		WriteInternalError(w, "Kayıt yapılamadı")
		return
	}
	if exists {
		WriteValidationError(w, map[string]string{"email": "bu e-posta zaten kayıtlı"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		WriteInternalError(w, "Kayıt yapılamadı")
		return
	}

	now := time.Now()
	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         model.RoleMember,
		Name:         req.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		WriteInternalError(w, "Kayıt yapılamadı")
		return
	}

	slog.Info("user registered", "category", model.EventCategoryAuth, "user_id", user.ID)
	WriteCreated(w, user)
}

// Logout destroys the current session.
// POST /api/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessions.GetInt64(r.Context(), session.KeyUserID)
	if err := h.sessions.Destroy(r.Context()); err != nil {
		WriteInternalError(w, "Oturum kapatılamadı")
		return
	}
	if userID != 0 {
		slog.Info("user logged out", "category", model.EventCategoryAuth, "user_id", userID)
	}
	WriteSuccess(w, map[string]any{"loggedOut": true}, nil)
}

// Me returns the authenticated user.
// GET /api/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w, "Oturum açılmamış")
		return
	}
	WriteSuccess(w, user, nil)
}
