package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ferrogaz/website/internal/auth"
	"github.com/ferrogaz/website/internal/middleware"
	"github.com/ferrogaz/website/internal/model"
	"github.com/ferrogaz/website/internal/store"
)

func validRole(role string) bool {
	switch role {
	case model.RoleAdmin, model.RoleEditor, model.RoleMember:
		return true
	}
	return false
}

// ListUsers returns accounts for the dashboard.
// GET /api/dashboard/users?limit=&offset=
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	offset, _ := strconv.ParseInt(r.URL.Query().Get("offset"), 10, 64)
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	users, err := h.queries.ListUsers(r.Context(), store.ListUsersParams{Limit: limit, Offset: offset})
	if err != nil {
		WriteInternalError(w, "Kullanıcılar yüklenemedi")
		return
	}
	total, err := h.queries.CountUsers(r.Context())
	if err != nil {
		WriteInternalError(w, "Kullanıcılar yüklenemedi")
		return
	}
	WriteSuccess(w, users, &Meta{Total: total, Limit: limit, Offset: offset})
}

// UserRequest is the create/update payload for dashboard user management.
type UserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password,omitempty"`
}

// CreateUser adds an account from the dashboard.
// POST /api/dashboard/users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
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
	if !validRole(req.Role) {
		fieldErrors["role"] = "admin, editor veya member olmalı"
	}
	if len(req.Password) < 8 {
		fieldErrors["password"] = "en az 8 karakter olmalı"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	exists, err := h.queries.EmailExists(r.Context(), req.Email)
	if err != nil {
		WriteInternalError(w, "Kullanıcı oluşturulamadı")
		return
	}
	if exists {
		WriteValidationError(w, map[string]string{"email": "bu e-posta zaten kayıtlı"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		WriteInternalError(w, "Kullanıcı oluşturulamadı")
		return
	}

	now := time.Now()
	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		Name:         req.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		WriteInternalError(w, "Kullanıcı oluşturulamadı")
		return
	}

	slog.Info("user created",
		"category", model.EventCategoryUser,
		"user_id", middleware.GetUserID(r), "created_id", user.ID, "role", user.Role,
	)
	WriteCreated(w, user)
}

// UpdateUser edits an account's name, email, role, and optionally password.
// PUT /api/dashboard/users/{id}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Geçersiz kullanıcı numarası")
		return
	}

	var req UserRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Geçersiz istek gövdesi")
		return
	}

	current, err := h.queries.GetUserByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "Kullanıcı bulunamadı")
		return
	}
	if err != nil {
		WriteInternalError(w, "Kullanıcı yüklenemedi")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" {
		req.Name = current.Name
	}
	if req.Email == "" {
		req.Email = current.Email
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		WriteValidationError(w, map[string]string{"email": "geçersiz e-posta adresi"})
		return
	}
	if req.Role == "" {
		req.Role = current.Role
	} else if !validRole(req.Role) {
		WriteValidationError(w, map[string]string{"role": "admin, editor veya member olmalı"})
		return
	}

	hash := current.PasswordHash
	if req.Password != "" {
		if len(req.Password) < 8 {
			WriteValidationError(w, map[string]string{"password": "en az 8 karakter olmalı"})
			return
		}
		if hash, err = auth.HashPassword(req.Password); err != nil {
			WriteInternalError(w, "Kullanıcı güncellenemedi")
			return
		}
	}

	user, err := h.queries.UpdateUser(r.Context(), store.UpdateUserParams{
		ID:           id,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		Name:         req.Name,
		UpdatedAt:    time.Now(),
	})
	if err != nil {
		WriteInternalError(w, "Kullanıcı güncellenemedi")
		return
	}

	slog.Info("user updated",
		"category", model.EventCategoryUser,
		"user_id", middleware.GetUserID(r), "updated_id", user.ID,
	)
	WriteSuccess(w, user, nil)
}

// DeleteUser removes an account. Self-deletion is rejected.
// DELETE /api/dashboard/users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Geçersiz kullanıcı numarası")
		return
	}
	if id == middleware.GetUserID(r) {
		WriteConflict(w, "Kendi hesabınızı silemezsiniz")
		return
	}

	if _, err := h.queries.GetUserByID(r.Context(), id); errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "Kullanıcı bulunamadı")
		return
	} else if err != nil {
		WriteInternalError(w, "Kullanıcı silinemedi")
		return
	}

	if err := h.queries.DeleteUser(r.Context(), id); err != nil {
		WriteInternalError(w, "Kullanıcı silinemedi")
		return
	}

	slog.Info("user deleted",
		"category", model.EventCategoryUser,
		"user_id", middleware.GetUserID(r), "deleted_id", id,
	)
	WriteSuccess(w, map[string]any{"deleted": true}, nil)
}
