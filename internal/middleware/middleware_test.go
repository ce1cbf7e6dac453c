package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/ferrogaz/website/internal/model"
	"github.com/ferrogaz/website/internal/session"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "203.0.113.7:51234",
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Real-IP": "198.51.100.2"},
			want:       "198.51.100.2",
		},
		{
			name:       "x-forwarded-for single",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.3"},
			want:       "198.51.100.3",
		},
		{
			name:       "x-forwarded-for chain takes first",
			remoteAddr: "10.0.0.1:1234",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.4, 10.0.0.2, 10.0.0.3"},
			want:       "198.51.100.4",
		},
		{
			name:       "forwarded-for beats real-ip",
			remoteAddr: "10.0.0.1:1234",
			headers: map[string]string{
				"X-Forwarded-For": "198.51.100.5",
				"X-Real-IP":       "198.51.100.6",
			},
			want: "198.51.100.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := GetClientIP(r); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_RejectsAnonymous(t *testing.T) {
	sm := scs.New()
	h := sm.LoadAndSave(Auth(sm)(okHandler()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/orders", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want JSON", ct)
	}
}

func TestAuth_AllowsSession(t *testing.T) {
	sm := scs.New()
	h := sm.LoadAndSave(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sm.Put(r.Context(), session.KeyUserID, int64(42))
		Auth(sm)(okHandler()).ServeHTTP(w, r)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/orders", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func withUser(r *http.Request, user model.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ContextKeyUser, user))
}

func TestRequireAdmin(t *testing.T) {
	h := RequireAdmin(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: status = %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, withUser(httptest.NewRequest("GET", "/", nil), model.User{ID: 1, Role: model.RoleEditor}))
	if rec.Code != http.StatusForbidden {
		t.Errorf("editor: status = %d, want 403", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, withUser(httptest.NewRequest("GET", "/", nil), model.User{ID: 1, Role: model.RoleAdmin}))
	if rec.Code != http.StatusOK {
		t.Errorf("admin: status = %d, want 200", rec.Code)
	}
}

func TestRequireStaff(t *testing.T) {
	h := RequireStaff(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, withUser(httptest.NewRequest("GET", "/", nil), model.User{ID: 1, Role: model.RoleMember}))
	if rec.Code != http.StatusForbidden {
		t.Errorf("member: status = %d, want 403", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, withUser(httptest.NewRequest("GET", "/", nil), model.User{ID: 1, Role: model.RoleEditor}))
	if rec.Code != http.StatusOK {
		t.Errorf("editor: status = %d, want 200", rec.Code)
	}
}

func TestGetUserID(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if got := GetUserID(r); got != 0 {
		t.Errorf("GetUserID without user = %d, want 0", got)
	}
	if got := GetUserID(withUser(r, model.User{ID: 7})); got != 7 {
		t.Errorf("GetUserID = %d, want 7", got)
	}
}
