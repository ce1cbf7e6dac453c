// Package session configures the SQLite-backed session manager used for
// dashboard authentication.
package session

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session keys
const (
	KeyUserID   = "userID"
	KeyUserRole = "userRole"
)

// New creates a session manager backed by the sessions table.
func New(db *sql.DB, isDev bool) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = 24 * time.Hour
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	if isDev {
		// No Secure flag over plain http in development.
		sm.Cookie.Name = "fg_session"
		sm.Cookie.Secure = false
	} else {
		sm.Cookie.Name = "__Host-session"
		sm.Cookie.Secure = true
	}

	return sm
}
