package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ferrogaz/website/internal/lang"
	"github.com/ferrogaz/website/internal/model"
)

// Language creates middleware that resolves the request language from the
// query string, the fg_lang cookie, or Accept-Language, and stores it in
// the request context. An explicit ?lang= switch updates the cookie.
func Language(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := lang.FromRequest(r)

		if q := strings.ToUpper(r.URL.Query().Get("lang")); model.IsValidLanguage(q) {
			SetLanguageCookie(w, q)
		}

		ctx := context.WithValue(r.Context(), ContextKeyLanguage, code)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetLanguage retrieves the current language code from the request
// context, falling back to the site default.
func GetLanguage(r *http.Request) string {
	code, ok := r.Context().Value(ContextKeyLanguage).(string)
	if !ok {
		return model.DefaultLanguage
	}
	return code
}

// SetLanguageCookie stores the visitor's language preference for a year.
func SetLanguageCookie(w http.ResponseWriter, code string) {
	http.SetCookie(w, &http.Cookie{
		Name:     lang.CookieLanguage,
		Value:    code,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
