package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ferrogaz/website/internal/lang"
	"github.com/ferrogaz/website/internal/model"
)

func TestSecurityHeaders_Production(t *testing.T) {
	h := SecurityHeaders(DefaultSecurityHeadersConfig(false))(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "SAMEORIGIN" {
		t.Errorf("X-Frame-Options = %q", got)
	}
	hsts := rec.Header().Get("Strict-Transport-Security")
	if !strings.Contains(hsts, "max-age=31536000") || !strings.Contains(hsts, "includeSubDomains") {
		t.Errorf("HSTS = %q", hsts)
	}
	csp := rec.Header().Get("Content-Security-Policy")
	if !strings.HasPrefix(csp, "default-src 'self'") {
		t.Errorf("CSP should start with default-src, got %q", csp)
	}
	if !strings.Contains(csp, "https://www.google.com") {
		t.Errorf("CSP should admit the captcha widget, got %q", csp)
	}
}

func TestSecurityHeaders_DevelopmentSkipsHSTS(t *testing.T) {
	h := SecurityHeaders(DefaultSecurityHeadersConfig(true))(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if got := rec.Header().Get("Strict-Transport-Security"); got != "" {
		t.Errorf("dev HSTS = %q, want empty", got)
	}
}

func TestStripTrailingSlash(t *testing.T) {
	h := StripTrailingSlash(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/hakkimizda/", nil))
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status = %d, want 301", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/hakkimizda" {
		t.Errorf("location = %q", loc)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/urunler/?lang=EN", nil))
	if loc := rec.Header().Get("Location"); loc != "/urunler?lang=EN" {
		t.Errorf("location with query = %q", loc)
	}

	// Root path is untouched.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("root: status = %d, want 200", rec.Code)
	}
}

func TestLanguageMiddleware(t *testing.T) {
	var seen string
	h := Language(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetLanguage(r)
		w.WriteHeader(http.StatusOK)
	}))

	// Explicit switch sets the cookie.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/?lang=en", nil))
	if seen != model.LanguageEN {
		t.Errorf("language = %q, want EN", seen)
	}
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == lang.CookieLanguage {
			cookie = c
		}
	}
	if cookie == nil || cookie.Value != model.LanguageEN {
		t.Fatalf("language cookie = %+v, want EN", cookie)
	}

	// No hint falls back to Turkish, without setting a cookie.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if seen != model.LanguageTR {
		t.Errorf("default language = %q, want TR", seen)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("no cookie should be set without an explicit switch")
	}
}

func TestGetLanguage_Default(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if got := GetLanguage(r); got != model.DefaultLanguage {
		t.Errorf("GetLanguage without context = %q", got)
	}
}
