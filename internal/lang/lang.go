// Package lang selects the site language (Turkish or English) from
// request signals using x/text language matching.
package lang

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"github.com/ferrogaz/website/internal/model"
)

// CookieLanguage stores the visitor's explicit language choice.
const CookieLanguage = "fg_lang"

var (
	supported = []language.Tag{
		language.Turkish, // default, index 0
		language.English,
	}
	matcher = language.NewMatcher(supported)

	tagToCode = map[language.Tag]string{
		language.Turkish: model.LanguageTR,
		language.English: model.LanguageEN,
	}
)

// Match resolves an Accept-Language header value to TR or EN. Unknown or
// empty input yields Turkish.
func Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return model.DefaultLanguage
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return model.DefaultLanguage
	}
	_, idx, _ := matcher.Match(tags...)
	if code, ok := tagToCode[supported[idx]]; ok {
		return code
	}
	return model.DefaultLanguage
}

// FromRequest picks the language for a request. Precedence: explicit
// ?lang= query parameter, then the language cookie, then Accept-Language.
func FromRequest(r *http.Request) string {
	if q := strings.ToUpper(r.URL.Query().Get("lang")); model.IsValidLanguage(q) {
		return q
	}
	if c, err := r.Cookie(CookieLanguage); err == nil {
		if v := strings.ToUpper(c.Value); model.IsValidLanguage(v) {
			return v
		}
	}
	return Match(r.Header.Get("Accept-Language"))
}
