package model

import "strings"

// Content languages. The site is bilingual; Turkish is the default.
const (
	LanguageTR = "TR"
	LanguageEN = "EN"
)

// DefaultLanguage is the language used when no preference is expressed.
const DefaultLanguage = LanguageTR

// ContentLanguages lists the languages page content can be stored in.
var ContentLanguages = []string{LanguageTR, LanguageEN}

// NormalizeLanguage maps a language code to its canonical form.
// Returns the default language for empty or unknown codes.
func NormalizeLanguage(code string) string {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case LanguageEN:
		return LanguageEN
	case LanguageTR:
		return LanguageTR
	default:
		return DefaultLanguage
	}
}

// IsValidLanguage reports whether code is a supported content language.
func IsValidLanguage(code string) bool {
	upper := strings.ToUpper(strings.TrimSpace(code))
	return upper == LanguageTR || upper == LanguageEN
}
