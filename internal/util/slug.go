// Package util provides general-purpose helpers: slug generation with
// Turkish transliteration and sql null type conversions.
package util

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// slugRegex matches non-alphanumeric characters (except hyphens)
	slugRegex = regexp.MustCompile(`[^a-z0-9-]+`)
	// multipleHyphens matches multiple consecutive hyphens
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a string to a URL-friendly slug. Turkish characters are
// transliterated to ASCII (ş→s, ğ→g, ı→i, ö→o, ü→u, ç→c) before the
// usual lowercase/hyphen cleanup.
func Slugify(s string) string {
	// Dotless ı decomposes to nothing useful under NFD, so transliterate
	// to ASCII first, then strip any remaining combining marks.
	result := unidecode.Unidecode(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ = transform.String(t, result)

	result = strings.ToLower(result)
	result = strings.ReplaceAll(result, " ", "-")
	result = slugRegex.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// IsValidSlug checks if a string is a valid slug format: lowercase
// letters, digits and single interior hyphens only.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	return !strings.Contains(s, "--")
}

// SafeFilename turns an uploaded filename into a storage-safe one: the
// base name is slugified, the extension lowercased. An empty or fully
// stripped base becomes "dosya".
func SafeFilename(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	base := Slugify(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
	if base == "" {
		base = "dosya"
	}
	return base + ext
}
