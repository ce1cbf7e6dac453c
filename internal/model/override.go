// Package model defines domain models and types used throughout the
// application including PageOverride, Order, Media, and User structures.
package model

import "time"

// PageOverride is a per-section, per-language content record that takes
// precedence over compiled default content. At most one row exists per
// (PageSlug, SectionKey, Language) triple; saves replace the row wholesale.
type PageOverride struct {
	ID         int64     `json:"id"`
	PageSlug   string    `json:"page_slug"`
	SectionKey string    `json:"section_key"`
	Language   string    `json:"language"`
	Content    string    `json:"content"` // JSON object, shape described by the page's section schema
	UpdatedAt  time.Time `json:"updated_at"`
}
