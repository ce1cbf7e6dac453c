// Package analytics fetches raw visit data from the external analytics
// provider and aggregates it for the dashboard: page views, unique
// visitors, top pages, browser/device breakdowns, and visitor countries.
package analytics

import (
	"fmt"
	"time"
)

// Date range labels accepted by the dashboard.
const (
	RangeToday  = "today"
	Range7Days  = "7d"
	Range30Days = "30d"
	Range90Days = "90d"
	RangeCustom = "custom"
)

// DefaultRange backs the cron-refreshed snapshot.
const DefaultRange = Range30Days

// SnapshotCacheKey is where the scheduler caches the default-range
// summary and where the dashboard handler looks it up.
const SnapshotCacheKey = "analytics:summary:" + DefaultRange

// Range is a closed date interval for an analytics query.
type Range struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ParseRange converts dashboard query parameters into a Range. Custom
// ranges require both bounds in YYYY-MM-DD form with start <= end. An
// empty label defaults to 30 days.
func ParseRange(label, customStart, customEnd string, now time.Time) (Range, error) {
	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch label {
	case "", DefaultRange:
		return Range{Label: Range30Days, Start: startOfToday.AddDate(0, 0, -29), End: endOfToday}, nil
	case RangeToday:
		return Range{Label: RangeToday, Start: startOfToday, End: endOfToday}, nil
	case Range7Days:
		return Range{Label: Range7Days, Start: startOfToday.AddDate(0, 0, -6), End: endOfToday}, nil
	case Range90Days:
		return Range{Label: Range90Days, Start: startOfToday.AddDate(0, 0, -89), End: endOfToday}, nil
	case RangeCustom:
		if customStart == "" || customEnd == "" {
			return Range{}, fmt.Errorf("custom range requires customStart and customEnd")
		}
		start, err := time.ParseInLocation("2006-01-02", customStart, now.Location())
		if err != nil {
			return Range{}, fmt.Errorf("invalid customStart: %w", err)
		}
		end, err := time.ParseInLocation("2006-01-02", customEnd, now.Location())
		if err != nil {
			return Range{}, fmt.Errorf("invalid customEnd: %w", err)
		}
		if end.Before(start) {
			return Range{}, fmt.Errorf("customEnd is before customStart")
		}
		end = end.Add(24*time.Hour - time.Second)
		return Range{Label: RangeCustom, Start: start, End: end}, nil
	default:
		return Range{}, fmt.Errorf("unknown date range %q", label)
	}
}
