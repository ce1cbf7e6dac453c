package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/mileusna/useragent"

	"github.com/ferrogaz/website/internal/geoip"
)

const requestTimeout = 15 * time.Second

// Visit is one raw page view as reported by the provider.
type Visit struct {
	Time      time.Time `json:"time"`
	Path      string    `json:"path"`
	VisitorID string    `json:"visitorId"`
	UserAgent string    `json:"userAgent"`
	IP        string    `json:"ip"`
}

// PageCount pairs a path with its view count.
type PageCount struct {
	Path  string `json:"path"`
	Views int    `json:"views"`
}

// Summary is the aggregated view the dashboard renders.
type Summary struct {
	Range          Range          `json:"range"`
	PageViews      int            `json:"pageViews"`
	UniqueVisitors int            `json:"uniqueVisitors"`
	TopPages       []PageCount    `json:"topPages"`
	Browsers       map[string]int `json:"browsers"`
	Devices        map[string]int `json:"devices"`
	Countries      map[string]int `json:"countries"`
	GeneratedAt    time.Time      `json:"generatedAt"`
}

// Client queries the analytics provider and aggregates its visit feed.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	geo        *geoip.Lookup
}

// NewClient creates a provider client. geo may be nil to skip the
// country breakdown.
func NewClient(baseURL, apiKey string, geo *geoip.Lookup) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
		geo:        geo,
	}
}

// Enabled reports whether a provider URL is configured.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// Summary fetches visits in the range and aggregates them.
func (c *Client) Summary(ctx context.Context, rng Range) (Summary, error) {
	visits, err := c.fetchVisits(ctx, rng)
	if err != nil {
		return Summary{}, err
	}
	return c.aggregate(rng, visits), nil
}

// fetchVisits calls the provider's visits endpoint.
func (c *Client) fetchVisits(ctx context.Context, rng Range) ([]Visit, error) {
	endpoint, err := url.Parse(c.baseURL + "/visits")
	if err != nil {
		return nil, fmt.Errorf("invalid analytics URL: %w", err)
	}
	q := endpoint.Query()
	q.Set("start", rng.Start.UTC().Format(time.RFC3339))
	q.Set("end", rng.End.UTC().Format(time.RFC3339))
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building analytics request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analytics provider request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("analytics provider returned status %d", resp.StatusCode)
	}

	var payload struct {
		Visits []Visit `json:"visits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parsing analytics response: %w", err)
	}
	return payload.Visits, nil
}

// aggregate reduces a visit feed to the dashboard summary.
func (c *Client) aggregate(rng Range, visits []Visit) Summary {
	summary := Summary{
		Range:       rng,
		PageViews:   len(visits),
		Browsers:    make(map[string]int),
		Devices:     make(map[string]int),
		Countries:   make(map[string]int),
		GeneratedAt: time.Now(),
	}

	visitors := make(map[string]struct{})
	pages := make(map[string]int)

	for _, v := range visits {
		if v.VisitorID != "" {
			visitors[v.VisitorID] = struct{}{}
		}
		pages[v.Path]++

		ua := useragent.Parse(v.UserAgent)
		browser := ua.Name
		if browser == "" {
			browser = "Diğer"
		}
		summary.Browsers[browser]++
		summary.Devices[deviceClass(ua)]++

		if c.geo != nil {
			if country := c.geo.LookupCountry(v.IP); country != "" {
				summary.Countries[country]++
			}
		}
	}

	summary.UniqueVisitors = len(visitors)
	summary.TopPages = topPages(pages, 10)
	return summary
}

func deviceClass(ua useragent.UserAgent) string {
	switch {
	case ua.Bot:
		return "bot"
	case ua.Mobile:
		return "mobile"
	case ua.Tablet:
		return "tablet"
	default:
		return "desktop"
	}
}

func topPages(pages map[string]int, limit int) []PageCount {
	counts := make([]PageCount, 0, len(pages))
	for path, views := range pages {
		counts = append(counts, PageCount{Path: path, Views: views})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Views != counts[j].Views {
			return counts[i].Views > counts[j].Views
		}
		return counts[i].Path < counts[j].Path
	})
	if len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}
