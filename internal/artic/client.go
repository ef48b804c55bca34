// Package artic is the HTTP client for the Art Institute of Chicago
// artworks API. It fetches one page of artworks per call and maps the
// response onto core.Artwork.
package artic

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/JonMunkholm/ArtworkTable/internal/core"
	"github.com/JonMunkholm/ArtworkTable/internal/logging"
	"github.com/JonMunkholm/ArtworkTable/internal/metrics"
)

// DefaultBaseURL is the public API root.
const DefaultBaseURL = "https://api.artic.edu/api/v1"

// maxErrorBody bounds how much of an error response is kept for the message.
const maxErrorBody = 512

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API root, without the /artworks suffix.
	BaseURL string

	// UserAgent is sent on every request (REQUIRED).
	UserAgent string

	// Timeout bounds each request (default: 10s).
	Timeout time.Duration

	// HTTPClient overrides the transport; Timeout still applies when set.
	HTTPClient *http.Client
}

// Client fetches artwork pages. It implements core.PageFetcher.
type Client struct {
	httpClient *http.Client
	endpoint   *url.URL
	userAgent  string
}

// New creates a new artwork API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url must be absolute (got %q)", cfg.BaseURL)
	}

	// Work on a copy so the caller's client (possibly http.DefaultClient)
	// keeps its own timeout.
	httpClient := &http.Client{}
	if cfg.HTTPClient != nil {
		c := *cfg.HTTPClient
		httpClient = &c
	}
	httpClient.Timeout = cfg.Timeout

	return &Client{
		httpClient: httpClient,
		endpoint:   base.JoinPath("artworks"),
		userAgent:  cfg.UserAgent,
	}, nil
}

// apiArtwork mirrors one element of the response's data array. Pointer fields
// tolerate JSON null, which the API returns for missing values.
type apiArtwork struct {
	ID            int     `json:"id"`
	Title         *string `json:"title"`
	PlaceOfOrigin *string `json:"place_of_origin"`
	ArtistDisplay *string `json:"artist_display"`
	Inscriptions  *string `json:"inscriptions"`
	DateStart     *int    `json:"date_start"`
	DateEnd       *int    `json:"date_end"`
}

type apiResponse struct {
	Data       *[]apiArtwork `json:"data"`
	Pagination *struct {
		Total int `json:"total"`
	} `json:"pagination"`
}

// FetchPage requests one page of artworks. page is 1-based.
func (c *Client) FetchPage(ctx context.Context, page, limit int) (*core.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pageURL(page, limit), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	logger := logging.WithFields(ctx, "component", "artic", "page", page, "limit", limit)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("network").Inc()
		return nil, fmt.Errorf("fetch page %d: %w", page, err)
	}
	defer resp.Body.Close()

	metrics.UpstreamRequests.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Class:      classify(resp.StatusCode),
			Message:    strings.TrimSpace(string(body)),
		}
		logger.Warn("artwork api returned error status", "status", resp.StatusCode)
		return nil, fmt.Errorf("fetch page %d: %w", page, apiErr)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("fetch page %d: decode response: %w", page, err)
	}
	if body.Data == nil {
		return nil, fmt.Errorf("fetch page %d: %w", page, ErrMissingData)
	}

	out := &core.Page{Records: make([]core.Artwork, 0, len(*body.Data))}
	for _, a := range *body.Data {
		out.Records = append(out.Records, a.toArtwork())
	}
	if body.Pagination != nil {
		out.Total = body.Pagination.Total
	}

	logger.Debug("fetched artworks", "rows", len(out.Records), "total", out.Total)
	return out, nil
}

func (c *Client) pageURL(page, limit int) string {
	u := *c.endpoint
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()
	return u.String()
}

func (a apiArtwork) toArtwork() core.Artwork {
	return core.Artwork{
		ID:            a.ID,
		Title:         deref(a.Title),
		PlaceOfOrigin: deref(a.PlaceOfOrigin),
		ArtistDisplay: deref(a.ArtistDisplay),
		Inscriptions:  deref(a.Inscriptions),
		DateStart:     deref(a.DateStart),
		DateEnd:       deref(a.DateEnd),
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
