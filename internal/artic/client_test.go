package artic

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JonMunkholm/ArtworkTable/internal/core"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Config{
		BaseURL:   srv.URL + "/api/v1",
		UserAgent: "ArtworkTable-test/1.0",
		Timeout:   2 * time.Second,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		errorMsg string
	}{
		{
			name:   "valid config",
			config: Config{BaseURL: "https://api.artic.edu/api/v1", UserAgent: "a/1"},
		},
		{
			name:   "default base url",
			config: Config{UserAgent: "a/1"},
		},
		{
			name:     "empty user agent",
			config:   Config{BaseURL: "https://api.artic.edu/api/v1"},
			errorMsg: "user-agent is required",
		},
		{
			name:     "relative base url",
			config:   Config{BaseURL: "/api/v1", UserAgent: "a/1"},
			errorMsg: `base url must be absolute (got "/api/v1")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.config)
			if tt.errorMsg != "" {
				if err == nil || err.Error() != tt.errorMsg {
					t.Errorf("New() error = %v, want %q", err, tt.errorMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error = %v", err)
			}
			if c.httpClient.Timeout != 10*time.Second {
				t.Errorf("Timeout = %v, want 10s default", c.httpClient.Timeout)
			}
		})
	}
}

func TestNew_LeavesCallerClientUntouched(t *testing.T) {
	transport := &http.Transport{}
	shared := &http.Client{Transport: transport, Timeout: time.Minute}

	c, err := New(Config{UserAgent: "a/1", Timeout: 3 * time.Second, HTTPClient: shared})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if shared.Timeout != time.Minute {
		t.Errorf("caller Timeout = %v, want 1m", shared.Timeout)
	}
	if c.httpClient == shared {
		t.Error("client shares the caller's *http.Client")
	}
	if c.httpClient.Timeout != 3*time.Second || c.httpClient.Transport != transport {
		t.Errorf("copy = {Timeout: %v, Transport: %p}, want 3s and the caller's transport", c.httpClient.Timeout, c.httpClient.Transport)
	}

	if _, err := New(Config{UserAgent: "a/1", Timeout: time.Second, HTTPClient: http.DefaultClient}); err != nil {
		t.Fatalf("New(DefaultClient) error = %v", err)
	}
	if http.DefaultClient.Timeout != 0 {
		t.Errorf("http.DefaultClient.Timeout = %v, want 0", http.DefaultClient.Timeout)
	}
}

func TestFetchPage_Success(t *testing.T) {
	var gotPath, gotPage, gotLimit, gotFields, gotUA string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPage = r.URL.Query().Get("page")
		gotLimit = r.URL.Query().Get("limit")
		gotFields = r.URL.Query().Get("fields")
		gotUA = r.Header.Get("User-Agent")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"pagination": {"total": 128, "limit": 5, "current_page": 3},
			"data": [
				{"id": 27992, "title": "A Sunday on La Grande Jatte", "place_of_origin": "France",
				 "artist_display": "Georges Seurat", "inscriptions": null,
				 "date_start": 1884, "date_end": 1886, "image_id": "ignored"},
				{"id": 4, "title": null, "place_of_origin": null, "artist_display": null,
				 "inscriptions": "signed", "date_start": null, "date_end": null}
			]
		}`))
	})

	page, err := c.FetchPage(context.Background(), 3, core.PageSize)
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}

	if gotPath != "/api/v1/artworks" {
		t.Errorf("path = %q, want /api/v1/artworks", gotPath)
	}
	if gotPage != "3" || gotLimit != "5" {
		t.Errorf("query page=%q limit=%q, want 3 and 5", gotPage, gotLimit)
	}
	if gotFields != "" {
		t.Errorf("fields = %q, want unset", gotFields)
	}
	if gotUA != "ArtworkTable-test/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}

	if page.Total != 128 {
		t.Errorf("Total = %d, want 128", page.Total)
	}
	if len(page.Records) != 2 {
		t.Fatalf("len(Records) = %d, want 2", len(page.Records))
	}

	want := core.Artwork{
		ID:            27992,
		Title:         "A Sunday on La Grande Jatte",
		PlaceOfOrigin: "France",
		ArtistDisplay: "Georges Seurat",
		DateStart:     1884,
		DateEnd:       1886,
	}
	if page.Records[0] != want {
		t.Errorf("Records[0] = %+v, want %+v", page.Records[0], want)
	}
	if page.Records[1] != (core.Artwork{ID: 4, Inscriptions: "signed"}) {
		t.Errorf("Records[1] = %+v, want nulls as zero values", page.Records[1])
	}
}

func TestFetchPage_MissingPagination(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": []}`))
	})

	page, err := c.FetchPage(context.Background(), 1, core.PageSize)
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}
	if page.Total != 0 || len(page.Records) != 0 {
		t.Errorf("page = %+v, want empty with total 0", page)
	}
}

func TestFetchPage_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
		check    func(t *testing.T, err error)
	}{
		{
			name:     "server error",
			status:   http.StatusServiceUnavailable,
			body:     "upstream down",
			wantCode: "API002",
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("error %v is not *APIError", err)
				}
				if apiErr.StatusCode != 503 || apiErr.Class != StatusClassServer {
					t.Errorf("APIError = %+v", apiErr)
				}
				if apiErr.Message != "upstream down" {
					t.Errorf("Message = %q", apiErr.Message)
				}
			},
		},
		{
			name:     "client error",
			status:   http.StatusForbidden,
			body:     `{"status":403}`,
			wantCode: "API002",
			check: func(t *testing.T, err error) {
				var apiErr *APIError
				if !errors.As(err, &apiErr) || apiErr.Class != StatusClassClient {
					t.Errorf("error = %v, want client APIError", err)
				}
			},
		},
		{
			name:     "malformed json",
			status:   http.StatusOK,
			body:     `{"data": [`,
			wantCode: "API003",
		},
		{
			name:     "missing data field",
			status:   http.StatusOK,
			body:     `{"pagination": {"total": 10}}`,
			wantCode: "API003",
			check: func(t *testing.T, err error) {
				if !errors.Is(err, ErrMissingData) {
					t.Errorf("error = %v, want ErrMissingData", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.FetchPage(context.Background(), 1, core.PageSize)
			if err == nil {
				t.Fatal("FetchPage() expected error")
			}
			if code := core.MapError(err).Code; code != tt.wantCode {
				t.Errorf("MapError code = %s, want %s (err: %v)", code, tt.wantCode, err)
			}
			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func TestFetchPage_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchPage(ctx, 1, core.PageSize)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestFetchPage_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(Config{BaseURL: url, UserAgent: "a/1", Timeout: time.Second})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = c.FetchPage(context.Background(), 1, core.PageSize)
	if err == nil {
		t.Fatal("FetchPage() expected error")
	}
	if !strings.Contains(err.Error(), "fetch page 1") {
		t.Errorf("error = %v, want wrapped with page", err)
	}
}

func TestFetchPage_ImplementsPageFetcher(t *testing.T) {
	var _ core.PageFetcher = (*Client)(nil)
}
