// Package core provides the state and behavior of the artwork selection table.
// This package has no UI dependencies and can be used by any frontend.
package core

import (
	"context"
	"strconv"
	"time"
)

// PageSize is the fixed number of rows per page, both displayed and requested
// from the upstream API.
const PageSize = 5

// Artwork is one record returned by the artwork catalog, keyed by ID.
// Records are immutable once received and never merged across pages.
type Artwork struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	PlaceOfOrigin string `json:"place_of_origin"`
	ArtistDisplay string `json:"artist_display"`
	Inscriptions  string `json:"inscriptions"`
	DateStart     int    `json:"date_start"`
	DateEnd       int    `json:"date_end"`
}

// Page is one fetched slice of the artwork collection.
type Page struct {
	Records []Artwork
	Total   int // pagination.total from the response, 0 if absent
}

// PageFetcher retrieves one page of artworks. page is 1-based, matching the
// upstream API.
type PageFetcher interface {
	FetchPage(ctx context.Context, page, limit int) (*Page, error)
}

// PageState tracks which page is displayed and how many records exist.
type PageState struct {
	Index        int `json:"index"`
	TotalRecords int `json:"totalRecords"`
}

// First returns the zero-based offset of the first displayed row.
func (p PageState) First() int {
	return p.Index * PageSize
}

// PageCount returns the number of pages needed for TotalRecords.
func (p PageState) PageCount() int {
	return (p.TotalRecords + PageSize - 1) / PageSize
}

// HasPrev reports whether a previous page exists.
func (p PageState) HasPrev() bool {
	return p.Index > 0
}

// HasNext reports whether a following page exists.
func (p PageState) HasNext() bool {
	return p.Index+1 < p.PageCount()
}

// NoticeKind classifies a notice for presentation.
type NoticeKind string

const (
	NoticeNone     NoticeKind = ""
	NoticeSuccess  NoticeKind = "success"
	NoticeBlocking NoticeKind = "blocking" // must be acknowledged before continuing
)

// Notice is a user-facing notification produced by a table operation.
// The zero value means "nothing to show".
type Notice struct {
	Kind    NoticeKind `json:"kind,omitempty"`
	Code    string     `json:"code,omitempty"`
	Message string     `json:"message,omitempty"`
}

// IsZero reports whether the notice carries nothing to show.
func (n Notice) IsZero() bool {
	return n.Kind == NoticeNone && n.Message == ""
}

// Blocking reports whether the notice must be acknowledged.
func (n Notice) Blocking() bool {
	return n.Kind == NoticeBlocking
}

// Submission is an accepted selection emitted by Submit.
type Submission struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"sessionId"`
	Limit       int       `json:"limit"`
	Records     []Artwork `json:"records"`
	ClientIP    string    `json:"clientIp,omitempty"`
	UserAgent   string    `json:"userAgent,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Emitter receives accepted submissions.
type Emitter interface {
	Emit(ctx context.Context, sub Submission) error
}

// Snapshot is a consistent, read-only copy of a table's state for rendering.
type Snapshot struct {
	Page           PageState `json:"page"`
	Records        []Artwork `json:"records"`
	Selection      []Artwork `json:"selection"`
	Limit          int       `json:"limit"`
	OverlayOpen    bool      `json:"overlayOpen"`
	SubmitDisabled bool      `json:"submitDisabled"`
	Loading        bool      `json:"loading"`
}

// Selected reports whether the artwork with id is in the selection.
func (s Snapshot) Selected(id int) bool {
	for _, a := range s.Selection {
		if a.ID == id {
			return true
		}
	}
	return false
}

// LimitInput returns the overlay input text: the limit, or empty when unset.
func (s Snapshot) LimitInput() string {
	if s.Limit == 0 {
		return ""
	}
	return strconv.Itoa(s.Limit)
}
