package core

// table.go implements the artwork table state container.
//
// A Table owns everything one user sees: the displayed page, the selection
// limit, the selection itself, and the overlay visibility. Front ends never
// mutate these directly; they call the operations below and render a
// Snapshot. Notices replace modal alerts so callers can assert on them.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/JonMunkholm/ArtworkTable/internal/logging"
	"github.com/JonMunkholm/ArtworkTable/internal/metrics"
	"github.com/google/uuid"
)

var (
	// ErrStaleResponse is returned by LoadPage when a newer load replaced it
	// before its response arrived. The response is discarded.
	ErrStaleResponse = errors.New("stale response: superseded by a newer page request")

	// ErrUnknownArtwork is returned when a proposed ID is neither displayed
	// nor already selected.
	ErrUnknownArtwork = errors.New("unknown artwork")
)

// Notice codes and messages.
const (
	CodeLimitExceeded = "SEL001"
	CodeSubmitted     = "SUB000"
	CodeNotExact      = "SUB001"
)

// Table is the state container for one artwork selection table.
// It is safe for concurrent use.
type Table struct {
	fetcher   PageFetcher
	emitters  []Emitter
	sessionID string
	now       func() time.Time

	mu          sync.Mutex
	page        PageState
	records     []Artwork
	selection   []Artwork
	limit       int
	overlayOpen bool

	// Page loads are tasks keyed by generation. Only the load holding the
	// current generation may apply its response.
	gen        uint64
	cancelLoad context.CancelFunc
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithEmitters sets the sinks that receive accepted submissions.
// Without this option submissions go to LogEmitter only.
func WithEmitters(emitters ...Emitter) TableOption {
	return func(t *Table) {
		t.emitters = append([]Emitter(nil), emitters...)
	}
}

// WithSessionID tags log entries and submissions with the owning session.
func WithSessionID(id string) TableOption {
	return func(t *Table) {
		t.sessionID = id
	}
}

// WithClock overrides the time source used for submissions.
func WithClock(now func() time.Time) TableOption {
	return func(t *Table) {
		t.now = now
	}
}

// NewTable creates an empty table backed by fetcher. Call LoadPage(ctx, 0)
// to populate the first page.
func NewTable(fetcher PageFetcher, opts ...TableOption) *Table {
	t := &Table{
		fetcher: fetcher,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	if len(t.emitters) == 0 {
		t.emitters = []Emitter{LogEmitter{}}
	}
	return t
}

// SessionID returns the owning session ID, if any.
func (t *Table) SessionID() string {
	return t.sessionID
}

func (t *Table) logger(ctx context.Context) *slog.Logger {
	logger := logging.FromContext(ctx)
	if t.sessionID != "" && logging.SessionIDFromContext(ctx) == "" {
		logger = logger.With("session_id", t.sessionID)
	}
	return logger
}

// =============================================================================
// Data fetch & pagination
// =============================================================================

// LoadPage fetches the page at zero-based pageIndex and, on success, replaces
// the displayed records and total count. Negative indexes load page 0.
//
// Starting a load cancels any load still in flight. A load whose response
// arrives after a newer load started returns ErrStaleResponse and changes
// nothing. On any failure the displayed state is left as it was.
func (t *Table) LoadPage(ctx context.Context, pageIndex int) error {
	if pageIndex < 0 {
		pageIndex = 0
	}

	t.mu.Lock()
	t.gen++
	gen := t.gen
	if t.cancelLoad != nil {
		t.cancelLoad()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	t.cancelLoad = cancel
	t.mu.Unlock()
	defer cancel()

	logger := t.logger(ctx).With("page", pageIndex)
	start := time.Now()

	page, err := t.fetcher.FetchPage(loadCtx, pageIndex+1, PageSize)

	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.gen {
		metrics.StaleResponses.Inc()
		logger.Debug("discarding superseded page response", "generation", gen)
		return fmt.Errorf("load page %d: %w", pageIndex, ErrStaleResponse)
	}
	t.cancelLoad = nil

	if err != nil {
		logger.Error("error fetching data",
			"error", err,
			"code", MapError(err).Code,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("load page %d: %w", pageIndex, err)
	}

	t.page = PageState{Index: pageIndex, TotalRecords: page.Total}
	t.records = append([]Artwork(nil), page.Records...)

	logger.Debug("page loaded",
		"rows", len(t.records),
		"total", t.page.TotalRecords,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Loading reports whether a page load is in flight.
func (t *Table) Loading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelLoad != nil
}

// Reset returns the table to its freshly mounted state: no records, no
// selection, no limit, overlay closed. A load in flight is cancelled and its
// response will be discarded as stale.
func (t *Table) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.gen++
	if t.cancelLoad != nil {
		t.cancelLoad()
		t.cancelLoad = nil
	}
	t.page = PageState{}
	t.records = nil
	t.selection = nil
	t.limit = 0
	t.overlayOpen = false
}

// =============================================================================
// Selection limit overlay
// =============================================================================

// ToggleOverlay opens the limit overlay if closed and closes it if open.
// Returns the new visibility.
func (t *Table) ToggleOverlay() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.overlayOpen = !t.overlayOpen
	return t.overlayOpen
}

// HideOverlay closes the limit overlay.
func (t *Table) HideOverlay() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.overlayOpen = false
}

// OverlayOpen reports whether the limit overlay is visible.
func (t *Table) OverlayOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.overlayOpen
}

// SetLimitInput parses raw overlay input and stores it as the selection limit
// immediately. Unparseable input sets the limit to 0. Returns the stored limit.
//
// Lowering the limit below the current selection size does not truncate the
// selection.
func (t *Table) SetLimitInput(raw string) int {
	limit := ParseLimit(raw)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.limit = limit
	return limit
}

// ConfirmLimit closes the overlay. The limit was already applied on input, so
// no validation happens here; a limit of 0 closes just the same.
func (t *Table) ConfirmLimit() {
	t.HideOverlay()
}

// Limit returns the current selection limit (0 means unset).
func (t *Table) Limit() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.limit
}

// =============================================================================
// Selection enforcement
// =============================================================================

// OnSelectionChange applies a proposed selection. When a limit is set and the
// proposal is longer than it, the change is rejected, the selection is left
// untouched, and a blocking notice is returned. Otherwise the selection is
// replaced wholesale by proposed (deduplicated by ID) and the zero Notice is
// returned.
func (t *Table) OnSelectionChange(ctx context.Context, proposed []Artwork) Notice {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.limit != 0 && len(proposed) > t.limit {
		metrics.SelectionChanges.WithLabelValues("rejected").Inc()
		t.logger(ctx).Info("selection change rejected",
			"proposed", len(proposed),
			"limit", t.limit,
		)
		return LimitExceededNotice(t.limit)
	}

	t.selection = dedupeByID(proposed)
	metrics.SelectionChanges.WithLabelValues("accepted").Inc()
	return Notice{}
}

// Selection returns a copy of the current selection.
func (t *Table) Selection() []Artwork {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Artwork(nil), t.selection...)
}

// ProposeToggle returns the selection that results from toggling one row's
// checkbox: removed if selected, appended if displayed and not selected.
func (t *Table) ProposeToggle(id int) ([]Artwork, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if indexByID(t.selection, id) >= 0 {
		return withoutIDs(t.selection, map[int]bool{id: true}), nil
	}
	i := indexByID(t.records, id)
	if i < 0 {
		return nil, fmt.Errorf("toggle %d: %w", id, ErrUnknownArtwork)
	}
	proposed := append([]Artwork(nil), t.selection...)
	return append(proposed, t.records[i]), nil
}

// ProposePage returns the selection that results from the displayed page's
// checkboxes being exactly checkedIDs. Rows selected on other pages are kept
// in place; displayed rows are kept, dropped, or appended to match.
func (t *Table) ProposePage(checkedIDs []int) ([]Artwork, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	checked := make(map[int]bool, len(checkedIDs))
	for _, id := range checkedIDs {
		if indexByID(t.records, id) < 0 {
			return nil, fmt.Errorf("page selection %d: %w", id, ErrUnknownArtwork)
		}
		checked[id] = true
	}

	onPage := make(map[int]bool, len(t.records))
	for _, r := range t.records {
		onPage[r.ID] = true
	}

	proposed := make([]Artwork, 0, len(t.selection)+len(checked))
	for _, a := range t.selection {
		if !onPage[a.ID] || checked[a.ID] {
			proposed = append(proposed, a)
		}
	}
	for _, r := range t.records {
		if checked[r.ID] && indexByID(t.selection, r.ID) < 0 {
			proposed = append(proposed, r)
		}
	}
	return proposed, nil
}

// ProposeSelectAll returns the selection with every displayed row added.
func (t *Table) ProposeSelectAll() []Artwork {
	t.mu.Lock()
	defer t.mu.Unlock()

	proposed := append([]Artwork(nil), t.selection...)
	for _, r := range t.records {
		if indexByID(proposed, r.ID) < 0 {
			proposed = append(proposed, r)
		}
	}
	return proposed
}

// ProposeClearPage returns the selection with every displayed row removed.
func (t *Table) ProposeClearPage() []Artwork {
	t.mu.Lock()
	defer t.mu.Unlock()

	onPage := make(map[int]bool, len(t.records))
	for _, r := range t.records {
		onPage[r.ID] = true
	}
	return withoutIDs(t.selection, onPage)
}

// ResolveIDs maps IDs to artworks known to the table, looking in the current
// selection first and then the displayed page. Order follows ids.
func (t *Table) ResolveIDs(ids []int) ([]Artwork, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Artwork, 0, len(ids))
	for _, id := range ids {
		if i := indexByID(t.selection, id); i >= 0 {
			out = append(out, t.selection[i])
			continue
		}
		if i := indexByID(t.records, id); i >= 0 {
			out = append(out, t.records[i])
			continue
		}
		return nil, fmt.Errorf("resolve %d: %w", id, ErrUnknownArtwork)
	}
	return out, nil
}

// =============================================================================
// Submission
// =============================================================================

// SubmitDisabled reports whether the submit control should be inert: the
// selection size differs from the limit.
func (t *Table) SubmitDisabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.selection) != t.limit
}

// Submit emits the selection when its size equals the limit and returns a
// success notice. Otherwise it returns a blocking notice and emits nothing.
//
// Emitter failures are logged and returned joined; the success notice is
// still returned since the selection was accepted.
func (t *Table) Submit(ctx context.Context) (Notice, error) {
	t.mu.Lock()
	if len(t.selection) != t.limit {
		limit := t.limit
		size := len(t.selection)
		t.mu.Unlock()

		metrics.Submissions.WithLabelValues("not_exact").Inc()
		t.logger(ctx).Info("submit blocked", "selected", size, "limit", limit)
		return NotExactNotice(limit), nil
	}

	sub := Submission{
		ID:          uuid.NewString(),
		SessionID:   t.sessionID,
		Limit:       t.limit,
		Records:     append([]Artwork(nil), t.selection...),
		ClientIP:    GetIPAddressFromContext(ctx),
		UserAgent:   GetUserAgentFromContext(ctx),
		SubmittedAt: t.now().UTC(),
	}
	emitters := t.emitters
	t.mu.Unlock()

	var errs []error
	for _, e := range emitters {
		if err := e.Emit(ctx, sub); err != nil {
			t.logger(ctx).Error("emit submission failed",
				"submission_id", sub.ID,
				"error", err,
				"code", MapError(err).Code,
			)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		metrics.Submissions.WithLabelValues("emit_error").Inc()
	} else {
		metrics.Submissions.WithLabelValues("submitted").Inc()
	}
	return SubmittedNotice(), errors.Join(errs...)
}

// Snapshot returns a consistent copy of the table state for rendering.
func (t *Table) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	return Snapshot{
		Page:           t.page,
		Records:        append([]Artwork(nil), t.records...),
		Selection:      append([]Artwork(nil), t.selection...),
		Limit:          t.limit,
		OverlayOpen:    t.overlayOpen,
		SubmitDisabled: len(t.selection) != t.limit,
		Loading:        t.cancelLoad != nil,
	}
}
