package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/JonMunkholm/ArtworkTable/internal/core"
	tea "github.com/charmbracelet/bubbletea"
)

type fakeFetcher struct {
	mu    sync.Mutex
	total int
	err   error
}

func (f *fakeFetcher) FetchPage(_ context.Context, page, limit int) (*core.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := &core.Page{Total: f.total}
	for id := (page-1)*limit + 1; id <= page*limit && id <= f.total; id++ {
		out.Records = append(out.Records, core.Artwork{ID: id, Title: fmt.Sprintf("Artwork %d", id)})
	}
	return out, nil
}

type countingEmitter struct {
	mu sync.Mutex
	n  int
}

func (e *countingEmitter) Emit(context.Context, core.Submission) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.n++
	return nil
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

// send delivers msg and, when run is set, executes the resulting command
// once and feeds its message back. Only table actions are run; cursor blink
// commands from the text input would block.
func send(t *testing.T, m Model, msg tea.Msg, run bool) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	if run && cmd != nil {
		next, _ = m.Update(cmd())
		m = next.(Model)
	}
	return m
}

func newModel(t *testing.T, total int) (Model, *countingEmitter) {
	t.Helper()
	emitter := &countingEmitter{}
	table := core.NewTable(&fakeFetcher{total: total}, core.WithEmitters(emitter))
	m := New(context.Background(), table)

	next, _ := m.Update(m.Init()())
	return next.(Model), emitter
}

func TestInit_LoadsFirstPage(t *testing.T) {
	m, _ := newModel(t, 12)

	view := m.View()
	for _, want := range []string{"Artwork Selection", "Artwork Table", "Artwork 1", "Artwork 5", "Showing 1 to 5 of 12"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Artwork 6") {
		t.Error("view shows a sixth row")
	}
}

func TestPaging(t *testing.T) {
	m, _ := newModel(t, 12)

	m = send(t, m, keyRight, true)
	if got := m.table.Snapshot().Page.Index; got != 1 {
		t.Fatalf("page = %d, want 1", got)
	}

	m = send(t, m, runes("G"), true)
	if got := m.table.Snapshot().Page.Index; got != 2 {
		t.Fatalf("page after last = %d, want 2", got)
	}
	if !strings.Contains(m.View(), "Showing 11 to 12 of 12") {
		t.Error("last page report missing")
	}

	// No page past the end.
	next, cmd := m.Update(keyRight)
	if cmd != nil {
		t.Error("next on last page should not load")
	}
	m = next.(Model)

	m = send(t, m, runes("g"), true)
	if got := m.table.Snapshot().Page.Index; got != 0 {
		t.Errorf("page after first = %d, want 0", got)
	}
}

func TestLoadFailureShowsStatus(t *testing.T) {
	fetcher := &fakeFetcher{total: 12}
	table := core.NewTable(fetcher)
	m := New(context.Background(), table)
	next, _ := m.Update(m.Init()())
	m = next.(Model)

	fetcher.mu.Lock()
	fetcher.err = errors.New("dial tcp: connection refused")
	fetcher.mu.Unlock()

	m = send(t, m, keyRight, true)
	want := "Unable to reach the artwork catalog (Code: API001). Please try again in a few moments"
	if m.status != want {
		t.Fatalf("status = %q, want %q", m.status, want)
	}
	if got := m.table.Snapshot().Page.Index; got != 0 {
		t.Errorf("page = %d, want 0 after failure", got)
	}

	m = send(t, m, pageLoadedMsg{index: 1, err: fmt.Errorf("load: %w", core.ErrStaleResponse)}, false)
	if m.status != want {
		t.Errorf("status = %q, stale response should leave it unchanged", m.status)
	}
}

func TestToggleAndSelectAll(t *testing.T) {
	m, _ := newModel(t, 12)

	m = send(t, m, keyDown, false)
	m = send(t, m, keySpace, false)
	if sel := m.table.Selection(); len(sel) != 1 || sel[0].ID != 2 {
		t.Fatalf("selection = %+v, want [2]", sel)
	}

	m = send(t, m, keySpace, false)
	if len(m.table.Selection()) != 0 {
		t.Fatal("second toggle should deselect")
	}

	m = send(t, m, runes("a"), false)
	if len(m.table.Selection()) != core.PageSize {
		t.Fatalf("select all = %d rows", len(m.table.Selection()))
	}
	if !strings.Contains(m.View(), "5 selected") {
		t.Error("count missing from view")
	}

	m = send(t, m, runes("c"), false)
	if len(m.table.Selection()) != 0 {
		t.Error("clear page left rows selected")
	}
}

func TestOverlayLimitAndBlockingNotice(t *testing.T) {
	m, _ := newModel(t, 12)

	m = send(t, m, runes("r"), false)
	if !m.table.OverlayOpen() || !strings.Contains(m.View(), "How many rows do you want to select?") {
		t.Fatal("overlay not open")
	}

	m = send(t, m, runes("2"), false)
	if got := m.table.Limit(); got != 2 {
		t.Fatalf("limit = %d, want 2 while typing", got)
	}
	m = send(t, m, keyEnter, false)
	if m.table.OverlayOpen() {
		t.Fatal("enter should close the overlay")
	}

	m = send(t, m, runes("a"), false)
	if !m.notice.Blocking() || !strings.Contains(m.View(), "You can select only up to 2 rows.") {
		t.Fatalf("notice = %+v", m.notice)
	}
	if len(m.table.Selection()) != 0 {
		t.Fatal("rejected change modified the selection")
	}

	// Keys are swallowed until the notice is dismissed.
	m = send(t, m, keySpace, false)
	if len(m.table.Selection()) != 0 {
		t.Fatal("key acted while notice was shown")
	}
	m = send(t, m, keyEnter, false)
	if !m.notice.IsZero() {
		t.Fatal("enter did not dismiss notice")
	}
}

func TestOverlayEscClosesWithoutClearingLimit(t *testing.T) {
	m, _ := newModel(t, 12)

	m = send(t, m, runes("r"), false)
	m = send(t, m, runes("3"), false)
	m = send(t, m, keyEsc, false)

	if m.table.OverlayOpen() {
		t.Error("esc should close the overlay")
	}
	if m.table.Limit() != 3 {
		t.Errorf("limit = %d, want 3", m.table.Limit())
	}

	m = send(t, m, runes("r"), false)
	if m.input.Value() != "3" {
		t.Errorf("reopened input = %q, want 3", m.input.Value())
	}
}

func TestSubmit(t *testing.T) {
	m, emitter := newModel(t, 12)

	m = send(t, m, runes("r"), false)
	m = send(t, m, runes("2"), false)
	m = send(t, m, keyEnter, false)
	m = send(t, m, keySpace, false)

	m = send(t, m, runes("s"), true)
	if !strings.Contains(m.View(), "Please select exactly 2 rows before submitting.") {
		t.Fatalf("not-exact notice missing, notice = %+v", m.notice)
	}
	m = send(t, m, keyEnter, false)

	// Second row on the next page.
	m = send(t, m, keyRight, true)
	m = send(t, m, keySpace, false)

	m = send(t, m, runes("s"), true)
	if m.notice.Kind != core.NoticeSuccess {
		t.Fatalf("notice = %+v, want success", m.notice)
	}
	if emitter.n != 1 {
		t.Errorf("emitted %d, want 1", emitter.n)
	}
	if !strings.Contains(m.View(), "Rows submitted successfully!") {
		t.Error("success notice not rendered")
	}

	m = send(t, m, keyDown, false)
	if !m.notice.IsZero() {
		t.Error("success notice should clear on the next key")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t, 3)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 4, "abc…"},
		{"a\n b", 4, "a b "},
		{"", 2, "  "},
	}
	for _, tt := range tests {
		if got := pad(tt.in, tt.width); got != tt.want {
			t.Errorf("pad(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
