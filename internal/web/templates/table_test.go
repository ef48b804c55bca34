package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/JonMunkholm/ArtworkTable/internal/core"
	"github.com/a-h/templ"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var b bytes.Buffer
	if err := c.Render(context.Background(), &b); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return b.String()
}

func snapshot() core.Snapshot {
	return core.Snapshot{
		Page: core.PageState{Index: 1, TotalRecords: 23},
		Records: []core.Artwork{
			{ID: 6, Title: "Nighthawks", ArtistDisplay: "Edward Hopper", DateStart: 1942, DateEnd: 1942},
			{ID: 7, Title: `<script>alert("x")</script>`},
		},
		Selection:      []core.Artwork{{ID: 6}},
		Limit:          2,
		SubmitDisabled: true,
	}
}

func TestPage_RendersShellAndTable(t *testing.T) {
	got := render(t, Page(TableView{State: snapshot()}))

	for _, want := range []string{
		"<title>Artwork Selection</title>",
		"<h1>Artwork Selection</h1>",
		"<th>Place of Origin</th>",
		"<th>End Date</th>",
		"Nighthawks",
		`value="6" data-toggle="/selection/toggle/6" checked`,
		`id="submit-btn" disabled`,
		"Showing 6 to 7 of 23",
		"1 selected of 2",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(got, `value="7" data-toggle="/selection/toggle/7" checked`) {
		t.Error("unselected row rendered as checked")
	}
}

func TestTable_EscapesText(t *testing.T) {
	got := render(t, Table(snapshot()))

	if strings.Contains(got, `<script>alert`) {
		t.Error("title was not escaped")
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Error("escaped title missing")
	}
}

func TestTable_BlankDates(t *testing.T) {
	s := core.Snapshot{Records: []core.Artwork{{ID: 1, Title: "Untitled"}}}
	got := render(t, Table(s))

	if strings.Contains(got, "<td>0</td>") {
		t.Error("null date rendered as 0")
	}
}

func TestTable_Empty(t *testing.T) {
	got := render(t, Table(core.Snapshot{}))
	if !strings.Contains(got, "No artworks found.") {
		t.Error("empty message missing")
	}
}

func TestTablePanel_Overlay(t *testing.T) {
	s := snapshot()

	closed := render(t, TablePanel(TableView{State: s}))
	if strings.Contains(closed, `id="limit-overlay"`) {
		t.Error("overlay rendered while closed")
	}

	s.OverlayOpen = true
	open := render(t, TablePanel(TableView{State: s}))
	if !strings.Contains(open, "How many rows do you want to select?") {
		t.Error("overlay prompt missing")
	}
	if !strings.Contains(open, `placeholder="Enter number of rows" value="2"`) {
		t.Error("overlay input does not show the limit")
	}

	s.Limit = 0
	unset := render(t, Overlay(s))
	if !strings.Contains(unset, `value=""`) {
		t.Error("overlay input should be empty when limit is 0")
	}
}

func TestPaginator(t *testing.T) {
	tests := []struct {
		name    string
		page    core.PageState
		shown   int
		want    []string
		notWant []string
	}{
		{
			name:    "first page",
			page:    core.PageState{Index: 0, TotalRecords: 12},
			shown:   5,
			want:    []string{"Showing 1 to 5 of 12", `aria-current="page">1<`, `href="/page/1"`, `href="/page/2"`},
			notWant: []string{`href="/page/-1"`},
		},
		{
			name:    "last page",
			page:    core.PageState{Index: 2, TotalRecords: 12},
			shown:   2,
			want:    []string{"Showing 11 to 12 of 12", `aria-current="page">3<`, `href="/page/0"`},
			notWant: []string{`href="/page/3"`},
		},
		{
			name:    "window around middle",
			page:    core.PageState{Index: 10, TotalRecords: 100},
			shown:   5,
			want:    []string{`href="/page/8"`, `href="/page/12"`, `href="/page/19"`},
			notWant: []string{`href="/page/7"`, `href="/page/13"`},
		},
		{
			name:    "past the last page",
			page:    core.PageState{Index: 999999, TotalRecords: 23},
			shown:   0,
			want:    []string{"Showing 0 to 0 of 23", `href="/page/4"`},
			notWant: []string{"Showing 5000000", `aria-current="page"`},
		},
		{
			name:    "no records",
			page:    core.PageState{},
			notWant: []string{"Showing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(t, Paginator(tt.page, tt.shown))
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("missing %q in %s", w, got)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("unexpected %q in %s", w, got)
				}
			}
		})
	}
}

func TestNotices(t *testing.T) {
	got := render(t, Notices([]core.Notice{
		core.LimitExceededNotice(2),
		core.SubmittedNotice(),
	}))

	if !strings.Contains(got, `role="alertdialog"`) || !strings.Contains(got, "You can select only up to 2 rows.") {
		t.Error("blocking notice not rendered as modal")
	}
	if !strings.Contains(got, `href="/table" class="btn" data-dismiss`) {
		t.Error("modal dismiss link should return to the table without remounting")
	}
	if !strings.Contains(got, `class="notice notice-success"`) || !strings.Contains(got, "Rows submitted successfully!") {
		t.Error("success notice not rendered as toast")
	}
}

func TestErrorAlert(t *testing.T) {
	got := render(t, ErrorAlert("Too many requests", "Please wait", "RATE001"))
	if !strings.Contains(got, "Code: RATE001") || !strings.Contains(got, "Please wait") {
		t.Errorf("ErrorAlert = %s", got)
	}
}

func TestPageReport(t *testing.T) {
	tests := []struct {
		page  core.PageState
		shown int
		want  string
	}{
		{core.PageState{Index: 0, TotalRecords: 23}, 5, "Showing 1 to 5 of 23"},
		{core.PageState{Index: 4, TotalRecords: 23}, 3, "Showing 21 to 23 of 23"},
		{core.PageState{Index: 5, TotalRecords: 23}, 0, "Showing 0 to 0 of 23"},
		{core.PageState{Index: 858993459, TotalRecords: 23}, 0, "Showing 0 to 0 of 23"},
	}
	for _, tt := range tests {
		if got := pageReport(tt.page, tt.shown); got != tt.want {
			t.Errorf("pageReport(%+v, %d) = %q, want %q", tt.page, tt.shown, got, tt.want)
		}
	}
}
