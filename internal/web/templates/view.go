// Package templates renders the artwork table pages. Components are written
// in .templ files; run `templ generate` after editing them.
package templates

import (
	"fmt"
	"strconv"

	"github.com/JonMunkholm/ArtworkTable/internal/core"
	"github.com/a-h/templ"
)

// pageWindow is how many numbered page links the paginator shows.
const pageWindow = 5

// TableView is everything the table panel renders.
type TableView struct {
	State   core.Snapshot
	Notices []core.Notice
}

// column describes one data column.
type column struct {
	header string
	value  func(core.Artwork) string
}

var columns = []column{
	{"Title", func(a core.Artwork) string { return a.Title }},
	{"Place of Origin", func(a core.Artwork) string { return a.PlaceOfOrigin }},
	{"Artist", func(a core.Artwork) string { return a.ArtistDisplay }},
	{"Inscriptions", func(a core.Artwork) string { return a.Inscriptions }},
	{"Start Date", func(a core.Artwork) string { return year(a.DateStart) }},
	{"End Date", func(a core.Artwork) string { return year(a.DateEnd) }},
}

// year renders a date column; the API's null arrives as 0 and shows blank.
func year(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func selectionCount(s core.Snapshot) string {
	if s.Limit != 0 {
		return fmt.Sprintf("%d selected of %d", len(s.Selection), s.Limit)
	}
	return fmt.Sprintf("%d selected", len(s.Selection))
}

// pageReport describes the rows on screen. A page past the end shows no
// rows and reports 0 to 0.
func pageReport(p core.PageState, shown int) string {
	first, last := 0, 0
	if shown > 0 {
		first = p.First() + 1
		last = p.First() + shown
	}
	return fmt.Sprintf("Showing %d to %d of %d", first, last, p.TotalRecords)
}

func pageHref(index int) templ.SafeURL {
	return templ.SafeURL("/page/" + strconv.Itoa(index))
}

func toggleHref(id int) string {
	return "/selection/toggle/" + strconv.Itoa(id)
}

// pageNumbers returns the page indexes linked around the current page.
func pageNumbers(p core.PageState) []int {
	start, end := window(p.Index, p.PageCount())
	out := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, i)
	}
	return out
}

// window returns the [start, end) page indexes shown around current.
func window(current, count int) (int, int) {
	start := current - pageWindow/2
	if start < 0 {
		start = 0
	}
	end := start + pageWindow
	if end > count {
		end = count
		start = end - pageWindow
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
