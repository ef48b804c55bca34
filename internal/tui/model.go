// Package tui is a terminal front end for the artwork table.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/JonMunkholm/ArtworkTable/internal/core"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// pageLoadedMsg reports the outcome of a page load started by gotoPage.
type pageLoadedMsg struct {
	index int
	err   error
}

// submittedMsg reports the outcome of Submit.
type submittedMsg struct {
	notice core.Notice
	err    error
}

// Model is the bubbletea model over one table.
type Model struct {
	ctx    context.Context
	table  *core.Table
	menu   *Menu
	input  textinput.Model
	cursor int
	notice core.Notice
	status string
	width  int
}

// New creates a model over table. ctx bounds page loads and submissions.
func New(ctx context.Context, table *core.Table) Model {
	inp := textinput.New()
	inp.Placeholder = "Enter number of rows"
	inp.Prompt = "> "
	inp.CharLimit = 9

	return Model{
		ctx:   ctx,
		table: table,
		menu:  buildMenu(),
		input: inp,
	}
}

// Init loads the first page.
func (m Model) Init() tea.Cmd {
	return m.gotoPage(0)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case pageLoadedMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, core.ErrStaleResponse) {
				m.status = core.FormatUserError(msg.err)
			}
			return m, nil
		}
		m.status = ""
		m.clampCursor()
		return m, nil

	case submittedMsg:
		m.notice = msg.notice
		if msg.err != nil {
			m.status = core.FormatUserError(msg.err)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.table.OverlayOpen() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	// A blocking notice swallows input until acknowledged.
	if m.notice.Blocking() {
		if key == "enter" || key == "esc" {
			m.notice = core.Notice{}
		}
		return m, nil
	}

	if m.table.OverlayOpen() {
		switch key {
		case "enter":
			m.table.ConfirmLimit()
			m.input.Blur()
			return m, nil
		case "esc":
			m.table.HideOverlay()
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.table.SetLimitInput(m.input.Value())
		return m, cmd
	}

	// Success notices clear on the next key.
	m.notice = core.Notice{}

	if item, ok := m.menu.lookup(key); ok {
		return m, item.Action(&m)
	}
	return m, nil
}

/* ----------------------------------------
	ACTIONS
---------------------------------------- */

func (m *Model) gotoPage(index int) tea.Cmd {
	if index < 0 {
		return nil
	}
	ctx, table := m.ctx, m.table
	return func() tea.Msg {
		return pageLoadedMsg{index: index, err: table.LoadPage(ctx, index)}
	}
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	n := len(m.table.Snapshot().Records)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) apply(proposed []core.Artwork) {
	m.notice = m.table.OnSelectionChange(m.ctx, proposed)
}

func (m *Model) toggleRow() tea.Cmd {
	records := m.table.Snapshot().Records
	if m.cursor >= len(records) {
		return nil
	}
	proposed, err := m.table.ProposeToggle(records[m.cursor].ID)
	if err != nil {
		m.status = core.FormatUserError(err)
		return nil
	}
	m.apply(proposed)
	return nil
}

func (m *Model) selectAll() tea.Cmd {
	m.apply(m.table.ProposeSelectAll())
	return nil
}

func (m *Model) clearPage() tea.Cmd {
	m.apply(m.table.ProposeClearPage())
	return nil
}

func (m *Model) openOverlay() tea.Cmd {
	if !m.table.ToggleOverlay() {
		m.input.Blur()
		return nil
	}
	m.input.SetValue(m.table.Snapshot().LimitInput())
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) submit() tea.Cmd {
	ctx, table := m.ctx, m.table
	return func() tea.Msg {
		notice, err := table.Submit(ctx)
		return submittedMsg{notice: notice, err: err}
	}
}

/* ----------------------------------------
	VIEW
---------------------------------------- */

type column struct {
	title string
	width int
	value func(core.Artwork) string
}

var columns = []column{
	{"Title", 28, func(a core.Artwork) string { return a.Title }},
	{"Place of Origin", 16, func(a core.Artwork) string { return a.PlaceOfOrigin }},
	{"Artist", 24, func(a core.Artwork) string { return a.ArtistDisplay }},
	{"Inscriptions", 18, func(a core.Artwork) string { return a.Inscriptions }},
	{"Start Date", 10, func(a core.Artwork) string { return year(a.DateStart) }},
	{"End Date", 10, func(a core.Artwork) string { return year(a.DateEnd) }},
}

func year(y int) string {
	if y == 0 {
		return ""
	}
	return strconv.Itoa(y)
}

func (m Model) View() string {
	s := m.table.Snapshot()
	var b strings.Builder

	b.WriteString(titleStyle.Render("Artwork Selection"))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render("Artwork Table"))
	b.WriteString("\n\n")

	count := fmt.Sprintf("%d selected", len(s.Selection))
	if s.Limit != 0 {
		count += fmt.Sprintf(" of %d", s.Limit)
	}
	b.WriteString(mutedStyle.Render(count))
	if s.Loading {
		b.WriteString(mutedStyle.Render("  Loading..."))
	}
	b.WriteString("\n")

	if s.OverlayOpen {
		b.WriteString(m.overlayView())
		b.WriteString("\n")
	}

	b.WriteString(tableView(s, m.cursor))
	b.WriteString("\n")
	b.WriteString(paginatorView(s.Page, len(s.Records)))
	b.WriteString("\n\n")

	if s.SubmitDisabled {
		b.WriteString(disabledStyle.Render("[ Submit ]"))
	} else {
		b.WriteString(enabledStyle.Render("[ Submit ]"))
	}
	b.WriteString("\n")

	if m.notice.Blocking() {
		b.WriteString("\n")
		b.WriteString(modalStyle.Render(m.notice.Message + "\n\n" + mutedStyle.Render("enter  OK")))
		b.WriteString("\n")
	} else if !m.notice.IsZero() {
		b.WriteString("\n")
		b.WriteString(successStyle.Render(m.notice.Message))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.helpView())
	return b.String()
}

func (m Model) overlayView() string {
	body := "How many rows do you want to select?\n" + m.input.View() + "\n" +
		mutedStyle.Render("enter  Set Limit   esc  close")
	return overlayStyle.Render(body)
}

func tableView(s core.Snapshot, cursor int) string {
	var b strings.Builder

	header := []string{"    "}
	for _, c := range columns {
		header = append(header, pad(c.title, c.width))
	}
	b.WriteString(headerStyle.Render(strings.Join(header, " ")))
	b.WriteString("\n")

	if len(s.Records) == 0 {
		b.WriteString(mutedStyle.Render("No artworks found."))
		b.WriteString("\n")
		return b.String()
	}

	for i, a := range s.Records {
		mark := "[ ]"
		style := rowStyle
		if s.Selected(a.ID) {
			mark = "[x]"
			style = selectedStyle
		}

		prefix := " "
		if i == cursor {
			prefix = cursorStyle.Render(">")
		}

		cells := []string{mark}
		for _, c := range columns {
			cells = append(cells, pad(c.value(a), c.width))
		}
		b.WriteString(prefix)
		b.WriteString(style.Render(strings.Join(cells, " ")))
		b.WriteString("\n")
	}
	return b.String()
}

func paginatorView(p core.PageState, shown int) string {
	first := 0
	if shown > 0 {
		first = p.First() + 1
	}
	pages := max(p.PageCount(), 1)
	return mutedStyle.Render(fmt.Sprintf("Showing %d to %d of %d  |  Page %d/%d",
		first, p.First()+shown, p.TotalRecords, p.Index+1, pages))
}

func (m Model) helpView() string {
	parts := make([]string, 0, len(m.menu.Items))
	for _, item := range m.menu.Items {
		key := item.Keys[0]
		if key == " " {
			key = "space"
		}
		parts = append(parts, key+" "+item.Label)
	}
	return mutedStyle.Render(strings.Join(parts, "  "))
}

// pad truncates or right-pads s to exactly width cells.
func pad(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	if lipgloss.Width(s) > width {
		r := []rune(s)
		for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
			r = r[:len(r)-1]
		}
		s = string(r) + "…"
	}
	return s + strings.Repeat(" ", max(width-lipgloss.Width(s), 0))
}
