package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

/* ----------------------------------------
	KEY MENU
---------------------------------------- */

// MenuItem binds keys to a table action. The first key is shown in the help line.
type MenuItem struct {
	Keys   []string
	Label  string
	Action func(m *Model) tea.Cmd
}

// Menu is the set of actions available while the table has focus.
type Menu struct {
	Title string
	Items []MenuItem
}

// lookup returns the item bound to key.
func (m *Menu) lookup(key string) (MenuItem, bool) {
	for _, item := range m.Items {
		for _, k := range item.Keys {
			if k == key {
				return item, true
			}
		}
	}
	return MenuItem{}, false
}

/* ----------------------------------------
	MENU DEFINITION
---------------------------------------- */

func buildMenu() *Menu {
	return &Menu{
		Title: "Artwork Table",
		Items: []MenuItem{
			{Keys: []string{"up", "k"}, Label: "Up", Action: func(m *Model) tea.Cmd {
				m.moveCursor(-1)
				return nil
			}},
			{Keys: []string{"down", "j"}, Label: "Down", Action: func(m *Model) tea.Cmd {
				m.moveCursor(1)
				return nil
			}},
			{Keys: []string{"left", "h"}, Label: "Prev", Action: func(m *Model) tea.Cmd {
				return m.gotoPage(m.table.Snapshot().Page.Index - 1)
			}},
			{Keys: []string{"right", "l"}, Label: "Next", Action: func(m *Model) tea.Cmd {
				s := m.table.Snapshot()
				if !s.Page.HasNext() {
					return nil
				}
				return m.gotoPage(s.Page.Index + 1)
			}},
			{Keys: []string{"home", "g"}, Label: "First", Action: func(m *Model) tea.Cmd {
				return m.gotoPage(0)
			}},
			{Keys: []string{"end", "G"}, Label: "Last", Action: func(m *Model) tea.Cmd {
				last := m.table.Snapshot().Page.PageCount() - 1
				return m.gotoPage(max(last, 0))
			}},
			{Keys: []string{" ", "x"}, Label: "Toggle", Action: (*Model).toggleRow},
			{Keys: []string{"a"}, Label: "All", Action: (*Model).selectAll},
			{Keys: []string{"c"}, Label: "None", Action: (*Model).clearPage},
			{Keys: []string{"r"}, Label: "Select Rows", Action: (*Model).openOverlay},
			{Keys: []string{"s"}, Label: "Submit", Action: (*Model).submit},
			{Keys: []string{"q", "ctrl+c"}, Label: "Quit", Action: func(m *Model) tea.Cmd {
				return tea.Quit
			}},
		},
	}
}
