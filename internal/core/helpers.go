package core

import (
	"strconv"
	"strings"
)

// ParseLimit converts overlay input to a selection limit. Leading whitespace
// is ignored and the longest leading run of digits is used, so "3", " 3" and
// "3 rows" all give 3. Empty, non-numeric, negative, or overflowing input
// gives 0.
func ParseLimit(raw string) int {
	s := strings.TrimLeft(raw, " \t\r\n")
	if strings.HasPrefix(s, "+") {
		s = s[1:]
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// indexByID returns the position of id in list, or -1.
func indexByID(list []Artwork, id int) int {
	for i, a := range list {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// dedupeByID returns list without repeated IDs, keeping first occurrences.
func dedupeByID(list []Artwork) []Artwork {
	seen := make(map[int]bool, len(list))
	out := make([]Artwork, 0, len(list))
	for _, a := range list {
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		out = append(out, a)
	}
	return out
}

// withoutIDs returns a copy of list minus the artworks whose IDs are in drop.
func withoutIDs(list []Artwork, drop map[int]bool) []Artwork {
	out := make([]Artwork, 0, len(list))
	for _, a := range list {
		if !drop[a.ID] {
			out = append(out, a)
		}
	}
	return out
}
