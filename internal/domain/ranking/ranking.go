// Package ranking builds positioned leaderboards over hero rows.
//
// Ordering is points descending, experience descending, with stable input
// order breaking remaining ties. Positions are assigned 1-based after the
// sort; equal scores still get distinct consecutive positions.
package ranking

import "sort"

// Row is one ranked participant before positioning.
type Row struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Level      int    `json:"level"`
	Points     int    `json:"points"`
	Experience int    `json:"experience"`
}

// Entry is a positioned leaderboard row.
type Entry struct {
	Position int `json:"position"`
	Row
}

// Build sorts rows and assigns positions. The input slice is not modified.
func Build(rows []Row) []Entry {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Points != sorted[j].Points {
			return sorted[i].Points > sorted[j].Points
		}
		return sorted[i].Experience > sorted[j].Experience
	})

	entries := make([]Entry, len(sorted))
	for i, row := range sorted {
		entries[i] = Entry{Position: i + 1, Row: row}
	}
	return entries
}

// Top builds the leaderboard and keeps the first n entries. A non-positive
// n keeps everything.
func Top(rows []Row, n int) []Entry {
	entries := Build(rows)
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
