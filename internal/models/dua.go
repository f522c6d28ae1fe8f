package models

// Dua is a supplication returned by the schedule provider.
type Dua struct {
	Title       string `json:"judul"`
	Source      string `json:"source"`
	Arabic      string `json:"arab"`
	Translation string `json:"indo"`
}
