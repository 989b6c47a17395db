package models

import "strings"

// Movie is a catalog entry. Field names follow the public wikipedia-movie-data dataset.
type Movie struct {
	Title           string   `json:"title"`
	Year            int      `json:"year"`
	Cast            []string `json:"cast,omitempty"`
	Genres          []string `json:"genres,omitempty"`
	Href            string   `json:"href,omitempty"`
	Extract         string   `json:"extract,omitempty"`
	Thumbnail       string   `json:"thumbnail,omitempty"`
	ThumbnailWidth  int      `json:"thumbnail_width,omitempty"`
	ThumbnailHeight int      `json:"thumbnail_height,omitempty"`
}

// HasGenre reports whether the movie is tagged with genre, ignoring case.
func (m Movie) HasGenre(genre string) bool {
	for _, g := range m.Genres {
		if strings.EqualFold(g, genre) {
			return true
		}
	}
	return false
}

// MoviePatch carries a partial update. Nil fields are left untouched.
type MoviePatch struct {
	Year            *int      `json:"year,omitempty"`
	Cast            *[]string `json:"cast,omitempty"`
	Genres          *[]string `json:"genres,omitempty"`
	Href            *string   `json:"href,omitempty"`
	Extract         *string   `json:"extract,omitempty"`
	Thumbnail       *string   `json:"thumbnail,omitempty"`
	ThumbnailWidth  *int      `json:"thumbnail_width,omitempty"`
	ThumbnailHeight *int      `json:"thumbnail_height,omitempty"`
}

// Apply merges the set fields of p into m.
func (p MoviePatch) Apply(m *Movie) {
	if p.Year != nil {
		m.Year = *p.Year
	}
	if p.Cast != nil {
		m.Cast = append([]string(nil), (*p.Cast)...)
	}
	if p.Genres != nil {
		m.Genres = append([]string(nil), (*p.Genres)...)
	}
	if p.Href != nil {
		m.Href = *p.Href
	}
	if p.Extract != nil {
		m.Extract = *p.Extract
	}
	if p.Thumbnail != nil {
		m.Thumbnail = *p.Thumbnail
	}
	if p.ThumbnailWidth != nil {
		m.ThumbnailWidth = *p.ThumbnailWidth
	}
	if p.ThumbnailHeight != nil {
		m.ThumbnailHeight = *p.ThumbnailHeight
	}
}
