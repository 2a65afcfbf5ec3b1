// Package book provides the shared book metadata and report record types used
// by the ISBN resolver, the OpenLibrary client and the report writers.
package book

import "strings"

// AuthorSeparator joins author names in a single output field.
const AuthorSeparator = ";"

// Metadata contains the descriptive fields known for one ISBN.
// Optional fields use the empty string for "not available".
type Metadata struct {
	// Title is the main title of the book. Always set for cached entries.
	Title string `json:"title"`

	// Subtitle is the secondary title or tagline.
	Subtitle string `json:"subtitle,omitempty"`

	// Authors are the author names in the order the source listed them.
	Authors []string `json:"authors"`

	// NumberOfPages is the page count as text.
	NumberOfPages string `json:"number_of_pages,omitempty"`

	// PublishDate is the publication date (format varies by source).
	PublishDate string `json:"publish_date,omitempty"`
}

// AuthorNames returns the author names joined with AuthorSeparator.
func (m Metadata) AuthorNames() string {
	return strings.Join(m.Authors, AuthorSeparator)
}
