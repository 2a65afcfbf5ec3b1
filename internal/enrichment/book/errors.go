package book

import "errors"

var (
	// ErrNoIdentifiers is returned when a lookup is requested for an empty set of ISBNs.
	ErrNoIdentifiers = errors.New("no ISBNs to look up")

	// ErrMissingTitle is returned when a lookup entry carries no title and cannot form a record.
	ErrMissingTitle = errors.New("book entry has no title")

	// ErrAPIUnavailable is returned when the external API answers with a non-success status.
	ErrAPIUnavailable = errors.New("API unavailable")
)
