package book

import (
	"encoding/json"
	"fmt"
)

// Provenance tells whether a record was served from the cache or freshly fetched.
type Provenance int

const (
	// FromRemote marks an ISBN that was missing from the cache when its line started.
	FromRemote Provenance = iota + 1
	// FromCache marks an ISBN that was already cached when its line started.
	FromCache
)

// String returns the token used in the report's "Data Retrieval Type" column.
func (p Provenance) String() string {
	switch p {
	case FromRemote:
		return "Server"
	case FromCache:
		return "Cache"
	default:
		return fmt.Sprintf("Provenance(%d)", int(p))
	}
}

// MarshalJSON renders the provenance as its report token.
func (p Provenance) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// Record is one output row: a resolved ISBN on a given input line.
type Record struct {
	// Row is the 1-based index of the physical input line.
	Row int `json:"row_number"`

	// Provenance is the data retrieval type for this row.
	Provenance Provenance `json:"data_retrieval_type"`

	// ISBN is the identifier as it appeared in the input, trimmed of surrounding whitespace.
	ISBN string `json:"isbn"`

	Metadata
}
