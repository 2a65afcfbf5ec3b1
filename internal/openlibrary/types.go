package openlibrary

import "encoding/json"

// bibKeyPrefix is the identifier scheme used in bibkeys and response keys.
const bibKeyPrefix = "ISBN:"

// booksResponse is the /api/books?jscmd=data payload, keyed by bibkey.
// Entries are kept raw so a malformed entry can be skipped on its own.
type booksResponse map[string]json.RawMessage

// bookEntry is a single jscmd=data entry. Only the fields the report needs
// are decoded. Textual fields stay raw because OpenLibrary is not consistent
// about strings versus numbers.
type bookEntry struct {
	Title         json.RawMessage `json:"title"`
	Subtitle      json.RawMessage `json:"subtitle"`
	Authors       []bookAuthor    `json:"authors"`
	NumberOfPages json.RawMessage `json:"number_of_pages"`
	PublishDate   json.RawMessage `json:"publish_date"`
}

type bookAuthor struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
