package resolve

import (
	"strings"

	"github.com/lepinkainen/bookinfo/internal/cmdutil"
	"github.com/lepinkainen/bookinfo/internal/enrichment/book"
)

const bookLookupsSchema = `CREATE TABLE IF NOT EXISTS book_lookups (
		row_number INTEGER NOT NULL,
		data_retrieval_type TEXT NOT NULL,
		isbn TEXT NOT NULL,
		title TEXT NOT NULL,
		subtitle TEXT,
		authors TEXT,
		number_of_pages TEXT,
		publish_date TEXT
	)`

// Convert a record to map[string]any for database insertion
func recordToMap(record book.Record) map[string]any {
	return map[string]any{
		"row_number":          record.Row,
		"data_retrieval_type": record.Provenance.String(),
		"isbn":                record.ISBN,
		"title":               record.Title,
		"subtitle":            nullIfEmpty(record.Subtitle),
		"authors":             strings.Join(record.Authors, book.AuthorSeparator),
		"number_of_pages":     nullIfEmpty(record.NumberOfPages),
		"publish_date":        nullIfEmpty(record.PublishDate),
	}
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func writeRecordsToDatasetteIfEnabled(records []book.Record) error {
	return cmdutil.WriteToDatastore(records, bookLookupsSchema, "book_lookups", "book lookups", recordToMap)
}
