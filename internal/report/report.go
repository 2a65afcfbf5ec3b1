// Package report renders resolved book records as the semicolon-delimited
// ISBN report.
package report

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lepinkainen/bookinfo/internal/enrichment/book"
	"github.com/lepinkainen/bookinfo/internal/fileutil"
)

const (
	// Header is the fixed first line of every report.
	Header = "Row Number;Data Retrieval Type;ISBN;Title;Subtitle;Author Name(s);Number of Pages;Publish Date"

	// Delimiter separates fields within a row.
	Delimiter = ";"

	// NotAvailable replaces missing optional fields.
	NotAvailable = "N/A"
)

// FormatRecord renders one record as a report row without a line terminator.
// The author field is always quoted because author names are joined with
// the same character that delimits fields.
func FormatRecord(r book.Record) string {
	fields := []string{
		strconv.Itoa(r.Row),
		r.Provenance.String(),
		r.ISBN,
		r.Title,
		orNotAvailable(r.Subtitle),
		`"` + r.AuthorNames() + `"`,
		orNotAvailable(r.NumberOfPages),
		orNotAvailable(r.PublishDate),
	}
	return strings.Join(fields, Delimiter)
}

// Render returns the complete report: the header followed by one row per record.
func Render(records []book.Record) []byte {
	var buf bytes.Buffer
	buf.WriteString(Header)
	buf.WriteByte('\n')
	for _, r := range records {
		buf.WriteString(FormatRecord(r))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// WriteFile writes the report to path, creating parent directories and
// replacing any existing file.
func WriteFile(path string, records []book.Record) error {
	slog.Info("Writing report", "filename", path, "rows", len(records))
	if _, err := fileutil.WriteFileWithOverwrite(path, Render(records), 0644, true); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	slog.Info("Report written", "filename", path)
	return nil
}

func orNotAvailable(value string) string {
	if value == "" {
		return NotAvailable
	}
	return value
}
