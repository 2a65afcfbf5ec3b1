package resolve

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lepinkainen/bookinfo/internal/csvutil"
	"github.com/lepinkainen/bookinfo/internal/fileutil"
	"github.com/lepinkainen/bookinfo/internal/openlibrary"
	"github.com/lepinkainen/bookinfo/internal/report"
	"github.com/lepinkainen/bookinfo/internal/resolver"
)

// Resolve reads ISBN lines from the input file, resolves them against
// OpenLibrary and writes the report.
//
// An unreadable input file aborts the run before anything is written. A
// report that cannot be written is logged, the remaining exports are still
// attempted, and the write error is returned at the end.
func Resolve(params Params) error {
	ctx := context.Background()

	slog.Info("Reading input file", "filename", params.InputPath)
	lines, err := csvutil.ReadLines(params.InputPath)
	if err != nil {
		return fmt.Errorf("failed to read ISBN input: %w", err)
	}

	client := openlibrary.NewClient(
		openlibrary.WithBaseURL(params.BaseURL),
		openlibrary.WithTimeout(params.Timeout),
	)
	r := resolver.New(client)

	records := r.Process(ctx, lines)

	stats := r.Stats()
	slog.Info("Resolution complete",
		"lines", stats.LinesProcessed,
		"blank_lines", stats.LinesSkipped,
		"rows", len(records),
		"server", stats.RemoteHits,
		"cache", stats.CacheHits,
		"requests", stats.FetchCalls,
		"failed_requests", stats.FetchFailures,
		"unresolved", stats.Dropped,
	)

	reportErr := report.WriteFile(params.OutputPath, records)
	if reportErr != nil {
		slog.Error("Error writing report", "filename", params.OutputPath, "error", reportErr)
	}

	if params.WriteJSON {
		if _, err := fileutil.WriteJSONFile(records, params.JSONOutput, params.Overwrite); err != nil {
			slog.Error("Error writing records to JSON", "error", err)
		}
	}

	if err := writeRecordsToDatasetteIfEnabled(records); err != nil {
		slog.Error("Error writing records to datastore", "error", err)
	}

	return reportErr
}
