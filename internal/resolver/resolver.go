// Package resolver turns lines of ISBNs into report records, serving known
// ISBNs from an in-memory cache and fetching the rest in one batch per line.
package resolver

import (
	"context"
	"log/slog"

	"github.com/lepinkainen/bookinfo/internal/csvutil"
	"github.com/lepinkainen/bookinfo/internal/enrichment/book"
)

// Fetcher looks up metadata for a batch of ISBNs in a single remote call.
// The returned map is keyed by ISBN; ISBNs the source does not know are omitted.
type Fetcher interface {
	FetchBooks(ctx context.Context, isbns []string) (map[string]book.Metadata, error)
}

// Stats counts what happened during a run.
type Stats struct {
	LinesProcessed int
	LinesSkipped   int
	FetchCalls     int
	FetchFailures  int
	CacheHits      int
	RemoteHits     int
	Dropped        int
}

// Resolver drives the cache-then-fetch loop. It processes lines strictly in
// order and is not safe for concurrent use.
type Resolver struct {
	fetcher Fetcher
	cache   *Cache
	stats   Stats
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithCache makes the resolver start from an existing cache.
func WithCache(cache *Cache) Option {
	return func(r *Resolver) {
		r.cache = cache
	}
}

// New creates a Resolver backed by fetcher with an empty cache.
func New(fetcher Fetcher, opts ...Option) *Resolver {
	r := &Resolver{fetcher: fetcher}
	for _, opt := range opts {
		opt(r)
	}
	if r.cache == nil {
		r.cache = NewCache()
	}
	return r
}

// Cache returns the resolver's cache.
func (r *Resolver) Cache() *Cache {
	return r.cache
}

// Stats returns the counters accumulated so far.
func (r *Resolver) Stats() Stats {
	return r.stats
}

// Process resolves every line and returns the records in input order.
// Row numbers are the 1-based physical line positions; blank lines produce
// no records but still count toward the numbering.
func (r *Resolver) Process(ctx context.Context, lines []string) []book.Record {
	var records []book.Record
	for i, line := range lines {
		if csvutil.IsBlank(line) {
			r.stats.LinesSkipped++
			continue
		}
		records = append(records, r.ProcessLine(ctx, i+1, line)...)
	}
	return records
}

// ProcessLine resolves the ISBNs of a single line.
//
// The missing set is computed against the cache as it was when the line
// started. At most one fetch is made, for the distinct missing ISBNs only.
// Every ISBN in the missing set is reported as FromRemote, the others as
// FromCache. ISBNs that are still not cached after the fetch are dropped.
func (r *Resolver) ProcessLine(ctx context.Context, row int, line string) []book.Record {
	r.stats.LinesProcessed++

	isbns := csvutil.SplitIdentifiers(line)
	if len(isbns) == 0 {
		return nil
	}

	missing := make(map[string]struct{})
	var missingOrdered []string
	for _, isbn := range isbns {
		if r.cache.Has(isbn) {
			continue
		}
		if _, seen := missing[isbn]; seen {
			continue
		}
		missing[isbn] = struct{}{}
		missingOrdered = append(missingOrdered, isbn)
	}

	if len(missingOrdered) > 0 {
		r.fetch(ctx, row, missingOrdered)
	}

	records := make([]book.Record, 0, len(isbns))
	for _, isbn := range isbns {
		meta, ok := r.cache.Get(isbn)
		if !ok {
			slog.Debug("No metadata for ISBN, skipping", "row", row, "isbn", isbn)
			r.stats.Dropped++
			continue
		}

		provenance := book.FromCache
		if _, wasMissing := missing[isbn]; wasMissing {
			provenance = book.FromRemote
			r.stats.RemoteHits++
		} else {
			r.stats.CacheHits++
		}

		records = append(records, book.Record{
			Row:        row,
			Provenance: provenance,
			ISBN:       isbn,
			Metadata:   meta,
		})
	}

	return records
}

// fetch looks up the missing ISBNs and merges whatever came back into the cache.
// A failed lookup is not fatal: the ISBNs stay uncached and will be
// requested again the next time a line references them.
func (r *Resolver) fetch(ctx context.Context, row int, isbns []string) {
	r.stats.FetchCalls++
	slog.Debug("Fetching missing ISBNs", "row", row, "count", len(isbns))

	found, err := r.fetcher.FetchBooks(ctx, isbns)
	if err != nil {
		r.stats.FetchFailures++
		slog.Warn("Book lookup failed", "row", row, "isbns", isbns, "error", err)
	}

	for isbn, meta := range found {
		if meta.Title == "" {
			slog.Debug("Ignoring lookup result without title", "isbn", isbn)
			continue
		}
		r.cache.Set(isbn, meta)
	}
}
