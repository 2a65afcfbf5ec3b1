package resolver

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/lepinkainen/bookinfo/internal/enrichment/book"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFetcher answers from a fixed catalogue and records every call.
type fakeFetcher struct {
	catalogue map[string]book.Metadata
	calls     [][]string
	failCalls map[int]bool
}

func newFakeFetcher(catalogue map[string]book.Metadata) *fakeFetcher {
	return &fakeFetcher{catalogue: catalogue, failCalls: map[int]bool{}}
}

func (f *fakeFetcher) FetchBooks(_ context.Context, isbns []string) (map[string]book.Metadata, error) {
	f.calls = append(f.calls, append([]string(nil), isbns...))
	if f.failCalls[len(f.calls)] {
		return nil, errors.New("connection refused")
	}

	result := make(map[string]book.Metadata)
	for _, isbn := range isbns {
		if meta, ok := f.catalogue[isbn]; ok {
			result[isbn] = meta
		}
	}
	return result, nil
}

var (
	foxMeta = book.Metadata{
		Title:         "Fantastic Mr. Fox",
		Authors:       []string{"Roald Dahl"},
		NumberOfPages: "96",
		PublishDate:   "October 1, 1988",
	}
	gamesMeta = book.Metadata{
		Title:       "The Hunger Games",
		Authors:     []string{"Suzanne Collins"},
		PublishDate: "2008",
	}
)

const (
	foxISBN   = "9780140328721"
	gamesISBN = "9780439023528"
)

func testCatalogue() map[string]book.Metadata {
	return map[string]book.Metadata{
		foxISBN:   foxMeta,
		gamesISBN: gamesMeta,
	}
}

func TestProcess_FirstLineFetchesBoth(t *testing.T) {
	fetcher := newFakeFetcher(testCatalogue())
	r := New(fetcher)

	records := r.Process(context.Background(), []string{foxISBN + "," + gamesISBN})

	require.Len(t, fetcher.calls, 1)
	assert.Equal(t, []string{foxISBN, gamesISBN}, fetcher.calls[0])

	require.Len(t, records, 2)
	assert.Equal(t, book.Record{Row: 1, Provenance: book.FromRemote, ISBN: foxISBN, Metadata: foxMeta}, records[0])
	assert.Equal(t, book.Record{Row: 1, Provenance: book.FromRemote, ISBN: gamesISBN, Metadata: gamesMeta}, records[1])
}

func TestProcess_RepeatedLineServedFromCache(t *testing.T) {
	fetcher := newFakeFetcher(testCatalogue())
	r := New(fetcher)

	line := foxISBN + "," + gamesISBN
	records := r.Process(context.Background(), []string{line, line})

	require.Len(t, fetcher.calls, 1, "second line must not trigger a fetch")
	require.Len(t, records, 4)

	for _, rec := range records[2:] {
		assert.Equal(t, 2, rec.Row)
		assert.Equal(t, book.FromCache, rec.Provenance)
	}
	assert.Equal(t, records[0].Metadata, records[2].Metadata)
	assert.Equal(t, records[1].Metadata, records[3].Metadata)
}

func TestProcess_MixedLineFetchesOnlyMissing(t *testing.T) {
	fetcher := newFakeFetcher(testCatalogue())
	r := New(fetcher)

	records := r.Process(context.Background(), []string{foxISBN, gamesISBN + "," + foxISBN})

	require.Len(t, fetcher.calls, 2)
	assert.Equal(t, []string{gamesISBN}, fetcher.calls[1])

	require.Len(t, records, 3)
	assert.Equal(t, gamesISBN, records[1].ISBN)
	assert.Equal(t, book.FromRemote, records[1].Provenance)
	assert.Equal(t, foxISBN, records[2].ISBN)
	assert.Equal(t, book.FromCache, records[2].Provenance)
}

func TestProcess_DuplicatesWithinLine(t *testing.T) {
	fetcher := newFakeFetcher(testCatalogue())
	r := New(fetcher)

	records := r.Process(context.Background(), []string{foxISBN + "," + foxISBN})

	require.Len(t, fetcher.calls, 1)
	assert.Equal(t, []string{foxISBN}, fetcher.calls[0], "missing set is deduplicated")

	require.Len(t, records, 2, "output keeps duplicates")
	for _, rec := range records {
		assert.Equal(t, book.FromRemote, rec.Provenance, "both occurrences were in the line's missing set")
	}
}

func TestProcess_BlankLinesKeepRowNumbers(t *testing.T) {
	fetcher := newFakeFetcher(testCatalogue())
	r := New(fetcher)

	records := r.Process(context.Background(), []string{"", foxISBN, "", "", gamesISBN})

	require.Len(t, records, 2)
	assert.Equal(t, 2, records[0].Row)
	assert.Equal(t, 5, records[1].Row)
	assert.Equal(t, 3, r.Stats().LinesSkipped)
	assert.Equal(t, 2, r.Stats().LinesProcessed)
}

func TestProcess_SeparatorOnlyLineMakesNoCall(t *testing.T) {
	fetcher := newFakeFetcher(testCatalogue())
	r := New(fetcher)

	records := r.Process(context.Background(), []string{",,", foxISBN})

	assert.Len(t, fetcher.calls, 1)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].Row)
}

func TestProcess_UnknownISBNIsDropped(t *testing.T) {
	fetcher := newFakeFetcher(testCatalogue())
	r := New(fetcher)

	records := r.Process(context.Background(), []string{foxISBN + ",0000000000"})

	require.Len(t, fetcher.calls, 1)
	require.Len(t, records, 1)
	assert.Equal(t, foxISBN, records[0].ISBN)
	assert.Equal(t, 1, r.Stats().Dropped)
	assert.False(t, r.Cache().Has("0000000000"))
}

func TestProcess_UnknownISBNIsRequestedAgain(t *testing.T) {
	fetcher := newFakeFetcher(testCatalogue())
	r := New(fetcher)

	r.Process(context.Background(), []string{"0000000000", "0000000000," + foxISBN})

	require.Len(t, fetcher.calls, 2)
	assert.Equal(t, []string{"0000000000", foxISBN}, fetcher.calls[1])
}

func TestProcess_FetchFailureRetriedOnLaterLine(t *testing.T) {
	fetcher := newFakeFetcher(testCatalogue())
	fetcher.failCalls[1] = true
	r := New(fetcher)

	records := r.Process(context.Background(), []string{foxISBN + "," + gamesISBN, foxISBN})

	require.Len(t, fetcher.calls, 2, "failed ISBNs stay missing and are fetched again")
	assert.Equal(t, []string{foxISBN}, fetcher.calls[1])

	require.Len(t, records, 1, "failed line produces no records")
	assert.Equal(t, 2, records[0].Row)
	assert.Equal(t, book.FromRemote, records[0].Provenance)

	stats := r.Stats()
	assert.Equal(t, 2, stats.FetchCalls)
	assert.Equal(t, 1, stats.FetchFailures)
	assert.Equal(t, 2, stats.Dropped)
}

func TestProcess_FailureDoesNotAffectCachedISBNs(t *testing.T) {
	fetcher := newFakeFetcher(testCatalogue())
	fetcher.failCalls[2] = true
	r := New(fetcher)

	records := r.Process(context.Background(), []string{foxISBN, foxISBN + "," + gamesISBN})

	require.Len(t, records, 2)
	assert.Equal(t, foxISBN, records[1].ISBN)
	assert.Equal(t, book.FromCache, records[1].Provenance)
	assert.Equal(t, 2, records[1].Row)
}

func TestProcess_RecordsBelongToTheirLine(t *testing.T) {
	fetcher := newFakeFetcher(testCatalogue())
	r := New(fetcher)

	lines := []string{foxISBN, "", gamesISBN + ",1234," + foxISBN, gamesISBN}
	records := r.Process(context.Background(), lines)

	for _, rec := range records {
		assert.Contains(t, strings.Split(lines[rec.Row-1], ","), rec.ISBN)
	}
}

func TestProcess_PreSeededCache(t *testing.T) {
	cache := NewCache()
	cache.Set(foxISBN, foxMeta)

	fetcher := newFakeFetcher(testCatalogue())
	r := New(fetcher, WithCache(cache))

	records := r.Process(context.Background(), []string{foxISBN})

	assert.Empty(t, fetcher.calls)
	require.Len(t, records, 1)
	assert.Equal(t, book.FromCache, records[0].Provenance)
}

func TestProcess_IgnoresResultsWithoutTitle(t *testing.T) {
	fetcher := newFakeFetcher(map[string]book.Metadata{foxISBN: {Authors: []string{"Nobody"}}})
	r := New(fetcher)

	records := r.Process(context.Background(), []string{foxISBN})

	assert.Empty(t, records)
	assert.Equal(t, 0, r.Cache().Len())
}

func TestProcess_MergesExtraResults(t *testing.T) {
	// Sources may answer with more entries than were asked for.
	extra := &extraFetcher{}
	r := New(extra)

	records := r.Process(context.Background(), []string{foxISBN, gamesISBN})

	assert.Equal(t, 1, extra.calls)
	require.Len(t, records, 2)
	assert.Equal(t, book.FromCache, records[1].Provenance)
}

type extraFetcher struct {
	calls int
}

func (f *extraFetcher) FetchBooks(context.Context, []string) (map[string]book.Metadata, error) {
	f.calls++
	return map[string]book.Metadata{foxISBN: foxMeta, gamesISBN: gamesMeta}, nil
}

func TestProcess_Stats(t *testing.T) {
	fetcher := newFakeFetcher(testCatalogue())
	r := New(fetcher)

	line := foxISBN + "," + gamesISBN
	r.Process(context.Background(), []string{line, "", line})

	assert.Equal(t, Stats{
		LinesProcessed: 2,
		LinesSkipped:   1,
		FetchCalls:     1,
		CacheHits:      2,
		RemoteHits:     2,
	}, r.Stats())
}

func TestProcess_PaddedIdentifiersShareCacheEntry(t *testing.T) {
	fetcher := newFakeFetcher(testCatalogue())
	r := New(fetcher)

	records := r.Process(context.Background(), []string{foxISBN, "  " + foxISBN + " ,\t" + gamesISBN})

	require.Len(t, fetcher.calls, 2)
	assert.Equal(t, []string{gamesISBN}, fetcher.calls[1])

	require.Len(t, records, 3)
	assert.Equal(t, foxISBN, records[1].ISBN, "record carries the trimmed identifier")
	assert.Equal(t, book.FromCache, records[1].Provenance)
	assert.Equal(t, gamesISBN, records[2].ISBN)
}
