// Package report derives the read-only views (summary and category
// breakdown) from the store, caching them per store revision.
package report

import (
	"slices"
	"strconv"
	"time"

	"expensetracker/internal/cache"
	"expensetracker/internal/categories"
	"expensetracker/internal/core"
)

// Source is the collection a Reporter reads. Revision must change whenever
// the snapshot's contents do.
type Source interface {
	Revision() uint64
	Snapshot() ([]core.Transaction, uint64)
}

// Summarize totals income and expenses over txs.
func Summarize(txs []core.Transaction) core.Summary {
	return core.Summarize(txs)
}

// Breakdown is the expense breakdown with registry colors.
func Breakdown(txs []core.Transaction) []core.CategoryBreakdownEntry {
	return core.BreakdownByCategory(txs, categories.ColorOf)
}

// Report bundles both views of one revision.
type Report struct {
	Revision  uint64                        `json:"revision"`
	Count     int                           `json:"count"`
	Summary   core.Summary                  `json:"summary"`
	Breakdown []core.CategoryBreakdownEntry `json:"breakdown"`
}

type Reporter struct {
	src     Source
	reports *cache.LRUCache[Report]
}

// NewReporter caches up to size revisions. Reports older than ttl are
// dropped by the cache manager's cleanup; a zero ttl keeps them until
// evicted.
func NewReporter(src Source, size int, ttl time.Duration) *Reporter {
	return &Reporter{
		src:     src,
		reports: cache.NewLRUCache[Report](size, ttl),
	}
}

// Cache exposes the underlying cache for registration with a cache.Manager.
func (r *Reporter) Cache() cache.Cleaner {
	return r.reports
}

// Current returns the report for the source's current revision.
func (r *Reporter) Current() Report {
	if rep, ok := r.reports.Get(key(r.src.Revision())); ok {
		return clone(rep)
	}

	txs, rev := r.src.Snapshot()
	rep := Report{
		Revision:  rev,
		Count:     len(txs),
		Summary:   Summarize(txs),
		Breakdown: Breakdown(txs),
	}
	r.reports.Set(key(rev), rep)
	return clone(rep)
}

func (r *Reporter) Summary() core.Summary {
	return r.Current().Summary
}

func (r *Reporter) Breakdown() []core.CategoryBreakdownEntry {
	return r.Current().Breakdown
}

func key(rev uint64) string {
	return strconv.FormatUint(rev, 10)
}

func clone(rep Report) Report {
	rep.Breakdown = slices.Clone(rep.Breakdown)
	if rep.Breakdown == nil {
		rep.Breakdown = []core.CategoryBreakdownEntry{}
	}
	return rep
}
