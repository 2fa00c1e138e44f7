// Package bloom remembers post fingerprints from previous runs using a
// Bloom filter.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/feedscrape"
)

var _ feedscrape.SeenFilter = (*Filter)(nil)

// Filter wraps a Bloom filter for fingerprint deduplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected fingerprints
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// NewFilterFrom creates a filter holding fingerprints, with room for
// extra more.
func NewFilterFrom(fingerprints []string, extra uint, fpRate float64) *Filter {
	f := NewFilter(uint(len(fingerprints))+extra, fpRate)
	for _, fp := range fingerprints {
		f.Add(fp)
	}
	return f
}

// Add adds a fingerprint to the filter.
func (f *Filter) Add(fingerprint string) {
	f.f.AddString(fingerprint)
}

// Test returns true if the fingerprint might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(fingerprint string) bool {
	return f.f.TestString(fingerprint)
}

// EstimatedCount returns the approximate number of fingerprints in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
