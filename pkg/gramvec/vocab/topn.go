// Package vocab selects the most frequent bigrams per class and builds
// the merged bigram-to-index mapping used for encoding.
package vocab

import (
	"sort"

	"github.com/cognitext/gramvec/pkg/gramvec/ngram"
)

// Default selection sizes for the two classes.
const (
	DefaultTargetN = 2000
	DefaultOtherN  = 10000
)

// TopN returns the n most frequent bigrams in counts, ordered by
// descending count with ties broken lexicographically. Every bigram
// tied with the nth count is kept, so the result may exceed n. A
// non-positive n selects nothing; n larger than the vocabulary selects
// everything.
func TopN(counts ngram.Counts, n int) []string {
	if n <= 0 || len(counts) == 0 {
		return nil
	}

	type entry struct {
		bigram string
		count  int64
	}
	entries := make([]entry, 0, len(counts))
	for g, c := range counts {
		entries = append(entries, entry{bigram: g, count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].bigram < entries[j].bigram
	})

	if n > len(entries) {
		n = len(entries)
	}
	threshold := entries[n-1].count

	selected := make([]string, 0, n)
	for _, e := range entries {
		if e.count < threshold {
			break
		}
		selected = append(selected, e.bigram)
	}
	return selected
}
