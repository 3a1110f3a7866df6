package vocab

import (
	"fmt"
	"sort"
)

// Mapping assigns each selected bigram a dense feature index.
type Mapping map[string]int

// Build merges the two class selections and assigns indices 0..D-1 in
// lexicographic bigram order. Bigrams selected for both classes occupy
// a single index.
func Build(target, other []string) Mapping {
	set := make(map[string]struct{}, len(target)+len(other))
	for _, g := range target {
		set[g] = struct{}{}
	}
	for _, g := range other {
		set[g] = struct{}{}
	}

	merged := make([]string, 0, len(set))
	for g := range set {
		merged = append(merged, g)
	}
	sort.Strings(merged)

	m := make(Mapping, len(merged))
	for i, g := range merged {
		m[g] = i
	}
	return m
}

// Dimension returns the number of features the mapping produces.
func (m Mapping) Dimension() int {
	return len(m)
}

// Validate checks that the indices form a dense permutation of 0..D-1.
func (m Mapping) Validate() error {
	seen := make([]bool, len(m))
	for g, i := range m {
		if i < 0 || i >= len(m) {
			return fmt.Errorf("bigram %q has index %d outside [0, %d)", g, i, len(m))
		}
		if seen[i] {
			return fmt.Errorf("bigram %q duplicates index %d", g, i)
		}
		seen[i] = true
	}
	return nil
}
