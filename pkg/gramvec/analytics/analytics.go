// Package analytics summarizes per-class bigram counts and what a
// top-N selection over them would cover.
package analytics

import (
	"github.com/cognitext/gramvec/pkg/gramvec/ngram"
	"github.com/cognitext/gramvec/pkg/gramvec/vocab"
)

// BigramFreq is one bigram with its occurrence count.
type BigramFreq struct {
	Bigram string `json:"bigram"`
	Count  int64  `json:"count"`
}

// ClassSummary describes one class's counts and selection.
type ClassSummary struct {
	TotalBigrams  int64        `json:"total_bigrams"`
	UniqueBigrams int          `json:"unique_bigrams"`
	Selected      int          `json:"selected"`
	Coverage      float64      `json:"coverage"`
	Top           []BigramFreq `json:"top"`
}

// Report describes both classes and the mapping their selections would
// produce.
type Report struct {
	Target    ClassSummary `json:"target"`
	Other     ClassSummary `json:"other"`
	Overlap   int          `json:"overlap"`
	Dimension int          `json:"dimension"`
}

// Analyze summarizes counts under the given selection sizes. listLimit
// caps the per-class top list carried in the report.
func Analyze(counts ngram.ClassCounts, topTarget, topOther, listLimit int) Report {
	targetSel := vocab.TopN(counts.Target, topTarget)
	otherSel := vocab.TopN(counts.Other, topOther)

	report := Report{
		Target:    summarize(counts.Target, targetSel, listLimit),
		Other:     summarize(counts.Other, otherSel, listLimit),
		Dimension: vocab.Build(targetSel, otherSel).Dimension(),
	}

	targetSet := make(map[string]struct{}, len(targetSel))
	for _, g := range targetSel {
		targetSet[g] = struct{}{}
	}
	for _, g := range otherSel {
		if _, ok := targetSet[g]; ok {
			report.Overlap++
		}
	}
	return report
}

// summarize computes a class summary. Coverage is the share of the
// class's total bigram mass the selection captures.
func summarize(counts ngram.Counts, selected []string, listLimit int) ClassSummary {
	summary := ClassSummary{
		TotalBigrams:  counts.Total(),
		UniqueBigrams: len(counts),
		Selected:      len(selected),
	}

	var mass int64
	for _, g := range selected {
		mass += counts[g]
	}
	if summary.TotalBigrams > 0 {
		summary.Coverage = float64(mass) / float64(summary.TotalBigrams)
	}

	if listLimit < 0 {
		listLimit = 0
	}
	if listLimit > len(selected) {
		listLimit = len(selected)
	}
	for _, g := range selected[:listLimit] {
		summary.Top = append(summary.Top, BigramFreq{Bigram: g, Count: counts[g]})
	}
	return summary
}
