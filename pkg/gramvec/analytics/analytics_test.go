package analytics

import (
	"reflect"
	"testing"

	"github.com/cognitext/gramvec/pkg/gramvec/ngram"
)

func TestAnalyze(t *testing.T) {
	counts := ngram.ClassCounts{
		Target: ngram.Counts{"aa": 5, "ab": 3, "ba": 2},
		Other:  ngram.Counts{"ab": 4, "zz": 1},
	}

	report := Analyze(counts, 2, 1, 10)

	if report.Target.TotalBigrams != 10 || report.Target.UniqueBigrams != 3 {
		t.Errorf("Unexpected target summary: %+v", report.Target)
	}
	if report.Target.Selected != 2 {
		t.Errorf("Expected 2 selected target bigrams, got %d", report.Target.Selected)
	}
	if report.Target.Coverage != 0.8 {
		t.Errorf("Expected target coverage 0.8, got %f", report.Target.Coverage)
	}

	if report.Other.Selected != 1 {
		t.Errorf("Expected 1 selected other bigram, got %d", report.Other.Selected)
	}
	if report.Other.Coverage != 0.8 {
		t.Errorf("Expected other coverage 0.8, got %f", report.Other.Coverage)
	}

	if report.Overlap != 1 {
		t.Errorf("Expected overlap 1 for shared ab, got %d", report.Overlap)
	}
	if report.Dimension != 2 {
		t.Errorf("Expected dimension 2, got %d", report.Dimension)
	}

	wantTop := []BigramFreq{{Bigram: "aa", Count: 5}, {Bigram: "ab", Count: 3}}
	if !reflect.DeepEqual(report.Target.Top, wantTop) {
		t.Errorf("Expected top list %v, got %v", wantTop, report.Target.Top)
	}
}

func TestAnalyzeListLimit(t *testing.T) {
	counts := ngram.ClassCounts{
		Target: ngram.Counts{"aa": 5, "ab": 3, "ba": 2},
		Other:  ngram.Counts{},
	}

	report := Analyze(counts, 3, 0, 1)

	if len(report.Target.Top) != 1 {
		t.Fatalf("Expected top list capped at 1, got %d", len(report.Target.Top))
	}
	if report.Target.Top[0].Bigram != "aa" {
		t.Errorf("Expected aa first, got %s", report.Target.Top[0].Bigram)
	}
	if report.Target.Selected != 3 {
		t.Errorf("Expected selection unaffected by list limit, got %d", report.Target.Selected)
	}
}

func TestAnalyzeEmptyCounts(t *testing.T) {
	report := Analyze(ngram.NewClassCounts(), 10, 10, 5)

	if report.Target.Coverage != 0 || report.Other.Coverage != 0 {
		t.Errorf("Expected zero coverage for empty counts, got %+v", report)
	}
	if report.Dimension != 0 {
		t.Errorf("Expected dimension 0, got %d", report.Dimension)
	}
}
