package ngram

// TargetLabel is the binary label value that marks the target class.
// Every other label value falls into the other class.
const TargetLabel = "0"

// Counts accumulates occurrence totals per bigram.
type Counts map[string]int64

// Add counts every bigram in text.
func (c Counts) Add(text string) {
	for _, g := range Bigrams(text) {
		c[g]++
	}
}

// Merge adds every count in other into c.
func (c Counts) Merge(other Counts) {
	for g, n := range other {
		c[g] += n
	}
}

// Total returns the sum of all counts.
func (c Counts) Total() int64 {
	var total int64
	for _, n := range c {
		total += n
	}
	return total
}

// ClassCounts holds separate bigram counts for the target class and
// for everything else.
type ClassCounts struct {
	Target Counts
	Other  Counts
}

// NewClassCounts returns empty counts for both classes.
func NewClassCounts() ClassCounts {
	return ClassCounts{Target: Counts{}, Other: Counts{}}
}

// ByLabel returns the bucket that rows with the given binary label
// accumulate into.
func (cc ClassCounts) ByLabel(binaryLabel string) Counts {
	if binaryLabel == TargetLabel {
		return cc.Target
	}
	return cc.Other
}

// AddLabeled counts the bigrams of text into the bucket for binaryLabel.
func (cc ClassCounts) AddLabeled(text, binaryLabel string) {
	cc.ByLabel(binaryLabel).Add(text)
}

// Merge adds every count in other into cc.
func (cc ClassCounts) Merge(other ClassCounts) {
	cc.Target.Merge(other.Target)
	cc.Other.Merge(other.Other)
}
