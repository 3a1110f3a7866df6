// Package ngram extracts character bigrams from text and accumulates
// their occurrence counts per label class.
package ngram

import (
	"strings"
)

// Bigrams returns every adjacent character pair in text, in order of
// appearance. Pairs are built from runes, so multi-byte characters
// occupy a single position. Text shorter than two characters yields
// no bigrams.
func Bigrams(text string) []string {
	chars := strings.Split(text, "")
	if len(chars) < 2 {
		return nil
	}
	grams := make([]string, 0, len(chars)-1)
	for i := 0; i < len(chars)-1; i++ {
		grams = append(grams, chars[i]+chars[i+1])
	}
	return grams
}
