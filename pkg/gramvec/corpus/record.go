// Package corpus reads the labeled CSV corpus row by row.
package corpus

// Corpus CSV column layout.
const (
	fieldID = iota
	fieldText
	fieldMaskedText
	fieldLabelBinary
	fieldLabelTernary
	fieldLabelFinegrained
	fieldSource
	numFields
)

// Sentinel is the single-field marker row some corpus exports carry in
// place of parser output. Readers skip it without treating the row as
// malformed.
const Sentinel = "Place for parser output"

// Record is one corpus row.
type Record struct {
	ID               string
	Text             string
	MaskedText       string
	LabelBinary      string
	LabelTernary     string
	LabelFinegrained string
	Source           string
}
