package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Stats accumulates per-row outcomes of a reading pass.
type Stats struct {
	Records   int64
	Malformed int64
	Sentinels int64
}

// Skipped returns the number of rows dropped during the pass.
func (s Stats) Skipped() int64 {
	return s.Malformed + s.Sentinels
}

// Reader yields corpus records, skipping sentinel rows and counting
// malformed ones instead of failing the pass.
type Reader struct {
	csv   *csv.Reader
	stats Stats
}

// NewReader wraps r. Quoting is lax and rows may vary in width, so one
// bad row never aborts the whole corpus.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return &Reader{csv: cr}
}

// Next returns the next well-formed record. It returns io.EOF once the
// corpus is exhausted.
func (r *Reader) Next() (Record, error) {
	for {
		row, err := r.csv.Read()
		if err == io.EOF {
			return Record{}, io.EOF
		}
		if err != nil {
			if _, ok := err.(*csv.ParseError); ok {
				r.stats.Malformed++
				continue
			}
			return Record{}, fmt.Errorf("failed to read corpus row: %w", err)
		}

		if len(row) == 1 && row[0] == Sentinel {
			r.stats.Sentinels++
			continue
		}
		if len(row) != numFields {
			r.stats.Malformed++
			continue
		}

		r.stats.Records++
		return Record{
			ID:               row[fieldID],
			Text:             row[fieldText],
			MaskedText:       row[fieldMaskedText],
			LabelBinary:      row[fieldLabelBinary],
			LabelTernary:     row[fieldLabelTernary],
			LabelFinegrained: row[fieldLabelFinegrained],
			Source:           row[fieldSource],
		}, nil
	}
}

// Stats returns the outcome counters for the pass so far.
func (r *Reader) Stats() Stats {
	return r.stats
}
