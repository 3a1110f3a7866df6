// Package matrix joins encoded representation rows with a label file
// and loads them into an in-memory feature matrix.
package matrix

// Diagnostics counts per-row outcomes of a loading pass.
type Diagnostics struct {
	LabelRowsScanned   int64
	LabelRowsMalformed int64
	LabelsAccepted     int64
	ReprRowsScanned    int64
	ReprRowsMalformed  int64
}

// Dataset holds the loaded feature matrix. IDs, X and Y are aligned
// row by row, in the order rows appear in the representation file.
type Dataset struct {
	IDs  []string
	X    [][]float64
	Y    []int
	Diag Diagnostics
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.X)
}

// Dim returns the feature dimension, zero for an empty dataset.
func (d *Dataset) Dim() int {
	if len(d.X) == 0 {
		return 0
	}
	return len(d.X[0])
}

// LabelCounts returns how many rows carry label 0 and label 1.
func (d *Dataset) LabelCounts() (zeros, ones int) {
	for _, y := range d.Y {
		if y == 0 {
			zeros++
		} else {
			ones++
		}
	}
	return zeros, ones
}
