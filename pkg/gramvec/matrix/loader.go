package matrix

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cognitext/gramvec/internal/textio"
	"github.com/cognitext/gramvec/pkg/gramvec/encode"
	"github.com/cognitext/gramvec/pkg/gramvec/logging"
)

// Label source CSV column layout.
const (
	labelFieldID = iota
	labelFieldText
	labelFieldMaskedText
	labelFieldLabel
	labelFieldCorpus
	labelNumFields
)

// Representation rows carry the feature vector after the id and the
// three label columns.
const reprVectorOffset = 4

// Loader loads representation rows and their labels into a Dataset.
type Loader struct {
	// Delimiter separates representation row fields. Empty means the
	// encoder's output delimiter.
	Delimiter string
	// Limit caps accepted label rows, split evenly between the two
	// classes. Non-positive means no cap.
	Limit  int
	Logger *logging.Logger
}

func (l Loader) delimiter() string {
	if l.Delimiter != "" {
		return l.Delimiter
	}
	return encode.DefaultDelimiter
}

func (l Loader) logger() *logging.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return logging.Noop()
}

// Load reads the label file at labelPath and the representation file
// at reprPath and joins them by row id. Representation files may be
// zstd-compressed.
func (l Loader) Load(reprPath, labelPath string) (*Dataset, error) {
	labels, err := os.Open(labelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open label file: %w", err)
	}
	defer labels.Close()

	repr, err := textio.Open(reprPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open representation file: %w", err)
	}
	defer repr.Close()

	return l.load(repr, labels)
}

// LoadSplit loads a train and a dev dataset and verifies both carry
// the same feature dimension.
func (l Loader) LoadSplit(trainRepr, trainLabels, devRepr, devLabels string) (train, dev *Dataset, err error) {
	train, err = l.Load(trainRepr, trainLabels)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load train split: %w", err)
	}
	dev, err = l.Load(devRepr, devLabels)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load dev split: %w", err)
	}
	if train.Dim() != dev.Dim() {
		return nil, nil, fmt.Errorf("train dimension %d does not match dev dimension %d", train.Dim(), dev.Dim())
	}
	return train, dev, nil
}

func (l Loader) load(repr, labels io.Reader) (*Dataset, error) {
	ds := &Dataset{}

	accepted, err := l.scanLabels(labels, &ds.Diag)
	if err != nil {
		return nil, err
	}
	if len(accepted) == 0 {
		return nil, fmt.Errorf("%w: label file yielded no usable rows", ErrNoFeatures)
	}

	if err := l.scanRepr(repr, accepted, ds); err != nil {
		return nil, err
	}
	if ds.Len() == 0 {
		return nil, fmt.Errorf("%w: scanned %d representation rows", ErrNoFeatures, ds.Diag.ReprRowsScanned)
	}

	zeros, ones := ds.LabelCounts()
	l.logger().LogDatasetLoaded(ds.Len(), ds.Dim(), zeros, ones)
	return ds, nil
}

// scanLabels collects id to label assignments, first occurrence wins.
// With a limit set, each class stops at its quota and the scan ends as
// soon as both quotas are met.
func (l Loader) scanLabels(r io.Reader, diag *Diagnostics) (map[string]int, error) {
	quota := 0
	if l.Limit > 0 {
		quota = (l.Limit + 1) / 2
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	accepted := make(map[string]int)
	var taken [2]int

	for {
		if quota > 0 && taken[0] >= quota && taken[1] >= quota {
			break
		}

		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		diag.LabelRowsScanned++
		if err != nil {
			if _, ok := err.(*csv.ParseError); ok {
				diag.LabelRowsMalformed++
				continue
			}
			return nil, fmt.Errorf("failed to read label row: %w", err)
		}

		if len(row) != labelNumFields {
			diag.LabelRowsMalformed++
			continue
		}
		label, ok := parseLabel(row[labelFieldLabel])
		if !ok || (label != 0 && label != 1) {
			diag.LabelRowsMalformed++
			continue
		}

		id := row[labelFieldID]
		if _, dup := accepted[id]; dup {
			continue
		}
		if quota > 0 && taken[label] >= quota {
			continue
		}

		accepted[id] = label
		taken[label]++
		diag.LabelsAccepted++
	}
	return accepted, nil
}

// scanRepr walks the representation file and keeps every row whose id
// is in accepted. The scan stops once every accepted id has matched.
func (l Loader) scanRepr(r io.Reader, accepted map[string]int, ds *Dataset) error {
	remaining := make(map[string]int, len(accepted))
	for id, y := range accepted {
		remaining[id] = y
	}

	delim := l.delimiter()
	dim := -1

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for sc.Scan() {
		ds.Diag.ReprRowsScanned++

		fields := strings.Split(sc.Text(), delim)
		if len(fields) < reprVectorOffset+1 {
			ds.Diag.ReprRowsMalformed++
			continue
		}

		id := fields[0]
		y, ok := remaining[id]
		if !ok {
			continue
		}

		values := fields[reprVectorOffset:]
		if dim == -1 {
			dim = len(values)
		} else if len(values) != dim {
			return &DimensionMismatchError{ID: id, Expected: dim, Actual: len(values)}
		}

		vec := make([]float64, dim)
		for i, s := range values {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return fmt.Errorf("representation row %s: bad value %q: %w", id, s, err)
			}
			vec[i] = f
		}

		ds.IDs = append(ds.IDs, id)
		ds.X = append(ds.X, vec)
		ds.Y = append(ds.Y, y)

		delete(remaining, id)
		if len(remaining) == 0 {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to scan representation file: %w", err)
	}
	return nil
}

// parseLabel reads an integer label, tolerating float renderings such
// as "1.0".
func parseLabel(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
