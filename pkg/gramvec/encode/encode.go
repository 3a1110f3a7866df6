// Package encode turns corpus rows into dense integer count vectors
// and streams them out as delimited text.
package encode

import (
	"context"
	"io"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/cognitext/gramvec/pkg/gramvec/corpus"
	"github.com/cognitext/gramvec/pkg/gramvec/logging"
	"github.com/cognitext/gramvec/pkg/gramvec/ngram"
	"github.com/cognitext/gramvec/pkg/gramvec/vocab"
)

// Defaults for the streaming writer.
const (
	DefaultFlushEvery = 10000
	DefaultDelimiter  = ", "
)

// Options configure an Encoder.
type Options struct {
	FlushEvery  int
	Delimiter   string
	BytesPerSec int
	Logger      *logging.Logger
}

// Option configures an Encoder.
type Option func(*Options)

// WithFlushEvery sets how many rows are buffered between writes.
func WithFlushEvery(n int) Option {
	return func(o *Options) {
		o.FlushEvery = n
	}
}

// WithDelimiter sets the output field delimiter.
func WithDelimiter(d string) Option {
	return func(o *Options) {
		o.Delimiter = d
	}
}

// WithBytesPerSec throttles output to the given byte rate. Zero leaves
// output unthrottled.
func WithBytesPerSec(n int) Option {
	return func(o *Options) {
		o.BytesPerSec = n
	}
}

// WithLogger sets the progress logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// Stats reports what an encoding pass wrote.
type Stats struct {
	Rows    int64
	Flushes int64
}

// Encoder vectorizes corpus records against a fixed bigram mapping.
type Encoder struct {
	mapping vocab.Mapping
	opts    Options
	limiter *rate.Limiter
	logger  *logging.Logger
}

// NewEncoder creates an encoder for mapping.
func NewEncoder(mapping vocab.Mapping, optFns ...Option) *Encoder {
	opts := Options{
		FlushEvery: DefaultFlushEvery,
		Delimiter:  DefaultDelimiter,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.FlushEvery < 1 {
		opts.FlushEvery = DefaultFlushEvery
	}
	if opts.Delimiter == "" {
		opts.Delimiter = DefaultDelimiter
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Noop()
	}

	var limiter *rate.Limiter
	if opts.BytesPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.BytesPerSec), opts.BytesPerSec)
	}

	return &Encoder{
		mapping: mapping,
		opts:    opts,
		limiter: limiter,
		logger:  logger,
	}
}

// Vector returns the count vector for text. The vector always has the
// mapping's dimension; bigrams outside the mapping are ignored.
func (e *Encoder) Vector(text string) []int {
	vec := make([]int, len(e.mapping))
	for _, g := range ngram.Bigrams(text) {
		if i, ok := e.mapping[g]; ok {
			vec[i]++
		}
	}
	return vec
}

// FormatRow renders one output row: the record id, its three labels,
// then the vector values, joined by delim.
func FormatRow(rec corpus.Record, vec []int, delim string) string {
	fields := make([]string, 0, len(vec)+4)
	fields = append(fields, rec.ID, rec.LabelBinary, rec.LabelTernary, rec.LabelFinegrained)
	for _, v := range vec {
		fields = append(fields, strconv.Itoa(v))
	}
	return strings.Join(fields, delim)
}

// Encode streams every record from src through the mapping into w,
// flushing buffered rows every FlushEvery records.
func (e *Encoder) Encode(ctx context.Context, src *corpus.Reader, w io.Writer) (Stats, error) {
	var stats Stats
	buf := make([]string, 0, e.opts.FlushEvery)

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.write(ctx, w, strings.Join(buf, "\n")+"\n"); err != nil {
			return err
		}
		buf = buf[:0]
		stats.Flushes++
		return nil
	}

	for {
		rec, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, err
		}

		buf = append(buf, FormatRow(rec, e.Vector(rec.Text), e.opts.Delimiter))
		stats.Rows++

		if len(buf) >= e.opts.FlushEvery {
			if err := flush(); err != nil {
				return stats, err
			}
			e.logger.LogEncodeProgress(ctx, stats.Rows)
		}
	}

	if err := flush(); err != nil {
		return stats, err
	}
	return stats, nil
}

func (e *Encoder) write(ctx context.Context, w io.Writer, chunk string) error {
	if e.limiter == nil {
		_, err := io.WriteString(w, chunk)
		return err
	}

	// WaitN cannot exceed the limiter burst, so large chunks go out in
	// burst-sized slices.
	burst := e.limiter.Burst()
	for len(chunk) > 0 {
		n := len(chunk)
		if n > burst {
			n = burst
		}
		if err := e.limiter.WaitN(ctx, n); err != nil {
			return err
		}
		if _, err := io.WriteString(w, chunk[:n]); err != nil {
			return err
		}
		chunk = chunk[n:]
	}
	return nil
}
