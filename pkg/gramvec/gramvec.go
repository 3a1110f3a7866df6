// Package gramvec builds character-bigram count representations of a
// labeled text corpus. A pipeline counts bigrams per label class,
// selects the most frequent ones into a dense index mapping, encodes
// every corpus row as a count vector and loads encoded rows back into
// in-memory training matrices.
package gramvec

import (
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/cognitext/gramvec/internal/textio"
	"github.com/cognitext/gramvec/pkg/gramvec/codec"
	"github.com/cognitext/gramvec/pkg/gramvec/corpus"
	"github.com/cognitext/gramvec/pkg/gramvec/countstore"
	"github.com/cognitext/gramvec/pkg/gramvec/encode"
	"github.com/cognitext/gramvec/pkg/gramvec/logging"
	"github.com/cognitext/gramvec/pkg/gramvec/matrix"
	"github.com/cognitext/gramvec/pkg/gramvec/ngram"
	"github.com/cognitext/gramvec/pkg/gramvec/vocab"
)

// Options configure a Pipeline.
type Options struct {
	// TopTarget and TopOther size the per-class bigram selections.
	TopTarget int
	TopOther  int
	// FlushEvery sets the encoder's write cadence in rows.
	FlushEvery int
	// Delimiter separates representation row fields.
	Delimiter string
	// BytesPerSec throttles encoder output. Zero means no throttle.
	BytesPerSec int
	// Shards is the number of counting workers.
	Shards int
	// Store, when set, receives a count snapshot after every counting
	// pass that feeds a mapping.
	Store countstore.Store
	// Codec serializes mapping files.
	Codec  codec.Codec
	Logger *logging.Logger
}

// Pipeline runs the counting, mapping, encoding and loading stages.
type Pipeline struct {
	opts    Options
	mapping vocab.Store
	logger  *logging.Logger
}

// New creates a pipeline, filling unset options with defaults.
func New(opts Options) *Pipeline {
	if opts.TopTarget == 0 {
		opts.TopTarget = vocab.DefaultTargetN
	}
	if opts.TopOther == 0 {
		opts.TopOther = vocab.DefaultOtherN
	}
	if opts.FlushEvery < 1 {
		opts.FlushEvery = encode.DefaultFlushEvery
	}
	if opts.Delimiter == "" {
		opts.Delimiter = encode.DefaultDelimiter
	}
	if opts.Shards < 1 {
		opts.Shards = 1
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Noop()
	}

	return &Pipeline{
		opts:    opts,
		mapping: vocab.Store{Codec: opts.Codec},
		logger:  logger,
	}
}

// Count tallies per-class bigram counts over every record in src. With
// more than one shard, rows fan out to workers holding private counts
// that are merged afterwards, so the result is identical to a
// single-threaded pass.
func (p *Pipeline) Count(ctx context.Context, src *corpus.Reader) (ngram.ClassCounts, corpus.Stats, error) {
	counts := ngram.NewClassCounts()

	if p.opts.Shards == 1 {
		for {
			rec, err := src.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				return ngram.ClassCounts{}, src.Stats(), err
			}
			counts.AddLabeled(rec.Text, rec.LabelBinary)
		}
		p.logCount(ctx, src.Stats(), counts)
		return counts, src.Stats(), nil
	}

	type job struct {
		text  string
		label string
	}

	jobs := make(chan job, p.opts.Shards*256)
	partials := make([]ngram.ClassCounts, p.opts.Shards)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < p.opts.Shards; i++ {
		mine := ngram.NewClassCounts()
		partials[i] = mine
		g.Go(func() error {
			for j := range jobs {
				mine.AddLabeled(j.text, j.label)
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(jobs)
		for {
			rec, err := src.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			select {
			case jobs <- job{text: rec.Text, label: rec.LabelBinary}:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	if err := g.Wait(); err != nil {
		return ngram.ClassCounts{}, src.Stats(), err
	}

	for _, part := range partials {
		counts.Merge(part)
	}
	p.logCount(ctx, src.Stats(), counts)
	return counts, src.Stats(), nil
}

// CountFile counts the corpus at path.
func (p *Pipeline) CountFile(ctx context.Context, path string) (ngram.ClassCounts, corpus.Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return ngram.ClassCounts{}, corpus.Stats{}, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()

	return p.Count(ctx, corpus.NewReader(f))
}

func (p *Pipeline) logCount(ctx context.Context, stats corpus.Stats, counts ngram.ClassCounts) {
	p.logger.LogCount(ctx, stats.Records, stats.Malformed, len(counts.Target), len(counts.Other))
}

// BuildMapping selects the top bigrams of each class and unions them
// into a dense index mapping. Useful when counts come from a stored
// snapshot instead of a fresh counting pass.
func (p *Pipeline) BuildMapping(counts ngram.ClassCounts) vocab.Mapping {
	target := vocab.TopN(counts.Target, p.opts.TopTarget)
	other := vocab.TopN(counts.Other, p.opts.TopOther)
	return vocab.Build(target, other)
}

// GenerateStats reports what a mapping generation pass produced.
type GenerateStats struct {
	Corpus         corpus.Stats
	SnapshotID     string
	SelectedTarget int
	SelectedOther  int
	Dimension      int
}

// GenerateMapping counts the corpus at corpusPath, selects the top
// bigrams per class and writes the merged mapping to mappingPath.
func (p *Pipeline) GenerateMapping(ctx context.Context, corpusPath, mappingPath string) (vocab.Mapping, GenerateStats, error) {
	counts, stats, err := p.CountFile(ctx, corpusPath)
	if err != nil {
		return nil, GenerateStats{}, err
	}

	gen := GenerateStats{Corpus: stats}

	if p.opts.Store != nil {
		id, err := p.opts.Store.SaveSnapshot(ctx, countstore.Snapshot{
			Corpus:    corpusPath,
			Records:   stats.Records,
			Malformed: stats.Malformed,
			Counts:    counts,
		})
		if err != nil {
			return nil, GenerateStats{}, fmt.Errorf("failed to save count snapshot: %w", err)
		}
		gen.SnapshotID = id
	}

	target := vocab.TopN(counts.Target, p.opts.TopTarget)
	other := vocab.TopN(counts.Other, p.opts.TopOther)
	m := vocab.Build(target, other)

	if err := p.mapping.Save(mappingPath, m); err != nil {
		return nil, GenerateStats{}, err
	}

	gen.SelectedTarget = len(target)
	gen.SelectedOther = len(other)
	gen.Dimension = m.Dimension()
	p.logger.LogMappingSaved(ctx, mappingPath, m.Dimension())
	return m, gen, nil
}

// Encode loads and validates the mapping at mappingPath, then encodes
// every corpus row into outputPath. The output file is only created
// after the mapping has loaded, so a missing mapping leaves no partial
// output behind. A .zst suffix on outputPath enables compression.
func (p *Pipeline) Encode(ctx context.Context, corpusPath, mappingPath, outputPath string) (encode.Stats, error) {
	m, err := p.mapping.Load(mappingPath)
	if err != nil {
		return encode.Stats{}, err
	}

	f, err := os.Open(corpusPath)
	if err != nil {
		return encode.Stats{}, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()

	out, err := textio.Create(outputPath)
	if err != nil {
		return encode.Stats{}, fmt.Errorf("failed to create output: %w", err)
	}

	src := corpus.NewReader(f)
	enc := encode.NewEncoder(m,
		encode.WithFlushEvery(p.opts.FlushEvery),
		encode.WithDelimiter(p.opts.Delimiter),
		encode.WithBytesPerSec(p.opts.BytesPerSec),
		encode.WithLogger(p.logger),
	)

	stats, err := enc.Encode(ctx, src, out)
	if err != nil {
		out.Close()
		return stats, err
	}
	if err := out.Close(); err != nil {
		return stats, fmt.Errorf("failed to close output: %w", err)
	}

	p.logger.LogEncodeDone(ctx, stats.Rows, src.Stats().Skipped(), stats.Flushes)
	return stats, nil
}

// LoadDataset joins the representation rows at reprPath with the label
// file at labelPath. limit caps accepted label rows, split evenly
// between both classes; non-positive means no cap.
func (p *Pipeline) LoadDataset(reprPath, labelPath string, limit int) (*matrix.Dataset, error) {
	loader := matrix.Loader{
		Delimiter: p.opts.Delimiter,
		Limit:     limit,
		Logger:    p.logger,
	}
	return loader.Load(reprPath, labelPath)
}
