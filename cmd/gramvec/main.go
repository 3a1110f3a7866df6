// gramvec builds character-bigram count representations of a labeled
// CSV corpus: it writes the bigram mapping, encodes rows against it
// and inspects encoded datasets.
package main

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/cognitext/gramvec/pkg/gramvec"
	"github.com/cognitext/gramvec/pkg/gramvec/config"
	sqlitestore "github.com/cognitext/gramvec/pkg/gramvec/countstore/sqlite"
	"github.com/cognitext/gramvec/pkg/gramvec/logging"
)

var (
	configPath = kingpin.Flag("config", "Pipeline config file.").Short('c').String()
	verbose    = kingpin.Flag("verbose", "Verbose logging.").Short('v').Bool()
	jsonLogs   = kingpin.Flag("json-logs", "Log as JSON.").Bool()

	mappingCmd       = kingpin.Command("mapping", "Count the corpus and write the bigram mapping.")
	mappingCorpus    = mappingCmd.Flag("corpus", "Labeled CSV corpus.").String()
	mappingOut       = mappingCmd.Flag("mapping", "Mapping file to write.").String()
	mappingTopTarget = mappingCmd.Flag("top-target", "Bigrams to select from the target class.").Int()
	mappingTopOther  = mappingCmd.Flag("top-other", "Bigrams to select from the other class.").Int()
	mappingShards    = mappingCmd.Flag("shards", "Counting workers.").Int()
	mappingCountsDB  = mappingCmd.Flag("counts-db", "SQLite database for count snapshots.").String()

	encodeCmd        = kingpin.Command("encode", "Encode the corpus against a mapping.")
	encodeCorpus     = encodeCmd.Flag("corpus", "Labeled CSV corpus.").String()
	encodeMapping    = encodeCmd.Flag("mapping", "Mapping file to read.").String()
	encodeOutput     = encodeCmd.Flag("output", "Representation file to write, .zst for compressed.").String()
	encodeGenMapping = encodeCmd.Flag("gen-mapping", "Generate the mapping before encoding.").Bool()
	encodeFlushEvery = encodeCmd.Flag("flush-every", "Rows buffered between writes.").Int()
	encodeRateLimit  = encodeCmd.Flag("rate-limit", "Output bytes per second, 0 for unlimited.").Int()

	datasetCmd    = kingpin.Command("dataset", "Load an encoded dataset and print its shape.")
	datasetRepr   = datasetCmd.Flag("repr", "Representation file.").String()
	datasetLabels = datasetCmd.Flag("labels", "Label source CSV.").String()
	datasetLimit  = datasetCmd.Flag("limit", "Row cap, split evenly between classes.").Int()
)

func main() {
	cmd := kingpin.Parse()

	cfg := config.Pipeline{}
	cfg.ApplyDefaults()
	if *configPath != "" {
		loaded, err := config.LoadPipeline(*configPath)
		if err != nil {
			kingpin.Fatalf("%v", err)
		}
		cfg = loaded
	}

	logger := newLogger()
	ctx := context.Background()

	switch cmd {
	case "mapping":
		runMapping(ctx, cfg, logger)
	case "encode":
		runEncode(ctx, cfg, logger)
	case "dataset":
		runDataset(cfg, logger)
	}
}

func newLogger() *logging.Logger {
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	if *jsonLogs {
		return logging.NewJSONLogger(level)
	}
	return logging.NewTextLogger(level)
}

func runMapping(ctx context.Context, cfg config.Pipeline, logger *logging.Logger) {
	corpusPath := firstNonEmpty(*mappingCorpus, cfg.Corpus)
	mappingPath := firstNonEmpty(*mappingOut, cfg.Mapping)
	if corpusPath == "" || mappingPath == "" {
		kingpin.Fatalf("a corpus and a mapping path are required")
	}

	opts := gramvec.Options{
		TopTarget: firstPositive(*mappingTopTarget, cfg.TopTarget),
		TopOther:  firstPositive(*mappingTopOther, cfg.TopOther),
		Shards:    firstPositive(*mappingShards, cfg.Shards),
		Logger:    logger,
	}

	if dbPath := firstNonEmpty(*mappingCountsDB, cfg.CountsDB); dbPath != "" {
		store, err := sqlitestore.Open(ctx, dbPath)
		if err != nil {
			kingpin.Fatalf("%v", err)
		}
		defer store.Close()
		opts.Store = store
	}

	_, gen, err := gramvec.New(opts).GenerateMapping(ctx, corpusPath, mappingPath)
	if err != nil {
		kingpin.Fatalf("%v", err)
	}

	fmt.Printf("mapping written to %s: dimension %d (%d target + %d other selections)\n",
		mappingPath, gen.Dimension, gen.SelectedTarget, gen.SelectedOther)
	if gen.SnapshotID != "" {
		fmt.Printf("count snapshot: %s\n", gen.SnapshotID)
	}
}

func runEncode(ctx context.Context, cfg config.Pipeline, logger *logging.Logger) {
	corpusPath := firstNonEmpty(*encodeCorpus, cfg.Corpus)
	mappingPath := firstNonEmpty(*encodeMapping, cfg.Mapping)
	outputPath := firstNonEmpty(*encodeOutput, cfg.Output)
	if corpusPath == "" || mappingPath == "" || outputPath == "" {
		kingpin.Fatalf("a corpus, a mapping and an output path are required")
	}

	p := gramvec.New(gramvec.Options{
		TopTarget:   cfg.TopTarget,
		TopOther:    cfg.TopOther,
		FlushEvery:  firstPositive(*encodeFlushEvery, cfg.FlushEvery),
		Delimiter:   cfg.Delimiter,
		BytesPerSec: *encodeRateLimit,
		Shards:      cfg.Shards,
		Logger:      logger,
	})

	if *encodeGenMapping {
		if _, _, err := p.GenerateMapping(ctx, corpusPath, mappingPath); err != nil {
			kingpin.Fatalf("%v", err)
		}
	}

	stats, err := p.Encode(ctx, corpusPath, mappingPath, outputPath)
	if err != nil {
		kingpin.Fatalf("%v", err)
	}
	fmt.Printf("encoded %d rows to %s\n", stats.Rows, outputPath)
}

func runDataset(cfg config.Pipeline, logger *logging.Logger) {
	reprPath := firstNonEmpty(*datasetRepr, cfg.Output)
	labelPath := firstNonEmpty(*datasetLabels, cfg.Labels)
	if reprPath == "" || labelPath == "" {
		kingpin.Fatalf("a representation file and a label file are required")
	}

	p := gramvec.New(gramvec.Options{Delimiter: cfg.Delimiter, Logger: logger})
	ds, err := p.LoadDataset(reprPath, labelPath, *datasetLimit)
	if err != nil {
		kingpin.Fatalf("%v", err)
	}

	zeros, ones := ds.LabelCounts()
	fmt.Printf("loaded %d rows of dimension %d (%d label 0, %d label 1)\n",
		ds.Len(), ds.Dim(), zeros, ones)
	fmt.Printf("label rows: %d scanned, %d malformed; representation rows: %d scanned, %d malformed\n",
		ds.Diag.LabelRowsScanned, ds.Diag.LabelRowsMalformed,
		ds.Diag.ReprRowsScanned, ds.Diag.ReprRowsMalformed)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
