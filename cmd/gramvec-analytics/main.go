// gramvec-analytics reports per-class bigram statistics for a corpus
// or a stored count snapshot.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/fatih/color"

	"github.com/cognitext/gramvec/pkg/gramvec"
	"github.com/cognitext/gramvec/pkg/gramvec/analytics"
	"github.com/cognitext/gramvec/pkg/gramvec/codec"
	"github.com/cognitext/gramvec/pkg/gramvec/countstore"
	"github.com/cognitext/gramvec/pkg/gramvec/countstore/sqlite"
	"github.com/cognitext/gramvec/pkg/gramvec/logging"
	"github.com/cognitext/gramvec/pkg/gramvec/ngram"
	"github.com/cognitext/gramvec/pkg/gramvec/vocab"
)

func main() {
	var (
		dbPath        = flag.String("counts-db", "", "SQLite snapshot database")
		snapshotID    = flag.String("snapshot", "", "snapshot id, empty for the latest")
		corpusPath    = flag.String("corpus", "", "count this corpus instead of reading a snapshot")
		topTarget     = flag.Int("top-target", vocab.DefaultTargetN, "target class selection size")
		topOther      = flag.Int("top-other", vocab.DefaultOtherN, "other class selection size")
		listLen       = flag.Int("list", 20, "bigrams to list per class")
		asJSON        = flag.Bool("json", false, "print the report as JSON")
		listSnapshots = flag.Bool("list-snapshots", false, "list stored snapshots and exit")
	)
	flag.Parse()

	ctx := context.Background()

	if *listSnapshots {
		if *dbPath == "" {
			log.Fatal("-list-snapshots needs -counts-db")
		}
		store, err := sqlite.Open(ctx, *dbPath)
		if err != nil {
			log.Fatalf("failed to open snapshot store: %v", err)
		}
		defer store.Close()
		printSnapshots(ctx, store)
		return
	}

	counts, source, err := loadCounts(ctx, *dbPath, *snapshotID, *corpusPath)
	if err != nil {
		log.Fatalf("failed to load counts: %v", err)
	}

	report := analytics.Analyze(counts, *topTarget, *topOther, *listLen)

	if *asJSON {
		data, err := codec.Default.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Fatalf("failed to marshal report: %v", err)
		}
		fmt.Println(string(data))
		return
	}
	printReport(source, report)
}

// loadCounts reads counts from a corpus file when one is given,
// otherwise from the snapshot store.
func loadCounts(ctx context.Context, dbPath, snapshotID, corpusPath string) (ngram.ClassCounts, string, error) {
	if corpusPath != "" {
		p := gramvec.New(gramvec.Options{Logger: logging.Noop()})
		counts, _, err := p.CountFile(ctx, corpusPath)
		return counts, corpusPath, err
	}
	if dbPath == "" {
		return ngram.ClassCounts{}, "", fmt.Errorf("need -corpus or -counts-db")
	}

	store, err := sqlite.Open(ctx, dbPath)
	if err != nil {
		return ngram.ClassCounts{}, "", err
	}
	defer store.Close()

	var snap countstore.Snapshot
	if snapshotID != "" {
		snap, err = store.GetSnapshot(ctx, snapshotID)
	} else {
		snap, err = store.LatestSnapshot(ctx)
	}
	if err != nil {
		return ngram.ClassCounts{}, "", err
	}
	return snap.Counts, fmt.Sprintf("snapshot %s (%s)", snap.ID, snap.Corpus), nil
}

func printSnapshots(ctx context.Context, store countstore.Store) {
	infos, err := store.ListSnapshots(ctx)
	if err != nil {
		log.Fatalf("failed to list snapshots: %v", err)
	}
	if len(infos) == 0 {
		fmt.Println("no snapshots")
		return
	}
	for _, info := range infos {
		fmt.Printf("%s  %s  records=%d unique_target=%d unique_other=%d  %s\n",
			info.ID, info.CreatedAt.Format(time.RFC3339), info.Records,
			info.UniqueTarget, info.UniqueOther, info.Corpus)
	}
}

func printReport(source string, report analytics.Report) {
	color.Blue("bigram report for %s", source)
	fmt.Printf("dimension: %d, selection overlap: %d\n\n", report.Dimension, report.Overlap)

	printClass("target class", report.Target)
	printClass("other class", report.Other)
}

func printClass(name string, summary analytics.ClassSummary) {
	color.Blue("%s: %d unique bigrams, %d total, %d selected (%.1f%% coverage)",
		name, summary.UniqueBigrams, summary.TotalBigrams, summary.Selected, summary.Coverage*100)
	for _, entry := range summary.Top {
		color.Cyan("  %-8s %d", entry.Bigram, entry.Count)
	}
	fmt.Println()
}
