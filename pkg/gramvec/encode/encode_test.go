package encode

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/cognitext/gramvec/pkg/gramvec/corpus"
	"github.com/cognitext/gramvec/pkg/gramvec/vocab"
)

func TestVector(t *testing.T) {
	enc := NewEncoder(vocab.Mapping{"aa": 0, "ab": 1, "ba": 2})

	got := enc.Vector("aabba")
	want := []int{1, 1, 1}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestVectorIgnoresUnmappedBigrams(t *testing.T) {
	enc := NewEncoder(vocab.Mapping{"aa": 0, "ab": 1})

	got := enc.Vector("zzzz")
	want := []int{0, 0}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected zero vector, got %v", got)
	}
}

func TestVectorEmptyText(t *testing.T) {
	enc := NewEncoder(vocab.Mapping{"aa": 0, "ab": 1, "ba": 2})

	got := enc.Vector("")
	if len(got) != 3 {
		t.Fatalf("Expected vector of dimension 3, got %d", len(got))
	}
	for i, v := range got {
		if v != 0 {
			t.Errorf("Expected zero at index %d, got %d", i, v)
		}
	}
}

func TestVectorCountsRepeats(t *testing.T) {
	enc := NewEncoder(vocab.Mapping{"ab": 0})

	got := enc.Vector("ababab")
	if got[0] != 3 {
		t.Errorf("Expected ab counted 3 times, got %d", got[0])
	}
}

func TestFormatRow(t *testing.T) {
	rec := corpus.Record{
		ID:               "5",
		LabelBinary:      "0",
		LabelTernary:     "1",
		LabelFinegrained: "4",
	}

	got := FormatRow(rec, []int{1, 0, 2}, ", ")
	want := "5, 0, 1, 4, 1, 0, 2"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestEncode(t *testing.T) {
	input := "5,aabba,aabba,0,1,4,forum\n" +
		"6,ab,ab,1,1,1,blog\n"
	enc := NewEncoder(vocab.Mapping{"aa": 0, "ab": 1, "ba": 2})

	var out bytes.Buffer
	stats, err := enc.Encode(context.Background(), corpus.NewReader(strings.NewReader(input)), &out)
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}

	if stats.Rows != 2 {
		t.Errorf("Expected 2 rows, got %d", stats.Rows)
	}
	want := "5, 0, 1, 4, 1, 1, 1\n6, 1, 1, 1, 0, 1, 0\n"
	if out.String() != want {
		t.Errorf("Expected output %q, got %q", want, out.String())
	}
}

func TestEncodeFlushCadence(t *testing.T) {
	var input strings.Builder
	for _, id := range []string{"1", "2", "3", "4", "5"} {
		input.WriteString(id + ",ab,ab,0,0,0,forum\n")
	}
	enc := NewEncoder(vocab.Mapping{"ab": 0}, WithFlushEvery(2))

	var out bytes.Buffer
	stats, err := enc.Encode(context.Background(), corpus.NewReader(strings.NewReader(input.String())), &out)
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}

	if stats.Rows != 5 {
		t.Errorf("Expected 5 rows, got %d", stats.Rows)
	}
	if stats.Flushes != 3 {
		t.Errorf("Expected 3 flushes for 5 rows at cadence 2, got %d", stats.Flushes)
	}
	if got := strings.Count(out.String(), "\n"); got != 5 {
		t.Errorf("Expected 5 output lines, got %d", got)
	}
}

func TestEncodeSkipsBadRows(t *testing.T) {
	input := "1,ab,ab,0,0,0,forum\n" +
		corpus.Sentinel + "\n" +
		"2,too,short\n" +
		"3,ba,ba,1,1,1,blog\n"
	enc := NewEncoder(vocab.Mapping{"ab": 0, "ba": 1})

	var out bytes.Buffer
	src := corpus.NewReader(strings.NewReader(input))
	stats, err := enc.Encode(context.Background(), src, &out)
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}

	if stats.Rows != 2 {
		t.Errorf("Expected 2 encoded rows, got %d", stats.Rows)
	}
	if src.Stats().Skipped() != 2 {
		t.Errorf("Expected 2 skipped rows, got %d", src.Stats().Skipped())
	}
}

func TestEncodeRateLimited(t *testing.T) {
	input := "1,aabba,aabba,0,0,0,forum\n"
	enc := NewEncoder(vocab.Mapping{"aa": 0, "ab": 1, "ba": 2}, WithBytesPerSec(1<<20))

	var out bytes.Buffer
	if _, err := enc.Encode(context.Background(), corpus.NewReader(strings.NewReader(input)), &out); err != nil {
		t.Fatalf("Failed to encode with rate limit: %v", err)
	}

	want := "1, 0, 0, 0, 1, 1, 1\n"
	if out.String() != want {
		t.Errorf("Expected throttled output to match, want %q, got %q", want, out.String())
	}
}

func TestEncodeCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	enc := NewEncoder(vocab.Mapping{"ab": 0})
	var out bytes.Buffer
	input := "1,ab,ab,0,0,0,forum\n"

	if _, err := enc.Encode(ctx, corpus.NewReader(strings.NewReader(input)), &out); err == nil {
		t.Error("Expected error for canceled context")
	}
}
