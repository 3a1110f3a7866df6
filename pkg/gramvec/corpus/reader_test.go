package corpus

import (
	"io"
	"strings"
	"testing"
)

func readAll(t *testing.T, r *Reader) []Record {
	t.Helper()
	var records []Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return records
		}
		if err != nil {
			t.Fatalf("Failed to read corpus: %v", err)
		}
		records = append(records, rec)
	}
}

func TestReader(t *testing.T) {
	input := "1,hello world,hello ***,0,0,0,forum\n" +
		"2,all fine here,all fine here,1,2,5,blog\n"

	r := NewReader(strings.NewReader(input))
	records := readAll(t, r)

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	first := records[0]
	if first.ID != "1" || first.Text != "hello world" || first.MaskedText != "hello ***" {
		t.Errorf("Unexpected first record: %+v", first)
	}
	if first.LabelBinary != "0" || first.LabelTernary != "0" || first.LabelFinegrained != "0" {
		t.Errorf("Unexpected labels: %+v", first)
	}
	if first.Source != "forum" {
		t.Errorf("Expected source forum, got %s", first.Source)
	}

	stats := r.Stats()
	if stats.Records != 2 || stats.Malformed != 0 || stats.Sentinels != 0 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestReaderSkipsSentinel(t *testing.T) {
	input := "1,a b,a b,0,0,0,forum\n" +
		Sentinel + "\n" +
		"2,c d,c d,1,1,1,blog\n"

	r := NewReader(strings.NewReader(input))
	records := readAll(t, r)

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	stats := r.Stats()
	if stats.Sentinels != 1 {
		t.Errorf("Expected 1 sentinel row, got %d", stats.Sentinels)
	}
	if stats.Malformed != 0 {
		t.Errorf("Expected sentinel row not to count as malformed, got %d", stats.Malformed)
	}
}

func TestReaderCountsMalformed(t *testing.T) {
	input := "1,a b,a b,0,0,0,forum\n" +
		"2,too,short\n" +
		"3,way,too,long,0,0,0,forum,extra\n" +
		"4,c d,c d,1,1,1,blog\n"

	r := NewReader(strings.NewReader(input))
	records := readAll(t, r)

	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
	if records[0].ID != "1" || records[1].ID != "4" {
		t.Errorf("Expected records 1 and 4, got %s and %s", records[0].ID, records[1].ID)
	}

	stats := r.Stats()
	if stats.Malformed != 2 {
		t.Errorf("Expected 2 malformed rows, got %d", stats.Malformed)
	}
	if stats.Skipped() != 2 {
		t.Errorf("Expected 2 skipped rows, got %d", stats.Skipped())
	}
}

func TestReaderQuotedComma(t *testing.T) {
	input := "1,\"hello, world\",\"hello, ***\",0,0,0,forum\n"

	r := NewReader(strings.NewReader(input))
	records := readAll(t, r)

	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Text != "hello, world" {
		t.Errorf("Expected quoted comma preserved, got %q", records[0].Text)
	}
}

func TestReaderMultiByteText(t *testing.T) {
	input := "1,привет мир,привет ***,0,1,2,forum\n"

	r := NewReader(strings.NewReader(input))
	records := readAll(t, r)

	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].Text != "привет мир" {
		t.Errorf("Expected multi-byte text preserved, got %q", records[0].Text)
	}
}

func TestReaderEOFIsSticky(t *testing.T) {
	r := NewReader(strings.NewReader(""))

	for i := 0; i < 3; i++ {
		if _, err := r.Next(); err != io.EOF {
			t.Fatalf("Expected io.EOF on call %d, got %v", i, err)
		}
	}
}
