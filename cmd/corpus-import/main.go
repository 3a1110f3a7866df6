// corpus-import converts a JSONL document dump into the labeled CSV
// corpus layout the pipeline reads.
package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"golang.org/x/net/html"
)

type document struct {
	ID               string `json:"id"`
	Text             string `json:"text"`
	HTML             string `json:"html"`
	MaskedText       string `json:"masked_text"`
	LabelBinary      string `json:"label_binary"`
	LabelTernary     string `json:"label_ternary"`
	LabelFinegrained string `json:"label_finegrained"`
	Source           string `json:"source"`
}

func main() {
	var (
		inPath  = flag.String("in", "documents.jsonl", "JSONL document dump")
		outPath = flag.String("out", "corpus.csv", "CSV corpus to write")
	)
	flag.Parse()

	in, err := os.Open(*inPath)
	if err != nil {
		log.Fatalf("failed to open input: %v", err)
	}
	defer in.Close()

	out, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("failed to create output: %v", err)
	}
	defer out.Close()

	w := csv.NewWriter(out)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var imported, skipped int
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var doc document
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			log.Printf("skipping bad document: %v", err)
			skipped++
			continue
		}
		if doc.ID == "" {
			log.Printf("skipping document without id")
			skipped++
			continue
		}

		text := doc.Text
		if text == "" && doc.HTML != "" {
			stripped, err := stripHTML(doc.HTML)
			if err != nil {
				log.Printf("skipping document %s: %v", doc.ID, err)
				skipped++
				continue
			}
			text = stripped
		}
		masked := doc.MaskedText
		if masked == "" {
			masked = text
		}

		row := []string{doc.ID, text, masked, doc.LabelBinary, doc.LabelTernary, doc.LabelFinegrained, doc.Source}
		if err := w.Write(row); err != nil {
			log.Fatalf("failed to write row: %v", err)
		}

		imported++
		if imported%1000 == 0 {
			log.Printf("imported %d documents", imported)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("failed to read input: %v", err)
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("failed to flush output: %v", err)
	}
	log.Printf("✓ imported %d documents to %s (%d skipped)", imported, *outPath, skipped)
}

// stripHTML extracts the visible text of an HTML fragment.
func stripHTML(fragment string) (string, error) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(doc)

	return strings.Join(strings.Fields(sb.String()), " "), nil
}
