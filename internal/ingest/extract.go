// Package ingest builds the knowledge base from source PDFs: extract
// page text, strip running headers and footers, filter out noise, and
// write the embedded corpus to the index directory.
package ingest

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPages returns the plain text of every page in the PDF at path,
// one string per page. Pages whose text cannot be decoded are kept as
// empty strings so page numbering stays stable.
func extractPages(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat pdf: %w", err)
	}

	r, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("read pdf %s: %w", path, err)
	}

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, strings.TrimSpace(text))
	}
	return pages, nil
}
