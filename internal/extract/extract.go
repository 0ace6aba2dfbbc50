package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxPages bounds how much of a document is read so upload latency has a
// ceiling regardless of document size.
const maxPages = 5

// Text returns the concatenated text of the first maxPages pages of a PDF.
// Library used: github.com/ledongthuc/pdf.
func Text(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	pages := pdfReader.NumPage()
	if pages > maxPages {
		pages = maxPages
	}

	var parts []string
	for i := 1; i <= pages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page does not abort the rest.
			continue
		}
		parts = append(parts, text)
	}

	return strings.Join(parts, " "), nil
}
