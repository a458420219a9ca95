// Package extract produces the raw text of a statement PDF. The PDF
// library is treated as a black box: one text blob per document, pages
// concatenated in order with nothing added between them.
package extract

import (
	"bytes"
	"fmt"

	"github.com/dslipak/pdf"
)

// Extractor yields the extracted text of one statement file.
type Extractor interface {
	Text(path string) (string, error)
}

// PDF extracts text with github.com/dslipak/pdf.
type PDF struct{}

// Text returns the plain text of every page, in page order.
func (PDF) Text(path string) (string, error) {
	r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", path, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("reading text of %s: %w", path, err)
	}
	return buf.String(), nil
}
