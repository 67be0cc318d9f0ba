// File: internal/services/pdf/extractor.go
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Result holds the output from a PDF text extraction.
type Result struct {
	Text     string
	Pages    int
	Metadata string // document info dictionary rendered as a string, "" if absent
}

// Extractor extracts plain text from in-memory PDF bytes. Text-only PDFs are
// the assumed input; there is no OCR fallback and no partial extraction.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the whole document and concatenates the text of every page.
// The library needs an io.ReaderAt, so uploads are read fully into memory
// before this call; the handler enforces the size ceiling.
func (e *Extractor) Extract(data []byte) (result *Result, err error) {
	// The parser panics on some malformed documents; surface that as an
	// ordinary error instead of taking down the request.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	if !looksLikePDF(data) {
		return nil, ErrNotPDF
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}

	pageCount := reader.NumPage()

	var allText strings.Builder
	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Image-only or malformed pages are skipped, not fatal.
			continue
		}

		if allText.Len() > 0 {
			allText.WriteString("\n")
		}
		allText.WriteString(strings.TrimSpace(text))
	}

	extracted := strings.TrimSpace(allText.String())
	if extracted == "" {
		return nil, ErrNoText
	}

	return &Result{
		Text:     extracted,
		Pages:    pageCount,
		Metadata: documentInfo(reader),
	}, nil
}

// documentInfo renders the trailer's Info dictionary, if any.
func documentInfo(reader *pdf.Reader) string {
	defer func() {
		// Malformed trailers must not take down the extraction.
		_ = recover()
	}()

	info := reader.Trailer().Key("Info")
	if info.IsNull() {
		return ""
	}
	return info.String()
}

// looksLikePDF checks the "%PDF-" magic bytes.
func looksLikePDF(data []byte) bool {
	return len(data) >= 5 && string(data[:5]) == "%PDF-"
}
