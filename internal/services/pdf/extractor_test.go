// File: internal/services/pdf/extractor_test.go
package pdf

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// onePagePDF builds a minimal but well-formed single-page document with one
// text run, including a correct xref table.
func onePagePDF(text string) []byte {
	var buf bytes.Buffer
	offsets := make([]int, 6)

	buf.WriteString("%PDF-1.4\n")
	writeObj := func(n int, body string) {
		offsets[n] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", n, body)
	}

	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	writeObj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	writeObj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
		"/Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>")
	writeObj(4, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	writeObj(5, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))

	xrefOffset := buf.Len()
	buf.WriteString("xref\n0 6\n0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xrefOffset)
	return buf.Bytes()
}

func TestExtract_SinglePageTextPDF(t *testing.T) {
	e := NewExtractor()

	result, err := e.Extract(onePagePDF("Hello DocuChat"))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Pages)
	assert.NotEmpty(t, result.Text)
	assert.Contains(t, result.Text, "Hello DocuChat")
}

func TestExtract_PageWithoutTextIsErrNoText(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract(onePagePDF(""))
	assert.ErrorIs(t, err, ErrNoText)
}

func TestExtract_RejectsNonPDFData(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name string
		data []byte
	}{
		{"nil data", nil},
		{"empty data", []byte{}},
		{"plain text", []byte("just some text, definitely not a document")},
		{"truncated magic", []byte("%PDF")},
		{"png header", []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Extract(tt.data)
			assert.ErrorIs(t, err, ErrNotPDF)
		})
	}
}

func TestExtract_CorruptPDFBody(t *testing.T) {
	e := NewExtractor()

	// Valid magic bytes, garbage body: the parser must fail cleanly.
	_, err := e.Extract([]byte("%PDF-1.7 this is not a real document body"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotPDF)
}

func TestLooksLikePDF(t *testing.T) {
	assert.True(t, looksLikePDF([]byte("%PDF-1.4\n")))
	assert.False(t, looksLikePDF([]byte("PDF-1.4")))
	assert.False(t, looksLikePDF(nil))
}
