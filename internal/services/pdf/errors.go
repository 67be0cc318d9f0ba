// File: internal/services/pdf/errors.go
package pdf

import "errors"

// ErrNoText means the document parsed but yielded no extractable text
// (image-only or empty PDFs). Callers surface this as a validation failure,
// not a server error.
var ErrNoText = errors.New("could not extract text from PDF")

// ErrNotPDF means the payload does not carry the PDF magic bytes.
var ErrNotPDF = errors.New("data is not a PDF document")
