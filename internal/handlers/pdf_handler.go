// File: internal/handlers/pdf_handler.go
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/docuchat/docuchat/internal/dtos"
	"github.com/docuchat/docuchat/internal/services"
	"github.com/docuchat/docuchat/internal/services/pdf"
)

// TextExtractor extracts plain text from PDF bytes. Satisfied by
// pdf.Extractor; the indirection keeps the handler testable without fixture
// documents.
type TextExtractor interface {
	Extract(data []byte) (*pdf.Result, error)
}

// multipartMemoryLimit is how much of the form stays in memory before
// spilling to disk; the actual upload ceiling is MaxUploadBytes.
const multipartMemoryLimit = 32 << 20

type PDFHandler struct {
	Extractor      TextExtractor
	MaxUploadBytes int64
	logger         services.Logger
}

func NewPDFHandler(extractor TextExtractor, maxUploadBytes int64, logger services.Logger) *PDFHandler {
	if logger == nil {
		logger = &services.NoOpLogger{}
	}
	return &PDFHandler{
		Extractor:      extractor,
		MaxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// HandleExtract accepts a multipart upload with a "pdf" field and returns the
// extracted text plus page count. Validation order: field present, PDF type,
// size ceiling - and only then is the extraction library invoked.
func (h *PDFHandler) HandleExtract(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		writeJSON(w, http.StatusBadRequest, dtos.ErrorResponse{Error: "No PDF file provided"})
		return
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, dtos.ErrorResponse{Error: "No PDF file provided"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType != "application/pdf" && !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		h.logger.Warn("rejected non-PDF upload", "content_type", contentType, "filename", header.Filename)
		writeJSON(w, http.StatusBadRequest, dtos.ErrorResponse{
			Error: fmt.Sprintf("Invalid file type: %s. Please upload a PDF file", contentType),
		})
		return
	}

	if header.Size > h.MaxUploadBytes {
		h.logger.Warn("rejected oversized upload", "size_bytes", header.Size)
		writeJSON(w, http.StatusBadRequest, dtos.ErrorResponse{
			Error: fmt.Sprintf("File size too large: %d bytes. Maximum size is %d MB",
				header.Size, h.MaxUploadBytes/(1024*1024)),
		})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, dtos.ErrorResponse{
			Error:   "Failed to read uploaded file",
			Details: err.Error(),
		})
		return
	}

	result, err := h.Extractor.Extract(data)
	if err != nil {
		if errors.Is(err, pdf.ErrNoText) || errors.Is(err, pdf.ErrNotPDF) {
			writeJSON(w, http.StatusBadRequest, dtos.ErrorResponse{Error: "Could not extract text from PDF"})
			return
		}
		h.logger.Error("PDF extraction failed", "filename", header.Filename, "error", err)
		writeJSON(w, http.StatusInternalServerError, dtos.ErrorResponse{
			Error:   "Failed to process PDF file",
			Details: err.Error(),
		})
		return
	}

	h.logger.Info("PDF text extracted",
		"filename", header.Filename,
		"pages", result.Pages,
		"text_length", len(result.Text))

	var metadata *string
	if result.Metadata != "" {
		metadata = &result.Metadata
	}
	writeJSON(w, http.StatusOK, dtos.PDFExtractResponse{
		Text: result.Text,
		Info: dtos.PDFInfo{Pages: result.Pages, Metadata: metadata},
	})
}
