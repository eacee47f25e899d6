package util

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/fadilmartias/talent-discovery/internal/apperr"
)

// PDFExtractor turns a PDF byte stream into a linear text representation and a
// rasterized first-page thumbnail, backed by MuPDF via go-fitz.
type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractText concatenates the text layer of every page in document order,
// pages separated by a blank line. A document with no extractable text (e.g. a
// scanned image PDF) yields apperr.TypeContentEmpty, not a partial result.
func (e *PDFExtractor) ExtractText(pdf []byte) (string, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var parts []string
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			return "", fmt.Errorf("page %d: failed to extract text: %w", n+1, err)
		}
		pageText = strings.TrimSpace(pageText)
		if pageText != "" {
			parts = append(parts, pageText)
		}
	}

	content := strings.TrimSpace(strings.Join(parts, "\n\n"))
	if content == "" {
		return "", apperr.NewContentEmpty()
	}
	return content, nil
}

// ExtractThumbnail rasterizes exactly the first page and encodes it as PNG.
func (e *PDFExtractor) ExtractThumbnail(pdf []byte) ([]byte, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("failed to render first page: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail PNG: %w", err)
	}
	return buf.Bytes(), nil
}
