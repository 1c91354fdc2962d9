package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kirillkom/chemical-safety-registry/internal/core/domain"
	"github.com/kirillkom/chemical-safety-registry/internal/core/ports"
)

type Extractor struct {
	storage ports.ObjectStorage
}

func NewExtractor(storage ports.ObjectStorage) *Extractor {
	return &Extractor{storage: storage}
}

// ExtractText returns the concatenated page text of a stored PDF. A missing
// object or a malformed document reports domain.ErrSourceUnavailable.
//
// A PDF without a text layer (a scanned sheet) also reports
// domain.ErrSourceUnavailable instead of yielding an all-empty hazard record,
// so a stored classification is never replaced by one mined from an image.
func (e *Extractor) ExtractText(ctx context.Context, storageKey string) (string, error) {
	reader, err := e.storage.Open(ctx, storageKey)
	if err != nil {
		return "", domain.WrapError(domain.ErrSourceUnavailable, "open sds", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", domain.WrapError(domain.ErrSourceUnavailable, "read sds", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return TextFromPDF(raw)
}

// TextFromPDF extracts plain text from an in-memory PDF document.
func TextFromPDF(raw []byte) (text string, err error) {
	// The pdf package panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = domain.WrapError(domain.ErrSourceUnavailable, "parse pdf", fmt.Errorf("malformed pdf: %v", r))
		}
	}()

	doc, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", domain.WrapError(domain.ErrSourceUnavailable, "parse pdf", err)
	}

	var b strings.Builder
	for i := 1; i <= doc.NumPage(); i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", domain.WrapError(domain.ErrSourceUnavailable, "read pdf page", fmt.Errorf("page %d: %w", i, err))
		}
		b.WriteString(pageText)
		b.WriteByte('\n')
	}

	text = strings.TrimSpace(b.String())
	if text == "" {
		return "", domain.WrapError(domain.ErrSourceUnavailable, "parse pdf", errors.New("document has no text layer"))
	}
	return text, nil
}
