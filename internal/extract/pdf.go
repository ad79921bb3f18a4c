package extract

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/joseph-ayodele/doc-intake-bot/internal/common"
)

// PDFExtractor implements TextExtractor for born-digital PDFs.
type PDFExtractor struct {
	logger *slog.Logger
}

func NewPDFExtractor(logger *slog.Logger) *PDFExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{logger: logger}
}

// Extract writes the payload to a transient temp file for the parser and
// removes it on every path, success or failure. Page order is preserved;
// page boundaries collapse to a single newline.
func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (TextExtractionResult, error) {
	start := time.Now()

	tmp, err := os.CreateTemp("", "docbot-*.pdf")
	if err != nil {
		return TextExtractionResult{}, common.ExtractionError("create temp file", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			e.logger.Warn("extract.tmp_remove_failed", "path", tmpPath, "error", err)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return TextExtractionResult{}, common.ExtractionError("write temp file", err)
	}
	if err := tmp.Close(); err != nil {
		return TextExtractionResult{}, common.ExtractionError("close temp file", err)
	}

	f, r, err := pdf.Open(tmpPath)
	if err != nil {
		return TextExtractionResult{}, common.ExtractionError("open pdf", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			e.logger.Warn("extract.pdf_close_failed", "error", err)
		}
	}()

	var pages []string
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return TextExtractionResult{}, common.ExtractionError("context done", err)
		}
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return TextExtractionResult{}, common.ExtractionError("read page text", err)
		}
		pages = append(pages, strings.TrimSpace(text))
	}

	res := TextExtractionResult{
		Text:     strings.Join(pages, "\n"),
		Pages:    numPages,
		Duration: time.Since(start),
	}
	e.logger.Info("extract.ok",
		"pages", res.Pages,
		"text_len", len(res.Text),
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
