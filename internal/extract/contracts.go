package extract

import (
	"context"
	"time"
)

// TextExtractor is Stage 1: document payload -> text.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text     string // page texts in original order, joined by "\n"
	Pages    int
	Duration time.Duration
}
