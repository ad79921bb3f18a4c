// Package pipeline sequences one document through extraction, analysis,
// notification, and persistence, and owns the failure contract between them.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/doc-intake-bot/constants"
	"github.com/joseph-ayodele/doc-intake-bot/internal/common"
	"github.com/joseph-ayodele/doc-intake-bot/internal/extract"
	"github.com/joseph-ayodele/doc-intake-bot/internal/llm"
	"github.com/joseph-ayodele/doc-intake-bot/internal/render"
	"github.com/joseph-ayodele/doc-intake-bot/internal/sheets"
)

// RawDocument is one incoming attachment. It lives for a single Process
// call and is owned by the pipeline for that call's duration.
type RawDocument struct {
	FileName string
	Data     []byte
}

// RowAppender is the storage sink: one append per analyzed document.
type RowAppender interface {
	AppendRow(ctx context.Context, row []string) error
}

// Notifier delivers user-visible messages back to the originating chat.
type Notifier interface {
	Notify(text string, markdown bool) error
}

// Result carries both projections of one analyzed document.
type Result struct {
	Record    llm.Record
	Reply     string
	Row       []string
	Persisted bool
}

// Pipeline coordinates text extraction, analysis, and persistence.
type Pipeline struct {
	Logger    *slog.Logger
	Extractor extract.TextExtractor
	Analyzer  llm.Analyzer
	Sink      RowAppender
}

func New(logger *slog.Logger, ex extract.TextExtractor, an llm.Analyzer, sink RowAppender) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{Logger: logger, Extractor: ex, Analyzer: an, Sink: sink}
}

// Process runs the full chain for one document: extract → analyze → reply →
// append. The analysis reply is delivered before the append is attempted,
// so a failing sink never withholds the answer: persistence failures are
// logged and swallowed. Extraction and analysis failures propagate to the
// caller, which turns them into one user-facing error message.
func (p *Pipeline) Process(ctx context.Context, doc RawDocument, n Notifier) (Result, error) {
	reqID := common.RequestIDFromContext(ctx)
	if reqID == "" {
		reqID = uuid.New().String()
		ctx = common.WithRequestID(ctx, reqID)
	}
	start := time.Now()

	p.Logger.Info("pipeline.start",
		"req_id", reqID,
		"file", doc.FileName,
		"bytes", len(doc.Data),
	)

	extracted, err := p.Extractor.Extract(ctx, doc.Data)
	if err != nil {
		p.Logger.Error("pipeline.extract.failed",
			"req_id", reqID,
			"stage", constants.StageExtracted,
			"file", doc.FileName,
			"error", err,
		)
		return Result{}, err
	}
	p.Logger.Info("pipeline.extract.ok",
		"req_id", reqID,
		"pages", extracted.Pages,
		"text_len", len(extracted.Text),
	)

	p.notify(n, reqID, "🧠 Анализирую документ...", false)

	rec, _, err := p.Analyzer.Analyze(ctx, extracted.Text)
	if err != nil {
		p.Logger.Error("pipeline.analyze.failed",
			"req_id", reqID,
			"stage", constants.StageAnalyzed,
			"file", doc.FileName,
			"error", err,
		)
		return Result{}, err
	}
	rec.SourceFileName = doc.FileName

	res := Result{
		Record: rec,
		Reply:  render.Format(rec),
		Row:    sheets.ProjectRow(rec),
	}

	// The answer goes out first; everything after this is best-effort.
	p.notify(n, reqID, res.Reply, true)

	if err := p.Sink.AppendRow(ctx, res.Row); err != nil {
		// Swallowed: the user already has the analysis reply.
		p.Logger.Error("pipeline.persist.failed",
			"req_id", reqID,
			"stage", constants.StagePersisted,
			"file", doc.FileName,
			"cells", len(res.Row),
			"error", err,
		)
	} else {
		res.Persisted = true
		p.notify(n, reqID, "📤 Результат сохранён в Google Таблицу!", false)
	}

	p.Logger.Info("pipeline.ok",
		"req_id", reqID,
		"stage", constants.StageNotified,
		"file", doc.FileName,
		"persisted", res.Persisted,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

func (p *Pipeline) notify(n Notifier, reqID, text string, markdown bool) {
	if n == nil {
		return
	}
	if err := n.Notify(text, markdown); err != nil {
		p.Logger.Warn("pipeline.notify.failed", "req_id", reqID, "error", err)
	}
}
