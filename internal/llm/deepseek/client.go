package deepseek

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/doc-intake-bot/internal/common"
	"github.com/joseph-ayodele/doc-intake-bot/internal/llm"
)

// Analyze implements llm.Analyzer over chat/completions. One attempt per
// call: transport failures and malformed output both abort the request's
// pipeline, they are never retried or defaulted here.
func (c *Client) Analyze(ctx context.Context, text string) (llm.Record, []byte, error) {
	rid := common.RequestIDFromContext(ctx)
	if rid == "" {
		rid = uuid.New().String()
	}
	start := time.Now()

	c.logger.Info("analyze.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"max_tokens", c.cfg.MaxTokens,
		"text_len", len(text),
	)

	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": c.cfg.Temperature,
		"max_tokens":  c.cfg.MaxTokens,
		"messages": []map[string]any{
			{"role": "user", "content": llm.BuildAnalysisPrompt(text)},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	raw, _, err := llm.SendJSON(ctx, c.http, rid, endpoint, body, headers, c.logger)
	if err != nil {
		c.logger.Error("analyze.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.Record{}, nil, common.AnalysisTransportError("model endpoint request failed", err)
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.logger.Error("analyze.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.Record{}, raw, common.AnalysisTransportError("decode completion response", err)
	}
	if len(cc.Choices) == 0 {
		c.logger.Error("analyze.no_choices",
			"req_id", rid, "raw", string(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.Record{}, raw, common.AnalysisTransportError("no choices in completion response", nil)
	}

	rec, cleaned, err := llm.ParseRecord(cc.Choices[0].Message.Content)
	if err != nil {
		c.logger.Error("analyze.parse_error",
			"req_id", rid, "error", err, "content", cc.Choices[0].Message.Content,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return llm.Record{}, cleaned, common.AnalysisParseError("model output is not a valid record", err)
	}

	c.logger.Info("analyze.ok",
		"req_id", rid,
		"doc_type", rec.DocumentType,
		"has_name", rec.PersonName != "",
		"summary_len", len(rec.Summary),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return rec, cleaned, nil
}
