package sheets

import (
	"context"
	"encoding/base64"
	"log/slog"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/joseph-ayodele/doc-intake-bot/internal/common"
)

// AppenderConfig identifies the destination sheet and how to reach it.
type AppenderConfig struct {
	SpreadsheetID  string
	AppendRange    string // e.g. "Data!A:A"
	CredentialsB64 string // base64-encoded service-account JSON
}

// Appender is the storage sink: it appends one row per analyzed document to
// a Google Sheet. It never inspects the sheet's prior contents.
type Appender struct {
	svc    *sheetsv4.Service
	cfg    AppenderConfig
	logger *slog.Logger
}

// NewAppender decodes the service-account credentials and builds the Sheets
// service. Credential problems are configuration errors and abort startup.
func NewAppender(ctx context.Context, cfg AppenderConfig, logger *slog.Logger) (*Appender, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.AppendRange == "" {
		cfg.AppendRange = "Data!A:A"
	}

	creds, err := base64.StdEncoding.DecodeString(cfg.CredentialsB64)
	if err != nil {
		return nil, common.NewAppError(common.CodeConfiguration, "GOOGLE_CREDENTIALS_B64 is not valid base64", err)
	}
	jwt, err := google.JWTConfigFromJSON(creds, sheetsv4.SpreadsheetsScope)
	if err != nil {
		return nil, common.NewAppError(common.CodeConfiguration, "parse service account credentials", err)
	}

	svc, err := sheetsv4.NewService(ctx, option.WithTokenSource(jwt.TokenSource(ctx)))
	if err != nil {
		return nil, common.NewAppError(common.CodeConfiguration, "build sheets service", err)
	}
	return &Appender{svc: svc, cfg: cfg, logger: logger}, nil
}

// AppendRow appends one row, exactly once, RAW input (no cell parsing on the
// sheet side). Concurrent appends from independent requests need no
// coordination: each is an independent insert.
func (a *Appender) AppendRow(ctx context.Context, row []string) error {
	start := time.Now()

	values := make([]interface{}, len(row))
	for i, cell := range row {
		values[i] = cell
	}
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{values}}

	_, err := a.svc.Spreadsheets.Values.
		Append(a.cfg.SpreadsheetID, a.cfg.AppendRange, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return common.PersistenceError("append row to sheet", err)
	}

	a.logger.Info("sheets.append.ok",
		"spreadsheet_id", a.cfg.SpreadsheetID,
		"cells", len(row),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
