// Package bot is the chat transport: it receives attachments from Telegram,
// gates them by content type, and feeds them to the intake pipeline.
package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/doc-intake-bot/constants"
	"github.com/joseph-ayodele/doc-intake-bot/internal/common"
	"github.com/joseph-ayodele/doc-intake-bot/internal/pipeline"
)

const (
	msgGreeting = "Привет! 🧠 Отправь мне PDF-файл, и я его проанализирую.\n" +
		"Результат сохраню в Google Таблицу."
	msgNotPDF      = "Пожалуйста, отправь PDF-файл."
	msgReceiving   = "📥 Получаю файл..."
	msgErrorPrefix = "❌ Ошибка: "
)

type Config struct {
	Token       string
	PollTimeout int // seconds
}

type Bot struct {
	api    *tgbotapi.BotAPI
	cfg    Config
	pipe   *pipeline.Pipeline
	http   *http.Client
	logger *slog.Logger
}

func New(cfg Config, pipe *pipeline.Pipeline, logger *slog.Logger) (*Bot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 30
	}
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, common.WrapError(err, "telegram authorize")
	}
	logger.Info("bot.authorized", "username", api.Self.UserName)
	return &Bot{
		api:    api,
		cfg:    cfg,
		pipe:   pipe,
		http:   &http.Client{Timeout: 2 * time.Minute},
		logger: logger,
	}, nil
}

// Run polls for updates until the context is cancelled. Each update is
// handled to completion before the next one for the same session; sessions
// are independent, so no coordination is needed between them.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.PollTimeout
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, upd)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil {
		return
	}
	switch {
	case msg.IsCommand() && msg.Command() == "start":
		b.send(msg.Chat.ID, msgGreeting, false)
	case msg.Document != nil:
		b.handleDocument(ctx, msg)
	}
}

// AllowedDocument reports whether the attachment's declared content type is
// processable. The gate runs before any download or resource use.
func AllowedDocument(mimeType string) bool {
	return mimeType == constants.MIMETypePDF
}

func (b *Bot) handleDocument(ctx context.Context, msg *tgbotapi.Message) {
	doc := msg.Document
	n := &chatNotifier{bot: b, chatID: msg.Chat.ID}

	reqID := uuid.New().String()
	ctx = common.WithRequestID(ctx, reqID)

	b.logger.Info("bot.document.received",
		"req_id", reqID,
		"stage", constants.StageReceived,
		"file", doc.FileName,
		"ext", constants.NormalizeExt(filepath.Ext(doc.FileName)),
		"mime", doc.MimeType,
		"size", doc.FileSize,
	)

	if !AllowedDocument(doc.MimeType) {
		rejection := common.UnsupportedInputError(msgNotPDF)
		b.logger.Warn("bot.document.rejected", "req_id", reqID, "mime", doc.MimeType, "error", rejection)
		_ = n.Notify(rejection.UserMessage(), false)
		return
	}

	_ = n.Notify(msgReceiving, false)

	data, err := b.download(ctx, doc.FileID)
	if err != nil {
		b.logger.Error("bot.download.failed",
			"req_id", reqID,
			"stage", constants.StageDownloaded,
			"error", err,
		)
		_ = n.Notify(msgErrorPrefix+err.Error(), false)
		return
	}

	raw := pipeline.RawDocument{FileName: doc.FileName, Data: data}
	if _, err := b.pipe.Process(ctx, raw, n); err != nil {
		_ = n.Notify(msgErrorPrefix+userMessage(err), false)
	}
}

// download fetches the attachment payload through the bot file API.
func (b *Bot) download(ctx context.Context, fileID string) ([]byte, error) {
	f, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, common.WrapError(err, "resolve file")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.Link(b.api.Token), nil)
	if err != nil {
		return nil, common.WrapError(err, "build download request")
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return nil, common.WrapError(err, "download file")
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			b.logger.Warn("bot.download.body_close_error", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (b *Bot) send(chatID int64, text string, markdown bool) {
	m := tgbotapi.NewMessage(chatID, text)
	if markdown {
		m.ParseMode = tgbotapi.ModeMarkdown
	}
	if _, err := b.api.Send(m); err != nil {
		b.logger.Warn("bot.send.failed", "chat_id", chatID, "error", err)
	}
}

// userMessage flattens a pipeline error into the single user-facing line.
func userMessage(err error) string {
	var ae *common.AppError
	if errors.As(err, &ae) {
		return ae.UserMessage()
	}
	return err.Error()
}

// chatNotifier binds pipeline notifications to the originating chat.
type chatNotifier struct {
	bot    *Bot
	chatID int64
}

func (n *chatNotifier) Notify(text string, markdown bool) error {
	m := tgbotapi.NewMessage(n.chatID, text)
	if markdown {
		m.ParseMode = tgbotapi.ModeMarkdown
	}
	_, err := n.bot.api.Send(m)
	return err
}
