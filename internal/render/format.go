// Package render turns analysis records into the chat reply shown to users.
package render

import (
	"strings"

	"github.com/joseph-ayodele/doc-intake-bot/internal/llm"
)

// Placeholder shown for fields the model did not produce.
const Placeholder = "-"

// Format renders the record as the multi-line Markdown reply: one line per
// field, then the summary block. Pure and total — absent fields render as
// the placeholder dash.
func Format(rec llm.Record) string {
	var b strings.Builder
	b.WriteString("✅ **Тип**: " + orDash(rec.DocumentType) + "\n")
	b.WriteString("👤 **Имя**: " + orDash(rec.PersonName) + "\n")
	b.WriteString("💼 **Должность**: " + orDash(rec.Facts.Role) + "\n")
	b.WriteString("🏙️ **Город**: " + orDash(rec.Facts.City) + "\n")
	b.WriteString("📅 **Дата**: " + orDash(rec.Facts.Date) + "\n")
	b.WriteString("🏢 **Организация**: " + orDash(rec.Facts.Organization) + "\n\n")
	b.WriteString("📝 **Резюме**: " + orDash(rec.Summary))
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
