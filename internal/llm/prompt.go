package llm

import "strings"

// recordFormat is the literal shape shown to the model. It mirrors the JSON
// tags on Record; keep the two in sync.
const recordFormat = `{
  "тип": "...",
  "имя": "...",
  "факты": {
    "должность": "...",
    "город": "...",
    "дата": "...",
    "организация": "..."
  },
  "резюме": "..."
}`

// BuildAnalysisPrompt composes the single deterministic instruction prompt:
// the fixed extraction schema, a bare-JSON-only instruction, and the full
// extracted text appended verbatim. Same input, same prompt — no sampling
// of prompt shape.
func BuildAnalysisPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Проанализируй документ и извлеки:\n")
	b.WriteString("- Тип документа\n")
	b.WriteString("- Имя человека (если есть)\n")
	b.WriteString("- Ключевые факты: должность, город, дата, организация\n")
	b.WriteString("- Краткое резюме (1–2 предложения)\n\n")
	b.WriteString("Верни ТОЛЬКО валидный JSON без ```json.\n\n")
	b.WriteString("Формат:\n")
	b.WriteString(recordFormat)
	b.WriteString("\n\nТекст:\n")
	b.WriteString(text)
	b.WriteString("\n\nОтвет:")
	return b.String()
}
