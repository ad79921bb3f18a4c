package llm

// BuildAnalysisJSONSchema returns a JSON-Schema (draft 2020-12 subset) for
// the analysis record as a generic map. Every property is optional — a
// record missing fields is still valid; the schema only rejects type
// mismatches. Unknown keys are allowed and ignored by the decoder.
func BuildAnalysisJSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"тип": map[string]any{"type": "string"},
			"имя": map[string]any{"type": "string"},
			"факты": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"должность":   map[string]any{"type": "string"},
					"город":       map[string]any{"type": "string"},
					"дата":        map[string]any{"type": "string"},
					"организация": map[string]any{"type": "string"},
				},
			},
			"резюме": map[string]any{"type": "string"},
		},
	}
}
