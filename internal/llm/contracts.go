package llm

import "context"

// Facts holds the four fixed fact fields the model is asked to extract.
// The JSON keys are the wire contract with the prompt and must not change.
type Facts struct {
	Role         string `json:"должность,omitempty"`
	City         string `json:"город,omitempty"`
	Date         string `json:"дата,omitempty"`
	Organization string `json:"организация,omitempty"`
}

// Record is the structured analysis result. Every model-produced field is
// optional; missing fields are defaulted at the projection and rendering
// boundaries, never treated as an error here.
type Record struct {
	DocumentType string `json:"тип,omitempty"`
	PersonName   string `json:"имя,omitempty"`
	Facts        Facts  `json:"факты,omitempty"`
	Summary      string `json:"резюме,omitempty"` // 1–2 sentences
	// SourceFileName is attached by the pipeline after analysis; it is not
	// part of the model contract.
	SourceFileName string `json:"-"`
}

// Analyzer is the interface the pipeline depends on.
type Analyzer interface {
	// Analyze turns extracted document text into a Record. The raw cleaned
	// JSON is returned alongside for logging/diagnostics.
	Analyze(ctx context.Context, text string) (Record, []byte, error)
}
