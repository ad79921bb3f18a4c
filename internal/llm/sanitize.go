package llm

import (
	"encoding/json"
	"strings"

	"github.com/joseph-ayodele/doc-intake-bot/internal/common"
)

// Fence markers some models wrap structured output in despite instructions.
const (
	fenceOpen  = "```json"
	fenceClose = "```"
)

// StripCodeFence removes a leading ```json marker and a trailing ``` marker
// when present, then trims surrounding whitespace. Nothing else is stripped:
// extra prose around the payload is left in place and will fail parsing, by
// contract.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, fenceOpen) {
		s = s[len(fenceOpen):]
	}
	if strings.HasSuffix(s, fenceClose) {
		s = s[:len(s)-len(fenceClose)]
	}
	return strings.TrimSpace(s)
}

// ParseRecord is the single conversion boundary from raw model output to a
// Record: fence stripping, schema validation, then decode. A fence-wrapped
// payload parses to the identical record as the same payload unwrapped.
func ParseRecord(content string) (Record, []byte, error) {
	cleaned := []byte(StripCodeFence(content))

	if err := ValidateJSONAgainstSchema(BuildAnalysisJSONSchema(), cleaned); err != nil {
		return Record{}, cleaned, err
	}

	var rec Record
	if err := json.Unmarshal(cleaned, &rec); err != nil {
		return Record{}, cleaned, common.WrapError(err, "unmarshal record")
	}
	return rec, cleaned, nil
}
