package deepseek

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/doc-intake-bot/internal/common"
)

func completionBody(content string) string {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return string(b)
}

func TestAnalyzeFencedResponse(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(completionBody("```json\n{\"тип\":\"письмо\",\"резюме\":\"ok\"}\n```")))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL, Model: "deepseek-chat"}, nil)

	rec, _, err := c.Analyze(context.Background(), "Hello\nWorld")
	require.NoError(t, err)

	assert.Equal(t, "письмо", rec.DocumentType)
	assert.Equal(t, "ok", rec.Summary)

	// Deterministic decoding with a bounded output cap.
	assert.EqualValues(t, 0, gotBody["temperature"])
	assert.EqualValues(t, 1000, gotBody["max_tokens"])
	assert.Equal(t, "deepseek-chat", gotBody["model"])
}

func TestAnalyzeUnparseableOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(completionBody("Это письмо, ничего интересного.")))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL}, nil)

	_, _, err := c.Analyze(context.Background(), "text")
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.CodeAnalysisParse))
}

func TestAnalyzeEndpointFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL}, nil)

	_, _, err := c.Analyze(context.Background(), "text")
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.CodeAnalysisTransport))
}

func TestAnalyzeNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL}, nil)

	_, _, err := c.Analyze(context.Background(), "text")
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.CodeAnalysisTransport))
}
