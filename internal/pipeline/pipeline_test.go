package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/doc-intake-bot/internal/extract"
	"github.com/joseph-ayodele/doc-intake-bot/internal/llm"
)

type fakeExtractor struct {
	text  string
	err   error
	calls int
}

func (f *fakeExtractor) Extract(ctx context.Context, data []byte) (extract.TextExtractionResult, error) {
	f.calls++
	if f.err != nil {
		return extract.TextExtractionResult{}, f.err
	}
	return extract.TextExtractionResult{Text: f.text, Pages: 1}, nil
}

type fakeAnalyzer struct {
	rec   llm.Record
	err   error
	calls int
	seen  string
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, text string) (llm.Record, []byte, error) {
	f.calls++
	f.seen = text
	if f.err != nil {
		return llm.Record{}, nil, f.err
	}
	return f.rec, nil, nil
}

// recorder keeps one ordered trace across notifier and sink so tests can
// assert the reply went out before the append attempt.
type recorder struct {
	events []string
}

type fakeSink struct {
	rec  *recorder
	err  error
	rows [][]string
}

func (f *fakeSink) AppendRow(ctx context.Context, row []string) error {
	f.rec.events = append(f.rec.events, "append")
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, row)
	return nil
}

type fakeNotifier struct {
	rec      *recorder
	messages []string
	markdown []bool
}

func (f *fakeNotifier) Notify(text string, markdown bool) error {
	f.rec.events = append(f.rec.events, "notify")
	f.messages = append(f.messages, text)
	f.markdown = append(f.markdown, markdown)
	return nil
}

func newFixture(ex *fakeExtractor, an *fakeAnalyzer, sinkErr error) (*Pipeline, *fakeSink, *fakeNotifier) {
	rec := &recorder{}
	sink := &fakeSink{rec: rec, err: sinkErr}
	n := &fakeNotifier{rec: rec}
	return New(nil, ex, an, sink), sink, n
}

func TestProcessSuccess(t *testing.T) {
	ex := &fakeExtractor{text: "Hello\nWorld"}
	an := &fakeAnalyzer{rec: llm.Record{DocumentType: "письмо", Summary: "ok"}}
	p, sink, n := newFixture(ex, an, nil)

	res, err := p.Process(context.Background(), RawDocument{FileName: "f.pdf", Data: []byte("%PDF")}, n)
	require.NoError(t, err)

	assert.Equal(t, "Hello\nWorld", an.seen)
	assert.Equal(t, "f.pdf", res.Record.SourceFileName)
	assert.True(t, res.Persisted)

	require.Len(t, sink.rows, 1)
	assert.Equal(t, []string{"f.pdf", "письмо", "", "", "", "", "", "ok"}, sink.rows[0])

	// progress message, analysis reply (markdown), saved confirmation
	require.Len(t, n.messages, 3)
	assert.Contains(t, n.messages[0], "Анализирую")
	assert.Contains(t, n.messages[1], "**Тип**: письмо")
	assert.True(t, n.markdown[1])
	assert.Contains(t, n.messages[2], "сохранён")
}

func TestProcessExtractionFailure(t *testing.T) {
	ex := &fakeExtractor{err: errors.New("broken payload")}
	an := &fakeAnalyzer{}
	p, sink, n := newFixture(ex, an, nil)

	_, err := p.Process(context.Background(), RawDocument{FileName: "f.pdf"}, n)
	require.Error(t, err)

	assert.Zero(t, an.calls, "analysis must not run after extraction failure")
	assert.Empty(t, sink.rows)
	assert.Empty(t, n.messages)
}

func TestProcessAnalysisFailureAppendsNoRow(t *testing.T) {
	ex := &fakeExtractor{text: "free text"}
	an := &fakeAnalyzer{err: errors.New("model output is not a valid record")}
	p, sink, n := newFixture(ex, an, nil)

	_, err := p.Process(context.Background(), RawDocument{FileName: "f.pdf"}, n)
	require.Error(t, err)

	assert.Empty(t, sink.rows, "no row may be appended for a failed analysis")
	require.Len(t, n.messages, 1) // only the progress message went out
	assert.Contains(t, n.messages[0], "Анализирую")
}

func TestProcessPersistenceFailureIsSwallowed(t *testing.T) {
	ex := &fakeExtractor{text: "text"}
	an := &fakeAnalyzer{rec: llm.Record{DocumentType: "акт"}}
	p, sink, n := newFixture(ex, an, errors.New("sheet unreachable"))

	res, err := p.Process(context.Background(), RawDocument{FileName: "a.pdf"}, n)
	require.NoError(t, err, "sink failure must not surface to the caller")

	assert.False(t, res.Persisted)

	// The analysis reply was delivered before the append attempt.
	assert.Equal(t, []string{"notify", "notify", "append"}, sink.rec.events)

	// No saved-confirmation after a failed append.
	require.Len(t, n.messages, 2)
	assert.Contains(t, n.messages[1], "**Тип**: акт")
}
