package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/doc-intake-bot/internal/common"
)

// buildPDF assembles a minimal uncompressed PDF with one text run per page.
// Object layout: 1=catalog, 2=pages, 3=font, then (page, contents) pairs.
func buildPDF(t *testing.T, pageTexts []string) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	var offsets []int
	writeObj := func(s string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(s)
	}

	var kids []string
	for i := range pageTexts {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+2*i))
	}

	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	writeObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), len(pageTexts)))
	writeObj("3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	for i, text := range pageTexts {
		pageNum := 4 + 2*i
		contNum := 5 + 2*i
		writeObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
			"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>\nendobj\n", pageNum, contNum))
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		writeObj(fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			contNum, len(stream), stream))
	}

	xrefOff := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefOff)
	return buf.Bytes()
}

func TestExtractTwoPages(t *testing.T) {
	e := NewPDFExtractor(nil)

	res, err := e.Extract(context.Background(), buildPDF(t, []string{"Hello", "World"}))
	require.NoError(t, err)

	assert.Equal(t, "Hello\nWorld", res.Text)
	assert.Equal(t, 2, res.Pages)
}

func TestExtractSinglePage(t *testing.T) {
	e := NewPDFExtractor(nil)

	res, err := e.Extract(context.Background(), buildPDF(t, []string{"Invoice 42"}))
	require.NoError(t, err)

	assert.Equal(t, "Invoice 42", res.Text)
	assert.Equal(t, 1, res.Pages)
}

func TestExtractRejectsGarbage(t *testing.T) {
	e := NewPDFExtractor(nil)

	_, err := e.Extract(context.Background(), []byte("not a pdf at all"))
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.CodeExtraction))
}

func TestExtractCleansUpTempFileOnFailure(t *testing.T) {
	e := NewPDFExtractor(nil)

	before, err := filepath.Glob(filepath.Join(os.TempDir(), "docbot-*.pdf"))
	require.NoError(t, err)

	_, extractErr := e.Extract(context.Background(), []byte("garbage payload"))
	require.Error(t, extractErr)

	after, err := filepath.Glob(filepath.Join(os.TempDir(), "docbot-*.pdf"))
	require.NoError(t, err)
	assert.Equal(t, len(before), len(after), "temp file must be released on the failure path")
}
