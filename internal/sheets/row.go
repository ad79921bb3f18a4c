package sheets

import "github.com/joseph-ayodele/doc-intake-bot/internal/llm"

// Column positions in the destination sheet. The order is a wire contract
// with existing spreadsheet columns; changing it is a schema change and
// must happen here, in one place.
const (
	ColFileName = iota
	ColDocumentType
	ColPersonName
	ColRole
	ColCity
	ColDate
	ColOrganization
	ColSummary

	NumColumns
)

// ProjectRow maps a record into the fixed-width sheet row. Pure and total:
// missing fields become empty strings at their fixed positions, columns are
// never reordered or omitted.
func ProjectRow(rec llm.Record) []string {
	row := make([]string, NumColumns)
	row[ColFileName] = rec.SourceFileName
	row[ColDocumentType] = rec.DocumentType
	row[ColPersonName] = rec.PersonName
	row[ColRole] = rec.Facts.Role
	row[ColCity] = rec.Facts.City
	row[ColDate] = rec.Facts.Date
	row[ColOrganization] = rec.Facts.Organization
	row[ColSummary] = rec.Summary
	return row
}
