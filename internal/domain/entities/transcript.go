package entities

// Well-known transcript columns
const (
	ColumnSpeaker     = "Speaker"
	ColumnTimeMarkers = "Time Markers"

	// TranscriptionSuffix marks a column as holding a locale's transcription
	TranscriptionSuffix = "--Transcription"

	// EnglishTranscriptionColumn is always synthesized next to the requested locale
	EnglishTranscriptionColumn = "EN" + TranscriptionSuffix
)

// PrimarySpeaker is the speaker id assumed when a row has none
const PrimarySpeaker = "spk_0"

// Row is a single transcript line keyed by column name
type Row map[string]string

// Get returns the cell value for column, or fallback when the column is absent
func (r Row) Get(column, fallback string) string {
	if v, ok := r[column]; ok {
		return v
	}
	return fallback
}

// Table is an ordered transcript as uploaded by the user
type Table struct {
	Columns []string
	Rows    []Row
}

// IsEmpty reports whether the table has no data rows
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.Rows) == 0
}

// HasColumn reports whether column is part of the header
func (t *Table) HasColumn(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}
