package dubbing

import (
	"errors"
	"testing"

	"github.com/johnquangdev/transcript-dubber/internal/domain/entities"
)

func TestParseTable(t *testing.T) {
	data := "\xEF\xBB\xBFSpeaker,Time Markers,EN--Transcription,FR--Transcription\n" +
		"spk_0,0:00,Hello,Bonjour\n" +
		"spk_1,0:05,\"Well, bye\",\n" +
		"spk_0,0:09\n"

	table, err := ParseTable([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantCols := []string{"Speaker", "Time Markers", "EN--Transcription", "FR--Transcription"}
	if len(table.Columns) != len(wantCols) {
		t.Fatalf("columns = %v", table.Columns)
	}
	for i, c := range wantCols {
		if table.Columns[i] != c {
			t.Fatalf("column %d = %q, want %q", i, table.Columns[i], c)
		}
	}
	if len(table.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table.Rows))
	}
	if table.Rows[1]["EN--Transcription"] != "Well, bye" {
		t.Fatalf("quoted cell = %q", table.Rows[1]["EN--Transcription"])
	}
	if _, ok := table.Rows[2]["FR--Transcription"]; ok {
		t.Fatal("short row must not carry missing columns")
	}
	if table.Rows[0]["FR--Transcription"] != "Bonjour" {
		t.Fatalf("FR cell = %q", table.Rows[0]["FR--Transcription"])
	}
}

func TestParseTableEmpty(t *testing.T) {
	for name, data := range map[string]string{
		"no bytes":    "",
		"header only": "Speaker,Time Markers,EN--Transcription\n",
	} {
		t.Run(name, func(t *testing.T) {
			table, err := ParseTable([]byte(data))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !table.IsEmpty() {
				t.Fatalf("expected empty table, got %d rows", len(table.Rows))
			}
		})
	}
}

func TestParseTableRejectsInvalidUTF8(t *testing.T) {
	_, err := ParseTable([]byte("Speaker,EN--Transcription\nspk_0,caf\xe9\n"))
	if !errors.Is(err, entities.ErrMalformedEncoding) {
		t.Fatalf("expected ErrMalformedEncoding, got %v", err)
	}
}

func TestParseTableDuplicateHeader(t *testing.T) {
	table, err := ParseTable([]byte("A,B,A\n1,2,3\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table.Columns) != 2 || table.Rows[0]["A"] != "1" {
		t.Fatalf("unexpected table %+v", table)
	}
}
