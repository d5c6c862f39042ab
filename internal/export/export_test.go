package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"betfast-props-scraper/internal/observability"
)

var testLogger = observability.NewLogger("", "error")

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "props.csv")
	w := NewCSVWriter(path, testLogger)

	headers := []string{"Player", "Prop Type", "Over Odds"}
	rows := [][]string{
		{"A. Judge", "Home Runs", "+150"},
		{"M. Trout", "Hits, Runs", "-110"}, // embedded comma must survive quoting
	}

	if err := w.Write(headers, rows); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open written file: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read written file: %v", err)
	}

	want := append([][]string{headers}, rows...)
	if !reflect.DeepEqual(records, want) {
		t.Errorf("file content = %v, want %v", records, want)
	}
}

func TestWriteEmptyRowsKeepsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "props.csv")
	w := NewCSVWriter(path, testLogger)

	if err := w.Write([]string{"Player", "Prop Type"}, nil); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read written file: %v", err)
	}
	if string(data) != "Player,Prop Type\n" {
		t.Errorf("file content = %q, want the header line only", string(data))
	}
}

func TestWriteReplacesPreviousRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "props.csv")
	w := NewCSVWriter(path, testLogger)

	if err := w.Write([]string{"Player"}, [][]string{{"A. Judge"}, {"M. Trout"}}); err != nil {
		t.Fatalf("first Write() error = %v", err)
	}
	if err := w.Write([]string{"Player"}, [][]string{{"S. Ohtani"}}); err != nil {
		t.Fatalf("second Write() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read written file: %v", err)
	}
	if string(data) != "Player\nS. Ohtani\n" {
		t.Errorf("file content = %q, want only the second run", string(data))
	}
}

func TestWriteFailsOnUnwritablePath(t *testing.T) {
	w := NewCSVWriter(filepath.Join(t.TempDir(), "missing", "props.csv"), testLogger)

	if err := w.Write([]string{"Player"}, nil); err == nil {
		t.Fatalf("Write() must fail when the directory does not exist")
	}
}
