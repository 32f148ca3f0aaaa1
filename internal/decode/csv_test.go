package decode

import (
	"errors"
	"io"
	"strings"
	"testing"

	"clustrace/internal/errs"
	"clustrace/internal/ingest"
)

func readAll(t *testing.T, r ingest.RowReader) []ingest.Row {
	t.Helper()
	var rows []ingest.Row
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read: %v", err)
		}
		rows = append(rows, row)
	}
	return rows
}

func TestCSVReaderTrimsWhitespace(t *testing.T) {
	r := CSVReader(strings.NewReader(" A , B , 0.01 \n"))
	rows := readAll(t, r)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	want := ingest.Row{IDA: "A", IDB: "B", DistanceText: "0.01"}
	if rows[0] != want {
		t.Errorf("row = %+v, want %+v", rows[0], want)
	}
}

func TestCSVReaderSkipsBlankLines(t *testing.T) {
	r := CSVReader(strings.NewReader("A,B,0.01\n\nC,D,0.02\n"))
	rows := readAll(t, r)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
}

func TestCSVReaderShortRow(t *testing.T) {
	r := CSVReader(strings.NewReader("A,B\n"))
	_, err := r.Read()
	var sre *errs.ShortRowError
	if !errors.As(err, &sre) {
		t.Fatalf("expected *errs.ShortRowError, got %T: %v", err, err)
	}
	if sre.Row != 1 {
		t.Errorf("Row = %d, want 1", sre.Row)
	}
}
