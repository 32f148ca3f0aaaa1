// Package decode implements the two input decoders the spec names: a CSV
// row decoder and a JSON document decoder. Both feed component B (the edge
// ingester) or component F (annotation); this package only turns bytes
// into rows or trees, never applies threshold or dedup policy itself.
package decode

import (
	"encoding/csv"
	"io"
	"strings"

	"clustrace/internal/errs"
	"clustrace/internal/ingest"
)

type csvRowReader struct {
	r   *csv.Reader
	row int
}

// CSVReader wraps r as an ingest.RowReader over whitespace-trimmed,
// three-column CSV records with no header. Blank lines are skipped; rows
// with fewer than three columns fail with errs.ShortRowError.
func CSVReader(r io.Reader) ingest.RowReader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &csvRowReader{r: cr}
}

func (c *csvRowReader) Read() (ingest.Row, error) {
	for {
		rec, err := c.r.Read()
		if err != nil {
			return ingest.Row{}, err
		}
		c.row++

		blank := true
		for _, f := range rec {
			if strings.TrimSpace(f) != "" {
				blank = false
				break
			}
		}
		if blank {
			continue
		}

		if len(rec) < 3 {
			return ingest.Row{}, &errs.ShortRowError{Row: c.row}
		}

		return ingest.Row{
			IDA:          strings.TrimSpace(rec[0]),
			IDB:          strings.TrimSpace(rec[1]),
			DistanceText: strings.TrimSpace(rec[2]),
		}, nil
	}
}
