package decode

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"clustrace/internal/errs"
	"clustrace/internal/ingest"
)

// jsonRow is the object-shaped row: {"id_a": ..., "id_b": ..., "distance": ...}.
type jsonRow struct {
	IDA      string          `json:"id_a"`
	IDB      string          `json:"id_b"`
	Distance json.RawMessage `json:"distance"`
}

type sliceRowReader struct {
	rows []ingest.Row
	next int
}

func (s *sliceRowReader) Read() (ingest.Row, error) {
	if s.next >= len(s.rows) {
		return ingest.Row{}, io.EOF
	}
	row := s.rows[s.next]
	s.next++
	return row, nil
}

// JSONRows decodes a top-level JSON array of rows, accepting either
// 3-element tuples (`["A","B",0.01]`) or objects
// (`{"id_a":"A","id_b":"B","distance":0.01}`) per element.
func JSONRows(r io.Reader) (ingest.RowReader, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding json rows: %w", err)
	}

	rows := make([]ingest.Row, 0, len(raw))
	for i, item := range raw {
		row, err := decodeJSONRow(item)
		if err != nil {
			return nil, &errs.ParseError{Row: i + 1, Column: 0, Err: err}
		}
		rows = append(rows, row)
	}
	return &sliceRowReader{rows: rows}, nil
}

func decodeJSONRow(item json.RawMessage) (ingest.Row, error) {
	var tuple []json.RawMessage
	if err := json.Unmarshal(item, &tuple); err == nil && len(tuple) >= 3 {
		return ingest.Row{
			IDA:          rawScalar(tuple[0]),
			IDB:          rawScalar(tuple[1]),
			DistanceText: rawScalar(tuple[2]),
		}, nil
	}

	var obj jsonRow
	if err := json.Unmarshal(item, &obj); err != nil {
		return ingest.Row{}, err
	}
	return ingest.Row{
		IDA:          obj.IDA,
		IDB:          obj.IDB,
		DistanceText: rawScalar(obj.Distance),
	}, nil
}

// rawScalar renders a raw JSON scalar (string or number) as plain text
// without quoting, so the ingester's strconv.ParseFloat sees "0.01" not
// `"0.01"` and a JSON string id comes through unquoted.
func rawScalar(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return strings.Trim(string(raw), `"`)
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// ParseTree decodes r into a free-form JSON tree (objects become
// map[string]any, arrays become []any) without imposing any schema beyond
// what the caller subsequently mutates.
func ParseTree(r io.Reader) (map[string]any, error) {
	var tree map[string]any
	if err := json.NewDecoder(r).Decode(&tree); err != nil {
		return nil, fmt.Errorf("decoding json document: %w", err)
	}
	return tree, nil
}
