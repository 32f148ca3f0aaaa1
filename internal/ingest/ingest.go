// Package ingest implements the edge ingester: it turns a stream of raw
// (id_a, id_b, distance_text) rows into a frozen netgraph.Graph, applying
// the threshold-admission and dedup rules row by row.
package ingest

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"clustrace/internal/errs"
	"clustrace/internal/netgraph"
)

// Row is one raw input row before parsing.
type Row struct {
	IDA          string
	IDB          string
	DistanceText string
}

// RowReader yields rows one at a time, returning io.EOF once exhausted -
// the same contract as encoding/csv.Reader.Read.
type RowReader interface {
	Read() (Row, error)
}

// Ingest consumes rows until RowReader is exhausted or a row fails to
// parse, applying, in order: distance parsing, threshold admission,
// self-loop rejection, interning, orientation normalization, and dedup.
// Threshold-rejected and self-loop rows are skipped silently; anything
// else wrong with a row aborts ingestion with a structured error.
func Ingest(rows RowReader, threshold float64) (*netgraph.Graph, error) {
	g, err := netgraph.New(threshold)
	if err != nil {
		return nil, err
	}

	row := 0
	for {
		r, err := rows.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row++

		distance, perr := parseDistance(r.DistanceText)
		if perr != nil {
			return nil, &errs.ParseError{Row: row, Column: 3, Err: perr}
		}
		if distance < 0 {
			return nil, fmt.Errorf("row %d: %w", row, errs.ErrNegativeDistance)
		}
		if distance > threshold {
			continue
		}

		idA := strings.TrimSpace(r.IDA)
		idB := strings.TrimSpace(r.IDB)
		if idA == idB {
			continue
		}

		ia, err := g.Intern(idA)
		if err != nil {
			return nil, fmt.Errorf("row %d, column 1: %w", row, err)
		}
		ib, err := g.Intern(idB)
		if err != nil {
			return nil, fmt.Errorf("row %d, column 2: %w", row, err)
		}

		g.AddEdge(ia, ib, distance)
	}

	g.Freeze()
	return g, nil
}

func parseDistance(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("distance %q is not finite", text)
	}
	return v, nil
}
