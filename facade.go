// Package clustrace is the pure library/binding surface: two string-in,
// string-out entry points suitable for embedding from a CLI, an HTTP
// handler, or a WASM host. Neither function touches the filesystem or any
// global state, so concurrent calls from independent goroutines are safe.
package clustrace

import (
	"strings"

	"clustrace/internal/annotate"
	"clustrace/internal/decode"
	"clustrace/internal/ingest"
	"clustrace/internal/report"
)

// BuildNetwork parses csvText as three-column CSV rows (id_a, id_b,
// distance), ingests them under threshold, and renders the resulting
// network as a trace_results JSON document in the given format
// ("plain" or "object"; empty defaults to "plain").
func BuildNetwork(csvText string, threshold float64, format string) (string, error) {
	f, err := report.ParseFormat(format)
	if err != nil {
		return "", err
	}
	rows := decode.CSVReader(strings.NewReader(csvText))
	g, err := ingest.Ingest(rows, threshold)
	if err != nil {
		return "", err
	}
	return report.Render(g, f)
}

// AnnotateNetworkJSON attaches per-patient attributes and a schema onto an
// already-rendered network document, returning the enriched document with
// the same trace_results wrapping convention as the input.
func AnnotateNetworkJSON(networkJSON, attributesJSON, schemaJSON string) (string, error) {
	return annotate.Annotate(networkJSON, attributesJSON, schemaJSON, "")
}
