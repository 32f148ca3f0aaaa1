// Package annotate implements the optional annotation pass (component F):
// it attaches per-patient attribute records and an attribute schema onto an
// already-rendered trace_results document, in either of the two node
// layouts component E can produce.
package annotate

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"clustrace/internal/decode"
	"clustrace/internal/errs"
)

const (
	defaultIDField    = "ehars_uid"
	defaultKeyDelim   = "~"
	schemaKeyingField = "keying"
)

// keying describes how a patient-ID key is built from an attribute record
// and how the matching key is recovered from a node's id. A schema's
// top-level "keying": {"fields": [...], "delimiter": "..."} entry
// overrides the single-field default.
type keying struct {
	fields    []string
	delimiter string
}

// resolveKeying reads an optional "keying" entry out of schema, falling
// back to idField (or "ehars_uid" if empty) as the sole key field.
func resolveKeying(schema map[string]any, idField string) keying {
	if idField == "" {
		idField = defaultIDField
	}
	k := keying{fields: []string{idField}, delimiter: defaultKeyDelim}

	raw, ok := schema[schemaKeyingField].(map[string]any)
	if !ok {
		return k
	}
	if rawFields, ok := raw["fields"].([]any); ok && len(rawFields) > 0 {
		fields := make([]string, 0, len(rawFields))
		for _, f := range rawFields {
			if s, ok := f.(string); ok {
				fields = append(fields, s)
			}
		}
		if len(fields) > 0 {
			k.fields = fields
		}
	}
	if d, ok := raw["delimiter"].(string); ok && d != "" {
		k.delimiter = d
	}
	return k
}

// Annotate parses networkJSON, attributesJSON and schemaJSON, attaches
// attributes to matching nodes and the schema to the document body, and
// returns the enriched document with the same trace_results wrapping
// convention as the input. idField selects the patient-ID key in each
// attribute record (empty defaults to "ehars_uid"), unless schema
// specifies its own multi-field "keying", which takes precedence.
func Annotate(networkJSON, attributesJSON, schemaJSON, idField string) (string, error) {
	tree, err := decode.ParseTree(strings.NewReader(networkJSON))
	if err != nil {
		return "", err
	}

	var attrs []map[string]any
	if err := json.NewDecoder(strings.NewReader(attributesJSON)).Decode(&attrs); err != nil {
		return "", fmt.Errorf("decoding attributes: %w", err)
	}

	var schema map[string]any
	if err := json.NewDecoder(strings.NewReader(schemaJSON)).Decode(&schema); err != nil {
		return "", fmt.Errorf("decoding schema: %w", err)
	}
	k := resolveKeying(schema, idField)

	index, err := buildIndex(attrs, k)
	if err != nil {
		return "", err
	}

	body, wrapped := unwrapBody(tree)
	nodesRaw, ok := body["Nodes"]
	if !ok {
		return "", errs.ErrMalformedNetwork
	}

	switch nodes := nodesRaw.(type) {
	case map[string]any:
		if err := annotateColumnar(nodes, index, k); err != nil {
			return "", err
		}
	case []any:
		if err := annotateObjects(nodes, index, k); err != nil {
			return "", err
		}
	default:
		return "", errs.ErrMalformedNetwork
	}
	body["patient_attribute_schema"] = attributeSchema(schema)

	out := any(body)
	if wrapped {
		tree["trace_results"] = body
		out = tree
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("rendering annotated document: %w", err)
	}
	return string(data), nil
}

// attributeSchema returns schema with the "keying" directive stripped -
// it configures the key lookup, it is not itself an attribute field.
func attributeSchema(schema map[string]any) map[string]any {
	out := make(map[string]any, len(schema))
	for k, v := range schema {
		if k == schemaKeyingField {
			continue
		}
		out[k] = v
	}
	return out
}

// buildIndex maps composite key -> attribute record, last-seen wins on
// duplicate keys.
func buildIndex(attrs []map[string]any, k keying) (map[string]map[string]any, error) {
	index := make(map[string]map[string]any, len(attrs))
	for _, rec := range attrs {
		key, err := recordKey(rec, k)
		if err != nil {
			return nil, err
		}
		index[key] = rec
	}
	return index, nil
}

// recordKey joins the value of each key field present in rec with k's
// delimiter. Fails with errs.ErrMissingIDField if any key field is absent
// or (in the single-field case) blank; any other value, scalar or not, is
// rendered as text by scalarToString.
func recordKey(rec map[string]any, k keying) (string, error) {
	parts := make([]string, len(k.fields))
	for i, field := range k.fields {
		raw, ok := rec[field]
		if !ok {
			return "", errs.ErrMissingIDField
		}
		s := scalarToString(raw)
		if len(k.fields) == 1 && strings.TrimSpace(s) == "" {
			return "", errs.ErrMissingIDField
		}
		parts[i] = s
	}
	return strings.Join(parts, k.delimiter), nil
}

// nodeKey recovers the composite key from a node's id. With a single key
// field the id is the key verbatim; with multiple fields, the id is
// expected to embed them as delimiter-joined leading parts (the same
// convention the attribute side uses to build a key), e.g.
// "Patient1~Sample1" under fields ["patient_id", "sample_id"].
func nodeKey(id string, k keying) (string, error) {
	if len(k.fields) <= 1 {
		return id, nil
	}
	parts := strings.Split(id, k.delimiter)
	if len(parts) < len(k.fields) {
		return "", fmt.Errorf("node id %q has fewer parts than key fields %v", id, k.fields)
	}
	return strings.Join(parts[:len(k.fields)], k.delimiter), nil
}

// scalarToString renders a decoded JSON scalar as plain text for key
// construction.
func scalarToString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// unwrapBody honours the optional trace_results wrapper, returning the
// body map and whether it was wrapped.
func unwrapBody(tree map[string]any) (map[string]any, bool) {
	if inner, ok := tree["trace_results"].(map[string]any); ok {
		return inner, true
	}
	return tree, false
}

// annotateColumnar attaches a parallel "patient_attributes" array to the
// columnar Nodes object, index-aligned with "id"; nodes without a match
// get a nil (JSON null) entry.
func annotateColumnar(nodes map[string]any, index map[string]map[string]any, k keying) error {
	idsRaw, ok := nodes["id"].([]any)
	if !ok {
		return errs.ErrMalformedNetwork
	}
	patientAttrs := make([]any, len(idsRaw))
	for i, idv := range idsRaw {
		id, _ := idv.(string)
		key, err := nodeKey(id, k)
		if err != nil {
			return err
		}
		if rec, found := index[key]; found {
			patientAttrs[i] = rec
		}
	}
	nodes["patient_attributes"] = patientAttrs
	return nil
}

// annotateObjects attaches "patient_attributes" directly onto each
// matching node object; unmatched nodes are left unchanged.
func annotateObjects(nodes []any, index map[string]map[string]any, k keying) error {
	for _, n := range nodes {
		obj, ok := n.(map[string]any)
		if !ok {
			continue
		}
		id, _ := obj["id"].(string)
		key, err := nodeKey(id, k)
		if err != nil {
			return err
		}
		if rec, found := index[key]; found {
			obj["patient_attributes"] = rec
		}
	}
	return nil
}
