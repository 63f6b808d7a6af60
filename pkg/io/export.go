package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ringforge/ringforge/pkg/plan"
)

// WriteDocument encodes a plan document as indented JSON and writes it to w.
// The output can be re-imported with [ReadDocument] for round-trip processing.
func WriteDocument(doc plan.Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportDocument writes a plan document to a JSON file at path.
func ExportDocument(doc plan.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteDocument(doc, f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
