// Package io provides JSON import and export for board plan documents.
//
// # Overview
//
// This package reads and writes the two file formats the CLI exchanges
// with the outside world:
//
//   - Plan documents: the canonical [plan.Document] JSON, written by the
//     pipeline and re-imported for re-rendering a previously computed board.
//   - Weight exports: trained-network weight dumps of the form
//     {"B": [[...]], "D": [[...]]}, read only to recover the unit counts
//     of the topology (the weight values themselves do not influence the
//     board geometry).
//
// # Plan Documents
//
// Use [ImportDocument] to read a plan from a file path, or [ReadDocument]
// to read from any io.Reader:
//
//	doc, err := io.ImportDocument("board.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both functions validate the document structure. Use [ExportDocument] or
// [WriteDocument] for the reverse direction. Round-trip fidelity holds:
// export a document, re-import it, and rebuild the identical board.
//
// # Weight Exports
//
// A weight export holds the two dense weight matrices of a single hidden
// layer network: "B" is the hidden layer (one row per hidden unit, one
// column per input) and "D" is the output layer (one row per output unit,
// one column per hidden unit). [ImportWeights] recovers the topology from
// the matrix shapes and rejects files whose shapes disagree.
//
// [plan.Document]: github.com/ringforge/ringforge/pkg/plan.Document
package io
