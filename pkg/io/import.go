package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/ringforge/ringforge/pkg/errors"
	"github.com/ringforge/ringforge/pkg/plan"
)

// ReadDocument decodes a plan document from r.
//
// ReadDocument returns an error if the JSON is malformed or the document
// fails topology validation. The returned document is independent of r
// and can be modified safely after ReadDocument returns. ReadDocument
// does not close r.
func ReadDocument(r io.Reader) (plan.Document, error) {
	var doc plan.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return plan.Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode plan document")
	}
	if err := errors.ValidateTopology(doc.Topology.NInput, doc.Topology.NHidden, doc.Topology.NOutput); err != nil {
		return plan.Document{}, err
	}
	return doc, nil
}

// ImportDocument reads a JSON plan document from the file at path.
func ImportDocument(path string) (plan.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return plan.Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadDocument(f)
}

// weights is the wire form of a trained-network weight export. B holds the
// hidden layer weights (nHidden rows of nInput columns), D the output layer
// weights (nOutput rows of nHidden columns).
type weights struct {
	B [][]float64 `json:"B"`
	D [][]float64 `json:"D"`
}

// ReadWeights decodes a weight export from r and recovers the topology
// unit counts from the matrix shapes.
//
// ReadWeights returns an error if:
//   - The JSON is malformed
//   - Either matrix is empty or ragged
//   - The column count of D does not match the row count of B
func ReadWeights(r io.Reader) (plan.Topology, error) {
	var w weights
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return plan.Topology{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode weights")
	}

	nHidden, nInput, err := matrixShape("B", w.B)
	if err != nil {
		return plan.Topology{}, err
	}
	nOutput, dCols, err := matrixShape("D", w.D)
	if err != nil {
		return plan.Topology{}, err
	}
	if dCols != nHidden {
		return plan.Topology{}, errors.New(errors.ErrCodeInvalidTopology,
			"layer shapes disagree: D has %d columns, B has %d rows", dCols, nHidden)
	}

	topo := plan.Topology{NInput: nInput, NHidden: nHidden, NOutput: nOutput}
	if err := errors.ValidateTopology(topo.NInput, topo.NHidden, topo.NOutput); err != nil {
		return plan.Topology{}, err
	}
	return topo, nil
}

// ImportWeights reads a JSON weight export from the file at path.
func ImportWeights(path string) (plan.Topology, error) {
	f, err := os.Open(path)
	if err != nil {
		return plan.Topology{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadWeights(f)
}

// matrixShape validates a dense matrix and returns (rows, cols).
func matrixShape(name string, m [][]float64) (int, int, error) {
	if len(m) == 0 || len(m[0]) == 0 {
		return 0, 0, errors.New(errors.ErrCodeInvalidInput, "matrix %s is empty", name)
	}
	cols := len(m[0])
	for i, row := range m {
		if len(row) != cols {
			return 0, 0, errors.New(errors.ErrCodeInvalidInput,
				"matrix %s is ragged: row %d has %d columns, want %d", name, i, len(row), cols)
		}
	}
	return len(m), cols, nil
}
