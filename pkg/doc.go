// Package pkg provides the core libraries for Ringforge board generation.
//
// # Overview
//
// Ringforge turns a feed-forward network topology into a machinable ring
// board: concentric slide-rule scales, slider rings, and weight channels
// laid out on a single annular apparatus. The pkg directory is organized
// into the following areas:
//
//  1. [scale] - Logarithmic, linear, and rectifier scale generators
//  2. [board] - Ring construction and radial space allocation
//  3. [render] - SVG primitives, layer styling, and format conversion
//  4. [plan] - Canonical plan document serialization
//  5. [pipeline] - Orchestration (build → layout → render) with caching
//  6. [cache], [store] - Artifact caching and plan persistence
//
// # Architecture
//
// The typical data flow through Ringforge:
//
//	Topology (nInput, nHidden, nOutput)
//	         ↓
//	    [board] package (ring sequence + radial allocation)
//	         ↓
//	    [render/rings] package (geometry to drawing primitives)
//	         ↓
//	    [render] package (layered SVG document)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
// The [pipeline] package is the main entry point for most uses:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    NInput: 3, NHidden: 2, NOutput: 1,
//	})
package pkg
