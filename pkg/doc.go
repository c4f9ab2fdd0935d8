// Package pkg provides the core libraries for labeller, a warehouse location
// label generator.
//
// # Overview
//
// A building's storage locations are described by a topology rule set:
// location types with default aisle and bay bounds, per-aisle overrides and
// point exclusions. The libraries turn those rules into label text, text
// grids and printable barcode sheets.
//
//  1. [topology] - Building rule sets, loaded from embedded or user TOML
//  2. [enumerate] - Depth-first label enumeration and regex filtering
//  3. [label] - Label formatting and column layout
//  4. [render] - Code 39 SVG images and HTML barcode sheets
//  5. [cache] - Barcode image storage (directory, Redis, or none)
//  6. [pipeline] - Orchestration (validate → enumerate → output)
//
// # Architecture
//
//	buildings.toml
//	     ↓
//	[topology] Registry → Building
//	     ↓
//	[enumerate] Enumerator (lazy, ordered, pattern filtered)
//	     ↓
//	[label] Collection (rows of N columns)
//	     ↓
//	text grid  or  [render/barcode] + [cache] + [render/sheet]
//
// # Quick Start
//
//	import "github.com/ThomasStivers/labeller/pkg/pipeline"
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Building:   "AF",
//	    Expression: "^402-F-00-",
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(result.Output)
//
// [topology]: github.com/ThomasStivers/labeller/pkg/topology
// [enumerate]: github.com/ThomasStivers/labeller/pkg/enumerate
// [label]: github.com/ThomasStivers/labeller/pkg/label
// [render]: github.com/ThomasStivers/labeller/pkg/render
// [render/barcode]: github.com/ThomasStivers/labeller/pkg/render/barcode
// [render/sheet]: github.com/ThomasStivers/labeller/pkg/render/sheet
// [cache]: github.com/ThomasStivers/labeller/pkg/cache
// [pipeline]: github.com/ThomasStivers/labeller/pkg/pipeline
package pkg
