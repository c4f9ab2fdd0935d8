// Package topology describes which storage locations physically exist in
// each warehouse building.
//
// # Overview
//
// Every building is a [Building] rule set: a list of location types, each
// with default aisle, bay, level and slot ranges, followed by two ordered
// tables:
//
//   - [Override] entries replace the bay range, levels or slots for the
//     aisles they select. They apply in declaration order, so the last
//     matching override wins for each field.
//   - [Exclusion] entries remove individual coordinates (a floor tunnel, a
//     missing aisle, a column). Each exclusion is checked at the [Depth] of
//     its innermost selector, which lets the enumerator prune a whole aisle
//     or bay before descending into it.
//
// Inner bounds are a pure function of the outer coordinates:
//
//	b, _ := topology.Default().Lookup("AF")
//	bd, ok := b.Bounds("F", 0) // bays 1-7, slots A-B
//
// No state carries over between calls, so the rules can be tested without
// running an enumeration.
//
// # Rule Files
//
// The rules live in TOML. [Default] decodes the embedded buildings.toml;
// [Load] and [LoadFile] accept replacement files with the same schema:
//
//	[[building]]
//	code = "TLR"
//	family = "level"
//
//	  [[building.type]]
//	  aisles = "1-70"
//	  bays = "1-40"
//	  levels = "A-E"
//	  slots = "1-2"
//
//	  [[building.exclude]]
//	  bays = "20,33"
//	  levels = "A-B"
//
// Unknown keys, unknown type references and impossible ranges are rejected
// with [ErrInvalidTopology].
package topology
