// Package enumerate walks a building's topology rules and produces every
// valid location label in a fixed order.
//
// Traversal is nested: location type (in declaration order), then aisle,
// bay, level and slot, each ascending. At every depth the rule set is asked
// for the bounds of the next dimension given the outer coordinates, and
// exclusions declared for that depth are checked before going deeper, so an
// excluded branch never produces a [label.Label].
//
// An optional [Matcher] restricts the output to labels whose rendered text
// it accepts. Matching never changes the traversal order:
//
//	pat, err := enumerate.CompilePattern("tlr-01-20")
//	if err != nil {
//	    return err // INVALID_PATTERN, before any traversal
//	}
//	labels := enumerate.New(nil).Enumerate("TLR", pat)
//
// Unknown buildings produce an empty result rather than an error; callers
// that want to warn can check [topology.Registry.Lookup] first.
package enumerate
