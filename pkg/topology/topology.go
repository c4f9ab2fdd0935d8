package topology

import (
	"errors"
	"slices"
	"strings"
)

var (
	// ErrUnknownBuilding is returned by [Registry.Get] when no building has
	// the requested code or alias.
	ErrUnknownBuilding = errors.New("unknown building")

	// ErrInvalidTopology is returned by [Load] when a rule file is
	// structurally valid TOML but describes an impossible topology.
	ErrInvalidTopology = errors.New("invalid topology")
)

// Family selects the label template a building uses.
type Family string

const (
	// FamilyLevel buildings address locations by aisle, bay, level and a
	// numeric slot (BUILDING-AA-BB-L-SS).
	FamilyLevel Family = "level"
	// FamilyTyped buildings address locations by location type, aisle, bay
	// and slot (BUILDING-TYPE-AA-BB-S).
	FamilyTyped Family = "typed"
)

// Class groups location types that share physical rules.
type Class string

const (
	ClassPallet Class = "pallet" // floor and rack locations
	ClassBox    Class = "box"    // shelf and mezzanine locations
)

// Depth identifies a dimension of the traversal, outermost first.
type Depth int

const (
	DepthType Depth = iota
	DepthAisle
	DepthBay
	DepthLevel
	DepthSlot
)

// Building is the topology rule set of one building: its location types
// with their default bounds, ordered bound overrides, and ordered point
// exclusions. A Building returned by [Load] is immutable.
type Building struct {
	Code       string         `toml:"code"`    // rendered into labels
	Name       string         `toml:"name"`    // human readable name
	Aliases    []string       `toml:"aliases"` // alternative lookup names
	Family     Family         `toml:"family"`
	Types      []LocationType `toml:"type"`
	Overrides  []Override     `toml:"override"`
	Exclusions []Exclusion    `toml:"exclude"`

	types map[string]*compiledType
}

// LocationType holds the default bounds of one location type. Level
// buildings have exactly one type with an empty code.
type LocationType struct {
	Code   string `toml:"code"`
	Name   string `toml:"name"`
	Class  Class  `toml:"class"`
	Aisles Span   `toml:"aisles"`
	Bays   Span   `toml:"bays"`
	Levels Values `toml:"levels"`
	Slots  Values `toml:"slots"`
}

// Override replaces bounds for the aisles it selects. Unset fields keep the
// value resolved so far; overrides apply in declaration order, so a later
// override wins over an earlier one.
type Override struct {
	Note   string   `toml:"note"`
	Types  []string `toml:"types"`  // empty selects every type
	Aisles IntSet   `toml:"aisles"` // empty selects every aisle
	MinBay *int     `toml:"min_bay"`
	MaxBay *int     `toml:"max_bay"`
	Levels Values   `toml:"levels"`
	Slots  Values   `toml:"slots"`
}

// Exclusion removes every coordinate matching all of its non-empty
// selectors. It is checked at the depth of its innermost selector.
type Exclusion struct {
	Note   string   `toml:"note"`
	Types  []string `toml:"types"`
	Aisles IntSet   `toml:"aisles"`
	Bays   IntSet   `toml:"bays"`
	Levels Values   `toml:"levels"`
	Slots  Values   `toml:"slots"`
}

// Depth returns the traversal depth at which the exclusion applies.
func (e Exclusion) Depth() Depth {
	switch {
	case len(e.Slots) > 0:
		return DepthSlot
	case len(e.Levels) > 0:
		return DepthLevel
	case len(e.Bays) > 0:
		return DepthBay
	case len(e.Aisles) > 0:
		return DepthAisle
	default:
		return DepthType
	}
}

// Matches reports whether p satisfies every selector of the exclusion.
func (e Exclusion) Matches(p Point) bool {
	return selects(e.Types, p.Type) &&
		e.Aisles.Matches(p.Aisle) &&
		e.Bays.Matches(p.Bay) &&
		e.Levels.Matches(p.Level) &&
		e.Slots.Matches(p.Slot)
}

// Point is a candidate coordinate. Fields deeper than the depth being
// checked are ignored.
type Point struct {
	Type  string
	Aisle int
	Bay   int
	Level string
	Slot  string
}

// Bounds are the resolved inner ranges for one (type, aisle).
type Bounds struct {
	MinBay int
	MaxBay int
	Levels Values // empty for typed buildings
	Slots  Values
}

type compiledType struct {
	LocationType
	overrides  []Override
	exclusions [DepthSlot + 1][]Exclusion
}

// Type returns the location type with the given code.
func (b *Building) Type(code string) (LocationType, bool) {
	ct, ok := b.types[code]
	if !ok {
		return LocationType{}, false
	}
	return ct.LocationType, true
}

// Names returns the building code followed by its aliases.
func (b *Building) Names() []string {
	return append([]string{b.Code}, b.Aliases...)
}

// Bounds resolves the bay range, levels and slots for an aisle of a type.
// ok is false when the type is unknown or the aisle is outside the type's
// aisle range. The result does not depend on any previous call.
func (b *Building) Bounds(typ string, aisle int) (bd Bounds, ok bool) {
	ct, found := b.types[typ]
	if !found || !ct.Aisles.Contains(aisle) {
		return Bounds{}, false
	}

	bd = Bounds{
		MinBay: ct.Bays.Lo,
		MaxBay: ct.Bays.Hi,
		Levels: ct.Levels,
		Slots:  ct.Slots,
	}
	for _, o := range ct.overrides {
		if !o.Aisles.Matches(aisle) {
			continue
		}
		if o.MinBay != nil {
			bd.MinBay = *o.MinBay
		}
		if o.MaxBay != nil {
			bd.MaxBay = *o.MaxBay
		}
		if len(o.Levels) > 0 {
			bd.Levels = o.Levels
		}
		if len(o.Slots) > 0 {
			bd.Slots = o.Slots
		}
	}
	bd.Levels = slices.Clone(bd.Levels)
	bd.Slots = slices.Clone(bd.Slots)
	return bd, true
}

// ExcludedAt reports whether an exclusion declared for depth d removes p.
// The enumerator calls it once per depth so excluded branches are pruned
// before any deeper work is done.
func (b *Building) ExcludedAt(d Depth, p Point) bool {
	ct, ok := b.types[p.Type]
	if !ok || d < DepthType || d > DepthSlot {
		return false
	}
	for _, e := range ct.exclusions[d] {
		if e.Matches(p) {
			return true
		}
	}
	return false
}

// Excluded reports whether any exclusion removes the fully specified point.
func (b *Building) Excluded(p Point) bool {
	for d := DepthType; d <= DepthSlot; d++ {
		if b.ExcludedAt(d, p) {
			return true
		}
	}
	return false
}

// Valid reports whether p is a location that enumeration would emit.
func (b *Building) Valid(p Point) bool {
	bd, ok := b.Bounds(p.Type, p.Aisle)
	if !ok || p.Bay < bd.MinBay || p.Bay > bd.MaxBay {
		return false
	}
	if len(bd.Levels) > 0 && !bd.Levels.Contains(p.Level) {
		return false
	}
	if len(bd.Levels) == 0 && p.Level != "" {
		return false
	}
	return bd.Slots.Contains(p.Slot) && !b.Excluded(p)
}

func selects(types []string, typ string) bool {
	return len(types) == 0 || slices.Contains(types, typ)
}

// normalize canonicalizes a building name for lookup.
func normalize(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
