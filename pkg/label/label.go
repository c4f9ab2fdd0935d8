package label

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultSeparator joins label fields when Label.Separator is empty.
const DefaultSeparator = "-"

// Label is one storage location. It is a plain value; copies are
// independent and nothing mutates a Label after the enumerator builds it.
type Label struct {
	Building  string // rendered building code, e.g. "TLR" or "402"
	Type      string // location type code, typed buildings only
	Aisle     int
	Bay       int
	Level     string // single letter, level buildings only
	Slot      string // digits or a letter depending on the building
	Separator string // display only; empty means DefaultSeparator
}

// Typed reports whether the label uses the BUILDING-TYPE-AA-BB-S template.
func (l Label) Typed() bool { return l.Type != "" }

// String renders the canonical label text.
func (l Label) String() string {
	sep := l.Separator
	if sep == "" {
		sep = DefaultSeparator
	}

	var b strings.Builder
	b.Grow(len(l.Building) + 16)
	b.WriteString(l.Building)
	if l.Typed() {
		fmt.Fprintf(&b, "%s%s%s%02d%s%02d%s%s", sep, l.Type, sep, l.Aisle, sep, l.Bay, sep, l.Slot)
		return b.String()
	}
	fmt.Fprintf(&b, "%s%02d%s%02d%s%s%s%s", sep, l.Aisle, sep, l.Bay, sep, l.Level, sep, padSlot(l.Slot))
	return b.String()
}

// padSlot zero pads numeric slots to two digits.
func padSlot(slot string) string {
	n, err := strconv.Atoi(slot)
	if err != nil {
		return slot
	}
	return fmt.Sprintf("%02d", n)
}

// Strings renders every label in order.
func Strings(labels []Label) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = l.String()
	}
	return out
}
