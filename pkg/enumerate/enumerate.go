package enumerate

import (
	"iter"
	"slices"

	"github.com/ThomasStivers/labeller/pkg/label"
	"github.com/ThomasStivers/labeller/pkg/topology"
)

// Enumerator produces labels from a topology registry. It holds no
// mutable state and is safe for concurrent use.
type Enumerator struct {
	reg       *topology.Registry
	separator string
}

// Option configures an Enumerator.
type Option func(*Enumerator)

// WithSeparator sets the separator written between label fields.
// An empty separator keeps [label.DefaultSeparator].
func WithSeparator(sep string) Option {
	return func(e *Enumerator) { e.separator = sep }
}

// New returns an enumerator over reg. A nil registry uses the embedded
// building rules from [topology.Default].
func New(reg *topology.Registry, opts ...Option) *Enumerator {
	if reg == nil {
		reg = topology.Default()
	}
	e := &Enumerator{reg: reg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the rules the enumerator walks.
func (e *Enumerator) Registry() *topology.Registry { return e.reg }

// All returns a lazy sequence of the labels of building accepted by m.
// The sequence can be ranged over more than once; each pass walks the
// rules again. Unknown buildings yield nothing.
func (e *Enumerator) All(building string, m Matcher) iter.Seq[label.Label] {
	return func(yield func(label.Label) bool) {
		b, ok := e.reg.Lookup(building)
		if !ok {
			return
		}
		e.walk(b, m, yield)
	}
}

// Enumerate collects All into a fresh slice.
func (e *Enumerator) Enumerate(building string, m Matcher) []label.Label {
	return slices.Collect(e.All(building, m))
}

// Count returns the number of labels All would yield.
func (e *Enumerator) Count(building string, m Matcher) int {
	n := 0
	for range e.All(building, m) {
		n++
	}
	return n
}

func (e *Enumerator) walk(b *topology.Building, m Matcher, yield func(label.Label) bool) bool {
	for _, t := range b.Types {
		if b.ExcludedAt(topology.DepthType, topology.Point{Type: t.Code}) {
			continue
		}
		for aisle := t.Aisles.Lo; aisle <= t.Aisles.Hi; aisle++ {
			p := topology.Point{Type: t.Code, Aisle: aisle}
			if b.ExcludedAt(topology.DepthAisle, p) {
				continue
			}
			bd, ok := b.Bounds(t.Code, aisle)
			if !ok {
				continue
			}
			levels := bd.Levels
			if len(levels) == 0 {
				levels = topology.Values{""}
			}
			for bay := bd.MinBay; bay <= bd.MaxBay; bay++ {
				p := topology.Point{Type: t.Code, Aisle: aisle, Bay: bay}
				if b.ExcludedAt(topology.DepthBay, p) {
					continue
				}
				for _, level := range levels {
					p.Level, p.Slot = level, ""
					if b.ExcludedAt(topology.DepthLevel, p) {
						continue
					}
					for _, slot := range bd.Slots {
						p.Slot = slot
						if b.ExcludedAt(topology.DepthSlot, p) {
							continue
						}
						l := label.Label{
							Building:  b.Code,
							Type:      t.Code,
							Aisle:     aisle,
							Bay:       bay,
							Level:     level,
							Slot:      slot,
							Separator: e.separator,
						}
						if m != nil && !m.Match(l.String()) {
							continue
						}
						if !yield(l) {
							return false
						}
					}
				}
			}
		}
	}
	return true
}
