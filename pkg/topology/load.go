package topology

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

//go:embed buildings.toml
var defaultRules []byte

// Registry holds the rule sets of every known building.
// It is immutable after [Load] and safe for concurrent use.
type Registry struct {
	buildings []*Building
	index     map[string]*Building
}

type ruleFile struct {
	Buildings []*Building `toml:"building"`
}

// Default returns the registry built from the embedded building rules.
// It panics if the embedded rules are invalid, which the package tests
// rule out.
var Default = sync.OnceValue(func() *Registry {
	r, err := Load(bytes.NewReader(defaultRules))
	if err != nil {
		panic(fmt.Sprintf("topology: embedded rules: %v", err))
	}
	return r
})

// LoadFile reads building rules from a TOML file.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Load decodes and validates building rules. Unknown keys are rejected so
// that a misspelled rule cannot be silently ignored.
func Load(r io.Reader) (*Registry, error) {
	var file ruleFile
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys: %s", ErrInvalidTopology, strings.Join(keys, ", "))
	}

	reg := &Registry{index: make(map[string]*Building)}
	for _, b := range file.Buildings {
		if err := b.compile(); err != nil {
			return nil, fmt.Errorf("%w: building %q: %v", ErrInvalidTopology, b.Code, err)
		}
		for _, name := range b.Names() {
			key := normalize(name)
			if other, dup := reg.index[key]; dup {
				return nil, fmt.Errorf("%w: name %q used by %q and %q", ErrInvalidTopology, name, other.Code, b.Code)
			}
			reg.index[key] = b
		}
		reg.buildings = append(reg.buildings, b)
	}
	return reg, nil
}

// Lookup finds a building by code or alias, ignoring case.
func (r *Registry) Lookup(name string) (*Building, bool) {
	b, ok := r.index[normalize(name)]
	return b, ok
}

// Get is Lookup returning [ErrUnknownBuilding] for unknown names.
func (r *Registry) Get(name string) (*Building, error) {
	b, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuilding, name)
	}
	return b, nil
}

// Buildings returns the buildings in declaration order.
func (r *Registry) Buildings() []*Building {
	return slices.Clone(r.buildings)
}

// Names returns every code and alias, in declaration order.
func (r *Registry) Names() []string {
	var names []string
	for _, b := range r.buildings {
		names = append(names, b.Names()...)
	}
	return names
}

// compile validates the decoded rules and indexes overrides and exclusions
// by location type.
func (b *Building) compile() error {
	if strings.TrimSpace(b.Code) == "" {
		return fmt.Errorf("code is required")
	}
	switch b.Family {
	case FamilyLevel:
		if len(b.Types) != 1 || b.Types[0].Code != "" {
			return fmt.Errorf("level buildings need exactly one type without a code")
		}
	case FamilyTyped:
	default:
		return fmt.Errorf("unknown family %q", b.Family)
	}

	b.types = make(map[string]*compiledType, len(b.Types))
	for _, t := range b.Types {
		if err := b.checkType(t); err != nil {
			return err
		}
		if _, dup := b.types[t.Code]; dup {
			return fmt.Errorf("duplicate type %q", t.Code)
		}
		b.types[t.Code] = &compiledType{LocationType: t}
	}

	for i, o := range b.Overrides {
		if err := b.checkTypes(o.Types); err != nil {
			return fmt.Errorf("override %d: %w", i+1, err)
		}
		if (o.MinBay != nil && *o.MinBay < 0) || (o.MaxBay != nil && *o.MaxBay < 0) {
			return fmt.Errorf("override %d: bays must not be negative", i+1)
		}
		if len(o.Levels) > 0 && b.Family != FamilyLevel {
			return fmt.Errorf("override %d: levels only apply to level buildings", i+1)
		}
		for _, t := range b.Types {
			if selects(o.Types, t.Code) {
				ct := b.types[t.Code]
				ct.overrides = append(ct.overrides, o)
			}
		}
	}

	for i, e := range b.Exclusions {
		if err := b.checkTypes(e.Types); err != nil {
			return fmt.Errorf("exclusion %d: %w", i+1, err)
		}
		if len(e.Levels) > 0 && b.Family != FamilyLevel {
			return fmt.Errorf("exclusion %d: levels only apply to level buildings", i+1)
		}
		d := e.Depth()
		for _, t := range b.Types {
			if selects(e.Types, t.Code) {
				ct := b.types[t.Code]
				ct.exclusions[d] = append(ct.exclusions[d], e)
			}
		}
	}
	return nil
}

func (b *Building) checkType(t LocationType) error {
	if b.Family == FamilyTyped && len(t.Code) != 1 {
		return fmt.Errorf("type code %q must be a single character", t.Code)
	}
	if t.Aisles.Lo < 0 || t.Bays.Lo < 0 {
		return fmt.Errorf("type %q: aisles and bays must not be negative", t.Code)
	}
	if len(t.Slots) == 0 {
		return fmt.Errorf("type %q: slots are required", t.Code)
	}
	if b.Family == FamilyLevel && len(t.Levels) == 0 {
		return fmt.Errorf("levels are required")
	}
	if b.Family == FamilyTyped && len(t.Levels) > 0 {
		return fmt.Errorf("type %q: levels only apply to level buildings", t.Code)
	}
	return nil
}

func (b *Building) checkTypes(codes []string) error {
	for _, code := range codes {
		if _, ok := b.types[code]; !ok {
			return fmt.Errorf("unknown type %q", code)
		}
	}
	return nil
}
