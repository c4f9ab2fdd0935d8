package topology

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"
)

func mustLookup(t *testing.T, name string) *Building {
	t.Helper()
	b, ok := Default().Lookup(name)
	if !ok {
		t.Fatalf("building %q not found", name)
	}
	return b
}

func TestDefaultBuildings(t *testing.T) {
	reg := Default()

	var codes []string
	for _, b := range reg.Buildings() {
		codes = append(codes, b.Code)
	}
	if got := strings.Join(codes, ","); got != "TLR,402,225,220" {
		t.Errorf("building codes = %s", got)
	}

	tests := []struct {
		name     string
		wantCode string
		family   Family
	}{
		{"TLR", "TLR", FamilyLevel},
		{"tlr", "TLR", FamilyLevel},
		{"AF", "402", FamilyTyped},
		{" 402 ", "402", FamilyTyped},
		{"MC", "225", FamilyTyped},
		{"225", "225", FamilyTyped},
		{"BULK", "220", FamilyTyped},
		{"220", "220", FamilyTyped},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := reg.Lookup(tt.name)
			if !ok {
				t.Fatalf("Lookup(%q) failed", tt.name)
			}
			if b.Code != tt.wantCode || b.Family != tt.family {
				t.Errorf("Lookup(%q) = %s/%s, want %s/%s", tt.name, b.Code, b.Family, tt.wantCode, tt.family)
			}
		})
	}

	if _, ok := reg.Lookup("ZZZ"); ok {
		t.Error("Lookup(ZZZ) should fail")
	}
	if _, err := reg.Get("ZZZ"); !errors.Is(err, ErrUnknownBuilding) {
		t.Errorf("Get(ZZZ) error = %v, want ErrUnknownBuilding", err)
	}

	names := reg.Names()
	for _, want := range []string{"TLR", "402", "AF", "225", "MC", "220", "BULK"} {
		if !slices.Contains(names, want) {
			t.Errorf("Names() missing %s", want)
		}
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		building string
		typ      string
		aisle    int
		wantOK   bool
		minBay   int
		maxBay   int
		levels   string
		slots    string
	}{
		// TLR
		{"TLR", "", 1, true, 1, 32, "A,B,C,D,E", "1,2"},
		{"TLR", "", 2, true, 1, 32, "A,B,C,D,E", "1,2"},
		{"TLR", "", 3, true, 1, 40, "A,B,C,D,E", "1,2"},
		{"TLR", "", 49, true, 1, 40, "A,B,C,D,E", "1,2"},
		{"TLR", "", 50, true, 1, 25, "A,B,C,D,E,F,G,H", "1,2"},
		{"TLR", "", 70, true, 1, 25, "A,B,C,D,E,F,G,H", "1,2"},
		{"TLR", "", 0, false, 0, 0, "", ""},
		{"TLR", "", 71, false, 0, 0, "", ""},
		{"TLR", "F", 1, false, 0, 0, "", ""},

		// AF pallets
		{"AF", "F", 0, true, 1, 7, "", "A,B"},
		{"AF", "R", 0, true, 1, 7, "", "A,B,C,D,E,F,G,H"},
		{"AF", "F", 1, true, 0, 18, "", "A,B"},
		{"AF", "F", 7, true, 1, 14, "", "A,B"},
		{"AF", "F", 11, true, 5, 18, "", "A,B"},
		{"AF", "F", 13, true, 6, 18, "", "A,B"},
		{"AF", "F", 21, true, 1, 18, "", "A,B"},
		{"AF", "F", 22, true, 0, 18, "", "A,B,C,D"},
		{"AF", "R", 22, true, 0, 18, "", "A,B,C,D,E,F,G,H"},
		{"AF", "F", 23, true, 1, 3, "", "A,B"},
		{"AF", "F", 24, false, 0, 0, "", ""},

		// AF boxes
		{"AF", "S", 0, true, 1, 23, "", "A,B,C,D"},
		{"AF", "S", 1, true, 1, 24, "", "A,B,C,D,E,F"},
		{"AF", "S", 3, true, 4, 11, "", "A,B,C,D,E,F"},
		{"AF", "S", 16, true, 1, 11, "", "A,B,C,D,E,F"},
		{"AF", "M", 18, true, 1, 25, "", "A,B,C,D,E,F"},
		{"AF", "S", 19, true, 1, 12, "", "A,B,C,D,E,F"},
		{"AF", "S", 27, true, 1, 40, "", "A,B,C,D"},
		{"AF", "S", 28, true, 1, 40, "", "A,B,C,D,E,F"},
		{"AF", "M", 28, true, 1, 40, "", "A,B,C"},
		{"AF", "S", 29, false, 0, 0, "", ""},

		// MC
		{"MC", "D", 4, true, 1, 1, "", "A,B,C"},
		{"MC", "D", 3, false, 0, 0, "", ""},
		{"MC", "F", 1, true, 5, 46, "", "A,B"},
		{"MC", "F", 8, true, 5, 72, "", "A,B"},
		{"MC", "R", 10, true, 5, 72, "", "A,B,C,D,E,F,G,H"},
		{"MC", "R", 11, true, 1, 6, "", "A,B,C,D,E,F,G,H"},
		{"MC", "F", 72, true, 1, 6, "", "A,B"},
		{"MC", "U", 8, true, 5, 72, "", "A,B"},
		{"MC", "S", 22, true, 1, 18, "", "A,B,C,D,E,F"},
		{"MC", "S", 23, false, 0, 0, "", ""},
		{"MC", "F", 0, false, 0, 0, "", ""},
	}

	for _, tt := range tests {
		name := fmt.Sprintf("%s/%s/%02d", tt.building, tt.typ, tt.aisle)
		t.Run(name, func(t *testing.T) {
			b := mustLookup(t, tt.building)
			bd, ok := b.Bounds(tt.typ, tt.aisle)
			if ok != tt.wantOK {
				t.Fatalf("Bounds ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if bd.MinBay != tt.minBay || bd.MaxBay != tt.maxBay {
				t.Errorf("bays = %d-%d, want %d-%d", bd.MinBay, bd.MaxBay, tt.minBay, tt.maxBay)
			}
			if got := bd.Levels.String(); got != tt.levels {
				t.Errorf("levels = %q, want %q", got, tt.levels)
			}
			if got := bd.Slots.String(); got != tt.slots {
				t.Errorf("slots = %q, want %q", got, tt.slots)
			}
		})
	}
}

func TestBoundsAreIndependentOfCallOrder(t *testing.T) {
	b := mustLookup(t, "AF")

	first, _ := b.Bounds("F", 22)
	for aisle := 0; aisle <= 23; aisle++ {
		_, _ = b.Bounds("F", aisle)
		_, _ = b.Bounds("S", aisle)
	}
	again, _ := b.Bounds("F", 22)
	if first.MinBay != again.MinBay || first.MaxBay != again.MaxBay || !slices.Equal(first.Slots, again.Slots) {
		t.Errorf("Bounds changed between calls: %+v vs %+v", first, again)
	}

	// Aisle 23 follows 22 and must not inherit its four slots.
	next, _ := b.Bounds("F", 23)
	if next.Slots.String() != "A,B" {
		t.Errorf("aisle 23 slots = %s, want A,B", next.Slots)
	}
}

func TestBoundsReturnsCopies(t *testing.T) {
	b := mustLookup(t, "TLR")
	bd, _ := b.Bounds("", 5)
	bd.Levels[0] = "Z"
	bd.Slots[0] = "9"

	again, _ := b.Bounds("", 5)
	if again.Levels[0] != "A" || again.Slots[0] != "1" {
		t.Errorf("mutating returned bounds changed the rules: %+v", again)
	}
}

func TestExclusions(t *testing.T) {
	tests := []struct {
		building string
		depth    Depth
		point    Point
		want     bool
	}{
		{"TLR", DepthLevel, Point{Aisle: 1, Bay: 20, Level: "A"}, true},
		{"TLR", DepthLevel, Point{Aisle: 1, Bay: 20, Level: "B"}, true},
		{"TLR", DepthLevel, Point{Aisle: 1, Bay: 20, Level: "C"}, false},
		{"TLR", DepthLevel, Point{Aisle: 10, Bay: 33, Level: "A"}, true},
		{"TLR", DepthLevel, Point{Aisle: 10, Bay: 34, Level: "A"}, false},
		{"TLR", DepthBay, Point{Aisle: 1, Bay: 20}, false},

		{"AF", DepthBay, Point{Type: "F", Aisle: 3, Bay: 10}, true},
		{"AF", DepthBay, Point{Type: "R", Aisle: 3, Bay: 17}, true},
		{"AF", DepthBay, Point{Type: "R", Aisle: 22, Bay: 10}, true},
		{"AF", DepthBay, Point{Type: "S", Aisle: 3, Bay: 10}, false},
		{"AF", DepthBay, Point{Type: "S", Aisle: 3, Bay: 0}, true},
		{"AF", DepthAisle, Point{Type: "S", Aisle: 20}, true},
		{"AF", DepthAisle, Point{Type: "M", Aisle: 26}, true},
		{"AF", DepthAisle, Point{Type: "S", Aisle: 27}, false},
		{"AF", DepthAisle, Point{Type: "M", Aisle: 0}, true},
		{"AF", DepthAisle, Point{Type: "S", Aisle: 0}, false},
		{"AF", DepthAisle, Point{Type: "F", Aisle: 20}, false},

		{"MC", DepthBay, Point{Type: "F", Aisle: 9, Bay: 25}, true},
		{"MC", DepthBay, Point{Type: "R", Aisle: 9, Bay: 25}, false},
		{"MC", DepthAisle, Point{Type: "R", Aisle: 0}, true},
		{"MC", DepthBay, Point{Type: "S", Aisle: 1, Bay: 0}, true},
	}

	for _, tt := range tests {
		b := mustLookup(t, tt.building)
		if got := b.ExcludedAt(tt.depth, tt.point); got != tt.want {
			t.Errorf("%s ExcludedAt(%d, %+v) = %v, want %v", tt.building, tt.depth, tt.point, got, tt.want)
		}
	}
}

func TestExclusionDepth(t *testing.T) {
	tests := []struct {
		ex   Exclusion
		want Depth
	}{
		{Exclusion{Types: []string{"F"}}, DepthType},
		{Exclusion{Aisles: IntSet{{20, 26}}}, DepthAisle},
		{Exclusion{Aisles: IntSet{{0, 0}}, Bays: IntSet{{10, 10}}}, DepthBay},
		{Exclusion{Bays: IntSet{{20, 20}}, Levels: Values{"A"}}, DepthLevel},
		{Exclusion{Slots: Values{"C"}}, DepthSlot},
	}
	for _, tt := range tests {
		if got := tt.ex.Depth(); got != tt.want {
			t.Errorf("Depth(%+v) = %d, want %d", tt.ex, got, tt.want)
		}
	}
}

func TestValid(t *testing.T) {
	tlr := mustLookup(t, "TLR")
	af := mustLookup(t, "AF")

	tests := []struct {
		b     *Building
		point Point
		want  bool
	}{
		{tlr, Point{Aisle: 1, Bay: 1, Level: "A", Slot: "1"}, true},
		{tlr, Point{Aisle: 1, Bay: 20, Level: "A", Slot: "1"}, false},
		{tlr, Point{Aisle: 1, Bay: 20, Level: "C", Slot: "1"}, true},
		{tlr, Point{Aisle: 1, Bay: 33, Level: "C", Slot: "1"}, false},
		{tlr, Point{Aisle: 3, Bay: 1, Level: "F", Slot: "1"}, false},
		{tlr, Point{Aisle: 50, Bay: 1, Level: "H", Slot: "2"}, true},
		{tlr, Point{Aisle: 1, Bay: 1, Level: "A", Slot: "3"}, false},
		{tlr, Point{Aisle: 1, Bay: 1, Slot: "1"}, false},
		{af, Point{Type: "F", Aisle: 0, Bay: 7, Slot: "B"}, true},
		{af, Point{Type: "F", Aisle: 0, Bay: 8, Slot: "A"}, false},
		{af, Point{Type: "F", Aisle: 0, Bay: 1, Slot: "C"}, false},
		{af, Point{Type: "F", Aisle: 1, Bay: 0, Slot: "A"}, true},
		{af, Point{Type: "F", Aisle: 1, Bay: 0, Level: "A", Slot: "A"}, false},
		{af, Point{Type: "M", Aisle: 0, Bay: 1, Slot: "A"}, false},
		{af, Point{Type: "X", Aisle: 0, Bay: 1, Slot: "A"}, false},
	}
	for _, tt := range tests {
		if got := tt.b.Valid(tt.point); got != tt.want {
			t.Errorf("%s Valid(%+v) = %v, want %v", tt.b.Code, tt.point, got, tt.want)
		}
	}
}

func TestTypes(t *testing.T) {
	b := mustLookup(t, "MC")
	var codes []string
	for _, lt := range b.Types {
		codes = append(codes, lt.Code)
	}
	if got := strings.Join(codes, ""); got != "DFRSU" {
		t.Errorf("MC types = %s, want DFRSU", got)
	}

	lt, ok := b.Type("S")
	if !ok || lt.Class != ClassBox {
		t.Errorf("Type(S) = %+v, %v", lt, ok)
	}
	if _, ok := b.Type("Q"); ok {
		t.Error("Type(Q) should not exist")
	}

	bulk := mustLookup(t, "BULK")
	if len(bulk.Types) != 0 {
		t.Errorf("BULK should have no surveyed types, got %d", len(bulk.Types))
	}
}
