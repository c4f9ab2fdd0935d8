package label

import (
	"fmt"
	"strings"
	"testing"

	apperrors "github.com/ThomasStivers/labeller/pkg/errors"
)

func TestLabelString(t *testing.T) {
	tests := []struct {
		name  string
		label Label
		want  string
	}{
		{
			name:  "level building",
			label: Label{Building: "TLR", Aisle: 1, Bay: 1, Level: "A", Slot: "1"},
			want:  "TLR-01-01-A-01",
		},
		{
			name:  "level building two digit fields",
			label: Label{Building: "TLR", Aisle: 70, Bay: 25, Level: "H", Slot: "2"},
			want:  "TLR-70-25-H-02",
		},
		{
			name:  "typed building",
			label: Label{Building: "402", Type: "F", Aisle: 0, Bay: 7, Slot: "B"},
			want:  "402-F-00-07-B",
		},
		{
			name:  "typed building numeric slot is not padded",
			label: Label{Building: "220", Type: "B", Aisle: 3, Bay: 12, Slot: "1"},
			want:  "220-B-03-12-1",
		},
		{
			name:  "custom separator",
			label: Label{Building: "TLR", Aisle: 2, Bay: 33, Level: "C", Slot: "1", Separator: "."},
			want:  "TLR.02.33.C.01",
		},
		{
			name:  "letter slot on level building",
			label: Label{Building: "TLR", Aisle: 5, Bay: 6, Level: "B", Slot: "X"},
			want:  "TLR-05-06-B-X",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.label.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLabelStringIsPure(t *testing.T) {
	l := Label{Building: "225", Type: "R", Aisle: 9, Bay: 60, Slot: "H"}
	if l.String() != l.String() {
		t.Error("String() should be deterministic")
	}
	copied := l
	copied.Separator = "_"
	if l.String() != "225-R-09-60-H" {
		t.Errorf("copy mutated original: %s", l.String())
	}
}

func TestStrings(t *testing.T) {
	labels := []Label{
		{Building: "TLR", Aisle: 1, Bay: 1, Level: "A", Slot: "1"},
		{Building: "TLR", Aisle: 1, Bay: 1, Level: "A", Slot: "2"},
	}
	got := strings.Join(Strings(labels), " ")
	if got != "TLR-01-01-A-01 TLR-01-01-A-02" {
		t.Errorf("Strings() = %q", got)
	}
}

func makeLabels(n int) []Label {
	labels := make([]Label, n)
	for i := range labels {
		labels[i] = Label{Building: "TLR", Aisle: 1, Bay: i + 1, Level: "A", Slot: "1"}
	}
	return labels
}

func TestNewCollectionRejectsColumns(t *testing.T) {
	for _, columns := range []int{0, -1} {
		_, err := NewCollection(makeLabels(3), columns)
		if err == nil {
			t.Fatalf("NewCollection(columns=%d) should fail", columns)
		}
		if !apperrors.Is(err, apperrors.ErrCodeInvalidColumns) {
			t.Errorf("unexpected error code: %v", err)
		}
	}
}

func TestCollectionRows(t *testing.T) {
	for _, n := range []int{0, 1, 5, 6, 7, 12, 13, 100} {
		for _, columns := range []int{1, 2, 6, 7, 150} {
			t.Run(fmt.Sprintf("n=%d/c=%d", n, columns), func(t *testing.T) {
				labels := makeLabels(n)
				c, err := NewCollection(labels, columns)
				if err != nil {
					t.Fatalf("NewCollection: %v", err)
				}

				lines := c.Lines()
				wantLines := (n + columns - 1) / columns
				if len(lines) != wantLines {
					t.Fatalf("got %d lines, want %d", len(lines), wantLines)
				}

				var flat []string
				for i, line := range lines {
					entries := strings.Split(line, ",")
					if i < len(lines)-1 && len(entries) != columns {
						t.Errorf("line %d has %d entries, want %d", i, len(entries), columns)
					}
					flat = append(flat, entries...)
				}
				if n > 0 {
					last := n % columns
					if last == 0 {
						last = columns
					}
					if got := len(strings.Split(lines[len(lines)-1], ",")); got != last {
						t.Errorf("last line has %d entries, want %d", got, last)
					}
				}

				want := Strings(labels)
				if strings.Join(flat, "|") != strings.Join(want, "|") {
					t.Error("concatenated lines do not reproduce enumeration order")
				}
			})
		}
	}
}

func TestCollectionIsIndependentCopy(t *testing.T) {
	labels := makeLabels(3)
	c, err := NewCollection(labels, 2)
	if err != nil {
		t.Fatal(err)
	}
	labels[0].Bay = 99
	if c.Labels()[0].Bay != 1 {
		t.Error("collection should not alias the input slice")
	}

	rows := c.Rows()
	rows[0][0].Bay = 42
	if c.Labels()[0].Bay != 1 {
		t.Error("Rows should not expose internal storage")
	}
}

func TestCollectionWriteTo(t *testing.T) {
	c, _ := NewCollection(makeLabels(3), 2)
	var sb strings.Builder
	n, err := c.WriteTo(&sb)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	want := "TLR-01-01-A-01,TLR-01-02-A-01\nTLR-01-03-A-01\n"
	if sb.String() != want {
		t.Errorf("WriteTo wrote %q, want %q", sb.String(), want)
	}
	if int(n) != len(want) {
		t.Errorf("WriteTo returned %d, want %d", n, len(want))
	}

	empty, _ := NewCollection(nil, 6)
	sb.Reset()
	if _, err := empty.WriteTo(&sb); err != nil || sb.Len() != 0 {
		t.Errorf("empty collection wrote %q (err %v)", sb.String(), err)
	}
}
