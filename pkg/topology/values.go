package topology

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// maxExpansion caps how many tokens a single Values range may produce.
const maxExpansion = 1000

// Span is an inclusive integer range written as "lo-hi" or "n".
type Span struct {
	Lo, Hi int
}

// Contains reports whether n lies within the span.
func (s Span) Contains(n int) bool { return n >= s.Lo && n <= s.Hi }

// Len returns the number of integers in the span.
func (s Span) Len() int {
	if s.Hi < s.Lo {
		return 0
	}
	return s.Hi - s.Lo + 1
}

func (s Span) String() string {
	if s.Lo == s.Hi {
		return strconv.Itoa(s.Lo)
	}
	return fmt.Sprintf("%d-%d", s.Lo, s.Hi)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Span) UnmarshalText(text []byte) error {
	span, err := parseSpan(string(text))
	if err != nil {
		return err
	}
	*s = span
	return nil
}

func parseSpan(text string) (Span, error) {
	text = strings.TrimSpace(text)
	lo, hi, isRange := strings.Cut(text, "-")
	a, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return Span{}, fmt.Errorf("invalid range %q", text)
	}
	if !isRange {
		return Span{Lo: a, Hi: a}, nil
	}
	b, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return Span{}, fmt.Errorf("invalid range %q", text)
	}
	if b < a {
		return Span{}, fmt.Errorf("invalid range %q: end before start", text)
	}
	return Span{Lo: a, Hi: b}, nil
}

// IntSet is a union of spans written as "1,22" or "11,15-16".
// An empty set used as a selector matches every value.
type IntSet []Span

// Contains reports whether n is in any span of the set.
func (s IntSet) Contains(n int) bool {
	for _, sp := range s {
		if sp.Contains(n) {
			return true
		}
	}
	return false
}

// Matches is Contains, except that an empty set matches everything.
func (s IntSet) Matches(n int) bool { return len(s) == 0 || s.Contains(n) }

func (s IntSet) String() string {
	parts := make([]string, len(s))
	for i, sp := range s {
		parts[i] = sp.String()
	}
	return strings.Join(parts, ",")
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *IntSet) UnmarshalText(text []byte) error {
	var set IntSet
	for _, item := range splitList(string(text)) {
		sp, err := parseSpan(item)
		if err != nil {
			return err
		}
		set = append(set, sp)
	}
	*s = set
	return nil
}

// Values is an ordered list of level or slot tokens written as "A-E",
// "1-2" or "A,C". Ranges expand in ascending order.
type Values []string

// Contains reports whether tok is one of the values.
func (v Values) Contains(tok string) bool { return slices.Contains(v, tok) }

// Matches is Contains, except that an empty list matches everything.
func (v Values) Matches(tok string) bool { return len(v) == 0 || v.Contains(tok) }

func (v Values) String() string { return strings.Join(v, ",") }

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Values) UnmarshalText(text []byte) error {
	vals, err := ParseValues(string(text))
	if err != nil {
		return err
	}
	*v = vals
	return nil
}

// ParseValues expands a comma-separated list of tokens and token ranges.
// Ranges must join two integers ("1-4") or two single letters ("A-H").
func ParseValues(text string) (Values, error) {
	var out Values
	for _, item := range splitList(text) {
		lo, hi, isRange := strings.Cut(item, "-")
		if !isRange {
			out = append(out, item)
			continue
		}
		expanded, err := expandRange(strings.TrimSpace(lo), strings.TrimSpace(hi))
		if err != nil {
			return nil, fmt.Errorf("invalid values %q: %w", item, err)
		}
		out = append(out, expanded...)
	}
	if len(out) > maxExpansion {
		return nil, fmt.Errorf("invalid values %q: more than %d entries", text, maxExpansion)
	}
	return out, nil
}

func expandRange(lo, hi string) (Values, error) {
	a, errA := strconv.Atoi(lo)
	b, errB := strconv.Atoi(hi)
	if errA == nil && errB == nil {
		if b < a {
			return nil, fmt.Errorf("end before start")
		}
		if b-a >= maxExpansion {
			return nil, fmt.Errorf("range too large")
		}
		out := make(Values, 0, b-a+1)
		for n := a; n <= b; n++ {
			out = append(out, strconv.Itoa(n))
		}
		return out, nil
	}
	if len(lo) == 1 && len(hi) == 1 && sameCaseLetters(lo[0], hi[0]) {
		if hi[0] < lo[0] {
			return nil, fmt.Errorf("end before start")
		}
		out := make(Values, 0, hi[0]-lo[0]+1)
		for c := lo[0]; c <= hi[0]; c++ {
			out = append(out, string(c))
		}
		return out, nil
	}
	return nil, fmt.Errorf("range must join two numbers or two letters")
}

func sameCaseLetters(a, b byte) bool {
	upper := func(c byte) bool { return c >= 'A' && c <= 'Z' }
	lower := func(c byte) bool { return c >= 'a' && c <= 'z' }
	return (upper(a) && upper(b)) || (lower(a) && lower(b))
}

func splitList(text string) []string {
	var items []string
	for _, item := range strings.Split(text, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
