package enumerate

import (
	"regexp"

	"github.com/ThomasStivers/labeller/pkg/errors"
	"github.com/ThomasStivers/labeller/pkg/label"
)

// Matcher decides whether a rendered label belongs in the output.
type Matcher interface {
	Match(text string) bool
}

// MatcherFunc adapts a function to [Matcher].
type MatcherFunc func(text string) bool

// Match calls f(text).
func (f MatcherFunc) Match(text string) bool { return f(text) }

// Pattern is a compiled case-insensitive expression. It matches when the
// expression occurs anywhere in the label text. A nil *Pattern matches
// everything.
type Pattern struct {
	expr string
	re   *regexp.Regexp
}

// CompilePattern compiles expr once. An empty expression returns a nil
// pattern, which accepts every label. Syntax errors are reported with
// code INVALID_PATTERN.
func CompilePattern(expr string) (*Pattern, error) {
	if expr == "" {
		return nil, nil
	}
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPattern, err, "invalid expression %q", expr)
	}
	return &Pattern{expr: expr, re: re}, nil
}

// Match reports whether the expression occurs in text.
func (p *Pattern) Match(text string) bool {
	return p == nil || p.re.MatchString(text)
}

// String returns the expression as given to CompilePattern.
func (p *Pattern) String() string {
	if p == nil {
		return ""
	}
	return p.expr
}

// Filter returns the labels whose rendered text m accepts, in their
// original order. A nil matcher returns a copy of labels.
func Filter(labels []label.Label, m Matcher) []label.Label {
	out := make([]label.Label, 0, len(labels))
	for _, l := range labels {
		if m == nil || m.Match(l.String()) {
			out = append(out, l)
		}
	}
	return out
}
