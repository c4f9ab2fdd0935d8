package label

import (
	"io"
	"slices"
	"strings"

	apperrors "github.com/ThomasStivers/labeller/pkg/errors"
)

// DefaultColumns is the grid width used by the CLI when none is given.
const DefaultColumns = 6

// Collection is an ordered list of labels laid out in a fixed number of
// columns. It is safe for concurrent reads.
type Collection struct {
	labels  []Label
	columns int
}

// NewCollection copies labels into a collection with the given width.
// It fails with INVALID_COLUMNS when columns < 1.
func NewCollection(labels []Label, columns int) (*Collection, error) {
	if err := apperrors.ValidateColumns(columns); err != nil {
		return nil, err
	}
	return &Collection{labels: slices.Clone(labels), columns: columns}, nil
}

// Len returns the number of labels.
func (c *Collection) Len() int { return len(c.labels) }

// Columns returns the grid width.
func (c *Collection) Columns() int { return c.columns }

// Labels returns a copy of the labels in enumeration order.
func (c *Collection) Labels() []Label { return slices.Clone(c.labels) }

// Rows splits the labels into consecutive groups of Columns entries.
// The last row holds the remainder.
func (c *Collection) Rows() [][]Label {
	if len(c.labels) == 0 {
		return nil
	}
	rows := make([][]Label, 0, (len(c.labels)+c.columns-1)/c.columns)
	for chunk := range slices.Chunk(c.labels, c.columns) {
		rows = append(rows, slices.Clone(chunk))
	}
	return rows
}

// Lines renders each row as comma-separated label text.
func (c *Collection) Lines() []string {
	rows := c.Rows()
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = strings.Join(Strings(row), ",")
	}
	return lines
}

// String joins Lines with newlines, without a trailing newline.
func (c *Collection) String() string {
	return strings.Join(c.Lines(), "\n")
}

// WriteTo writes the text grid followed by a newline. An empty collection
// writes nothing.
func (c *Collection) WriteTo(w io.Writer) (int64, error) {
	if len(c.labels) == 0 {
		return 0, nil
	}
	n, err := io.WriteString(w, c.String()+"\n")
	return int64(n), err
}
