// Package sheet assembles the printable HTML page of barcode images.
//
// The page is a table with one image per label and a fixed number of cells
// per row. Images are referenced relative to the page, so the page and its
// image directory can be moved or served together.
package sheet

import (
	"html/template"
	"io"
	"net/url"
	"path"

	"github.com/ThomasStivers/labeller/pkg/label"
)

// DefaultImageDir is the image directory, relative to the page.
const DefaultImageDir = "barcodes"

// Page describes one sheet.
type Page struct {
	Building string            // shown in the title and heading
	Labels   *label.Collection // labels and grid width
	ImageDir string            // image URL prefix; DefaultImageDir when empty
}

// Cell is one image of the rendered table.
type Cell struct {
	Text string
	Src  string
}

// ImagePath returns the URL of a label's image inside dir.
func ImagePath(dir, text string) string {
	if dir == "" {
		dir = DefaultImageDir
	}
	return path.Join(dir, url.PathEscape(text)+".svg")
}

var page = template.Must(template.New("sheet").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Barcode Labels for {{.Building}}</title>
<style>
body { font-family: sans-serif; }
table { border-collapse: collapse; }
td { padding: 0; }
img { width: 3.5in; height: 1.75in; }
@media print { h1 { display: none; } }
</style>
</head>
<body>
<h1>Barcode Labels for {{.Building}}</h1>
<table>
{{- range .Rows}}
<tr>
{{- range .}}
<td><img src="{{.Src}}" alt="{{.Text}}"></td>
{{- end}}
</tr>
{{- end}}
</table>
</body>
</html>
`))

// Rows lays the page's labels out as table cells.
func (p Page) Rows() [][]Cell {
	if p.Labels == nil {
		return nil
	}
	var rows [][]Cell
	for _, row := range p.Labels.Rows() {
		cells := make([]Cell, len(row))
		for i, l := range row {
			text := l.String()
			cells[i] = Cell{Text: text, Src: ImagePath(p.ImageDir, text)}
		}
		rows = append(rows, cells)
	}
	return rows
}

// Render writes the HTML document for p.
func Render(w io.Writer, p Page) error {
	return page.Execute(w, struct {
		Building string
		Rows     [][]Cell
	}{p.Building, p.Rows()})
}
