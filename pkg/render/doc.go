// Package render groups the output renderers for location labels.
//
// # Overview
//
//   - [barcode] draws one Code 39 symbol with a human readable caption as
//     SVG, sized for 4x2 inch label stock.
//   - [sheet] lays labels out as an HTML page of image cells, one table row
//     per grid row, for printing onto label sheets.
//
// Both are pure: they write bytes and never touch the file system. Storing
// images is the job of the pipeline and its cache.
//
//	svg, err := barcode.RenderSVG("TLR-01-01-A-01")
//	err = sheet.Render(w, sheet.Page{Building: "TLR", Labels: c, ImageDir: "barcodes"})
//
// [barcode]: github.com/ThomasStivers/labeller/pkg/render/barcode
// [sheet]: github.com/ThomasStivers/labeller/pkg/render/sheet
package render
