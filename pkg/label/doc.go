// Package label models warehouse location labels and their canonical text.
//
// # Label
//
// A [Label] is a fully resolved coordinate tuple inside one building. Two
// template families exist:
//
//   - Level buildings (TLR) carry a Level and no Type and render as
//     BUILDING-AA-BB-L-SS, for example "TLR-01-20-C-01".
//   - Typed buildings (402, 225, 220) carry a Type and no Level and render
//     as BUILDING-TYPE-AA-BB-S, for example "402-F-00-01-A".
//
// Aisle and bay are zero padded to two digits. Numeric slots on level
// buildings are padded as well; letter slots are printed as-is. The
// separator defaults to "-".
//
// # Collection
//
// A [Collection] is an ordered, read-only list of labels with a column
// width used for text output:
//
//	c, err := label.NewCollection(labels, 6)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(c) // six comma-separated labels per line
package label
