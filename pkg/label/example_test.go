package label_test

import (
	"fmt"

	"github.com/ThomasStivers/labeller/pkg/label"
)

func ExampleLabel_String() {
	tlr := label.Label{Building: "TLR", Aisle: 1, Bay: 20, Level: "C", Slot: "1"}
	af := label.Label{Building: "402", Type: "F", Aisle: 0, Bay: 7, Slot: "B"}

	fmt.Println(tlr)
	fmt.Println(af)
	// Output:
	// TLR-01-20-C-01
	// 402-F-00-07-B
}

func ExampleNewCollection() {
	var labels []label.Label
	for slot := 1; slot <= 2; slot++ {
		for _, level := range []string{"C", "D", "E"} {
			labels = append(labels, label.Label{Building: "TLR", Aisle: 1, Bay: 20, Level: level, Slot: fmt.Sprint(slot)})
		}
	}

	c, err := label.NewCollection(labels, 4)
	if err != nil {
		panic(err)
	}
	fmt.Println(c)
	// Output:
	// TLR-01-20-C-01,TLR-01-20-D-01,TLR-01-20-E-01,TLR-01-20-C-02
	// TLR-01-20-D-02,TLR-01-20-E-02
}
