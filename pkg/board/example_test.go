package board_test

import (
	"fmt"

	"github.com/matzehuels/tilegrid/pkg/board"
	"github.com/matzehuels/tilegrid/pkg/placement"
)

func ExampleParseGridString() {
	b, err := board.ParseGridString(`
board home 6x4
widget clock Clock 2x2 at 0,0
widget notes Notes 2x2 at 1,1
widget feed Feed 6x1
`)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	r, _ := placement.NewResolver(b.Grid)
	result, err := r.Resolve(b.PlacementWidgets())
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	fmt.Print(board.FormatGridText(b.Apply(result)))
	// Output:
	// board home 6x4
	// widget clock Clock 2x2 at 0,0
	// widget notes Notes 2x2 at 2,0
	// widget feed Feed 6x1 at 0,2
}
