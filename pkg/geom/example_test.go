package geom_test

import (
	"fmt"

	"github.com/matzehuels/tilegrid/pkg/geom"
)

func ExampleRect2_Overlaps() {
	banner := geom.R(0, 0, 15, 2)
	clock := geom.R(3, 0, 3, 3)
	below := geom.R(0, 2, 3, 3)

	fmt.Println(banner.Overlaps(clock))
	fmt.Println(banner.Overlaps(below))
	// Output:
	// true
	// false
}

func ExampleRect2_InBounds() {
	grid := geom.V(15, 15)
	fmt.Println(geom.R(12, 12, 3, 3).InBounds(grid))
	fmt.Println(geom.R(13, 0, 3, 3).InBounds(grid))
	// Output:
	// true
	// false
}
