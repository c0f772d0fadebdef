package placement_test

import (
	"fmt"

	"github.com/matzehuels/tilegrid/pkg/geom"
	"github.com/matzehuels/tilegrid/pkg/placement"
)

func ExampleResolver_Resolve() {
	r, _ := placement.NewResolver(geom.V(15, 15))

	banner := geom.V(0, 0)
	clock := geom.V(3, 0)
	result, err := r.Resolve([]placement.Widget{
		{ID: "notes", Size: geom.V(3, 3)},
		{ID: "banner", Size: geom.V(15, 2), Position: &banner},
		{ID: "clock", Size: geom.V(3, 3), Position: &clock},
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	for _, p := range result.Placements {
		fmt.Printf("%s %v %s\n", p.ID, p.Position, p.Status)
	}
	// Output:
	// notes (3,2) placed
	// banner (0,0) confirmed
	// clock (0,2) repositioned
}

func ExampleResolver_HasWidget() {
	r, _ := placement.NewResolver(geom.V(15, 15))
	r.AddWidgetRect(geom.R(6, 6, 3, 3))

	fmt.Println(r.HasWidget(geom.R(3, 3, 3, 3)))
	fmt.Println(r.HasWidget(geom.R(4, 4, 3, 3)))
	// Output:
	// false
	// true
}
