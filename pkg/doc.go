// Package pkg provides the core libraries for tilegrid widget placement.
//
// # Overview
//
// Tilegrid places rectangular widgets on a fixed-size dashboard grid. A
// widget keeps its requested position when it is in bounds and free; every
// other widget goes to the first free spot in row-major order. The same
// board always resolves to the same layout.
//
// # Architecture
//
// The typical data flow:
//
//	.json / .toml / .grid file
//	         ↓
//	    [board] package (decode, assign IDs, validate)
//	         ↓
//	    [pipeline] package (cache lookup, instrumentation)
//	         ↓
//	    [placement] package (confirm → reposition → place on an [occupancy] grid)
//	         ↓
//	    resolved board → file, [store], or HTTP response
//
// # Quick Start
//
//	b, err := board.ParseGridString(`
//	board home 12x8
//	widget clock Clock 3x3 at 1,1
//	widget feed Feed 12x2
//	`)
//	if err != nil {
//	    return err
//	}
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, err := runner.Resolve(ctx, b, pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	fmt.Print(board.FormatGridText(res.Board))
//
// # Main Packages
//
// ## Placement
//
// [geom] - Integer vectors and rectangles: overlap and bounds tests.
//
// [occupancy] - Flat boolean grid of taken cells.
//
// [placement] - The resolver. Validates a widget list, commits confirmed
// widgets, then repositions and places the rest with a first-fit scan.
//
// ## Boards
//
// [board] - Board and widget records with JSON, TOML and .grid encodings,
// validation and "did you mean" suggestions for unknown widget IDs.
//
// ## Infrastructure
//
// [pipeline] - Resolution runner shared by the CLI and the HTTP server.
//
// [cache] - Layout cache backends: file, Redis and null.
//
// [store] - Board persistence: file, MongoDB and memory.
//
// [server] - HTTP API on chi.
//
// [observability] - Hooks for resolution, cache and HTTP events.
//
// [errors] - Coded errors with HTTP status mapping.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/placement    # Specific package
//	go test -run Example ./... # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/geom
// [occupancy]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/occupancy
// [placement]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/placement
// [board]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/board
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/store
// [server]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/server
// [observability]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/tilegrid/pkg/errors
package pkg
