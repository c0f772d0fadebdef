package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/tilegrid/pkg/board"
	"github.com/matzehuels/tilegrid/pkg/geom"
)

// parseInts splits s on sep and parses exactly n integers.
func parseInts(s, sep string, n int) ([]int, error) {
	parts := strings.Split(s, sep)
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d values separated by %q, got %q", n, sep, s)
	}
	out := make([]int, n)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid number %q in %q", p, s)
		}
		out[i] = v
	}
	return out, nil
}

// parsePoint parses "x,y".
func parsePoint(s string) (geom.Vector2, error) {
	v, err := parseInts(s, ",", 2)
	if err != nil {
		return geom.Vector2{}, err
	}
	return geom.V(v[0], v[1]), nil
}

// parseRect parses "x,y,w,h".
func parseRect(s string) (geom.Rect2, error) {
	v, err := parseInts(s, ",", 4)
	if err != nil {
		return geom.Rect2{}, err
	}
	r := geom.R(v[0], v[1], v[2], v[3])
	if !r.Size.Positive() {
		return geom.Rect2{}, fmt.Errorf("rect %q must have a positive size", s)
	}
	return r, nil
}

// parseSize parses "WxH". An empty string is the zero size.
func parseSize(s string) (geom.Vector2, error) {
	if s == "" {
		return geom.Vector2{}, nil
	}
	v, err := parseInts(strings.ToLower(s), "x", 2)
	if err != nil {
		return geom.Vector2{}, err
	}
	size := geom.V(v[0], v[1])
	if !size.Positive() {
		return geom.Vector2{}, fmt.Errorf("size %q must be positive", s)
	}
	return size, nil
}

// writeBoard writes b to path. An empty format is taken from the path
// extension.
func writeBoard(b *board.Board, path, format string) error {
	f, err := outputFormat(format, path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := board.Write(b, file, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// outputFormat returns the explicit format, or the format of fallbackPath.
func outputFormat(format, fallbackPath string) (board.Format, error) {
	if format != "" {
		return board.ParseFormat(format)
	}
	return board.FormatFromPath(fallbackPath)
}
