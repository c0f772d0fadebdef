package board

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	errs "github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/geom"
)

// The .grid DSL is line oriented:
//
//	# comment
//	board "name" 12x8
//	widget clock Clock 3x3 at 1,1
//	widget feed 12x2
//
// Exactly one board line is required. Widget type and position are
// optional. Props cannot be expressed and are dropped by [FormatGridText].

var (
	gridLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "Size", Pattern: `\d+x\d+`},
		{Name: "Int", Pattern: `-?\d+`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_.-]*`},
		{Name: "Punct", Pattern: `,`},
	})

	gridParser = participle.MustBuild[gridFile](
		participle.Lexer(gridLexer),
		participle.Unquote("String"),
		participle.Elide("Whitespace", "Comment"),
	)

	bareIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)
)

type gridFile struct {
	Entries []*gridEntry `parser:"Newline* ( @@ Newline* )*"`
}

type gridEntry struct {
	Board  *gridBoard  `parser:"  @@"`
	Widget *gridWidget `parser:"| @@"`
}

type gridBoard struct {
	Pos  lexer.Position `parser:""`
	Name string         `parser:"'board' @(String | Ident)?"`
	Size string         `parser:"@Size"`
}

type gridWidget struct {
	Pos  lexer.Position `parser:""`
	ID   string         `parser:"'widget' @(Ident | String)"`
	Type string         `parser:"@(Ident | String)?"`
	Size string         `parser:"@Size"`
	At   *gridPoint     `parser:"( 'at' @@ )?"`
}

type gridPoint struct {
	X int `parser:"@Int"`
	Y int `parser:"',' @Int"`
}

// ParseGrid reads a board in the .grid DSL, assigns missing IDs and
// validates it.
func ParseGrid(r io.Reader) (*Board, error) {
	return Read(r, FormatGrid)
}

// ParseGridString is [ParseGrid] for in-memory input.
func ParseGridString(s string) (*Board, error) {
	return Read(strings.NewReader(s), FormatGrid)
}

func parseGrid(r io.Reader) (*Board, error) {
	ast, err := gridParser.Parse("", r)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse grid board")
	}

	var b *Board
	var widgets []Widget
	for _, e := range ast.Entries {
		switch {
		case e.Board != nil:
			if b != nil {
				return nil, errs.New(errs.ErrCodeInvalidFormat, "%s: duplicate board line", e.Board.Pos)
			}
			size, err := parseSize(e.Board.Size)
			if err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "%s", e.Board.Pos)
			}
			b = &Board{Name: e.Board.Name, Grid: size}
		case e.Widget != nil:
			size, err := parseSize(e.Widget.Size)
			if err != nil {
				return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "%s", e.Widget.Pos)
			}
			w := Widget{ID: e.Widget.ID, Type: e.Widget.Type, Size: size}
			if e.Widget.At != nil {
				p := geom.V(e.Widget.At.X, e.Widget.At.Y)
				w.Position = &p
			}
			widgets = append(widgets, w)
		}
	}
	if b == nil {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "missing board line")
	}
	b.Widgets = widgets
	return b, nil
}

func parseSize(s string) (geom.Vector2, error) {
	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return geom.Vector2{}, fmt.Errorf("invalid size %q", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return geom.Vector2{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return geom.Vector2{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return geom.V(w, h), nil
}

// FormatGridText renders a board in the .grid DSL. The output parses back to
// an equal board, except that Props and the board ID are not represented.
func FormatGridText(b *Board) string {
	var sb strings.Builder
	sb.WriteString("board")
	if b.Name != "" {
		sb.WriteString(" " + gridWord(b.Name))
	}
	fmt.Fprintf(&sb, " %dx%d\n", b.Grid.X, b.Grid.Y)
	for _, w := range b.Widgets {
		sb.WriteString("widget " + gridWord(w.ID))
		if w.Type != "" {
			sb.WriteString(" " + gridWord(w.Type))
		}
		fmt.Fprintf(&sb, " %dx%d", w.Size.X, w.Size.Y)
		if w.Position != nil {
			fmt.Fprintf(&sb, " at %d,%d", w.Position.X, w.Position.Y)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func gridWord(s string) string {
	if bareIdent.MatchString(s) {
		return s
	}
	return strconv.Quote(s)
}
