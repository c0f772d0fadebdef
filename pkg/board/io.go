package board

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/tilegrid/pkg/errors"
)

// Format names a board file format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatGrid Format = "grid"
)

// ParseFormat validates a format name such as "json" or ".toml".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(s), ".")); f {
	case FormatJSON, FormatTOML, FormatGrid:
		return f, nil
	default:
		return "", errs.New(errs.ErrCodeInvalidFormat, "unsupported board format %q (must be one of: json, toml, grid)", s)
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errs.New(errs.ErrCodeInvalidFormat, "cannot infer board format from %q", path)
	}
	return ParseFormat(ext)
}

// =============================================================================
// Generic API
// =============================================================================

// Read decodes a board in the given format, assigns missing IDs and
// validates it.
func Read(r io.Reader, f Format) (*Board, error) {
	var (
		b   *Board
		err error
	)
	switch f {
	case FormatJSON:
		b, err = decodeJSON(r)
	case FormatTOML:
		b, err = decodeTOML(r)
	case FormatGrid:
		b, err = parseGrid(r)
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported board format %q", f)
	}
	if err != nil {
		return nil, err
	}
	b.EnsureIDs()
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Write encodes a board in the given format.
func Write(b *Board, w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		return WriteBoard(b, w)
	case FormatTOML:
		return WriteTOML(b, w)
	case FormatGrid:
		_, err := io.WriteString(w, FormatGridText(b))
		return err
	default:
		return errs.New(errs.ErrCodeInvalidFormat, "unsupported board format %q", f)
	}
}

// ReadFile reads a board file, choosing the format from its extension.
func ReadFile(path string) (*Board, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "board file %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	b, err := Read(file, f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return b, nil
}

// WriteFile writes a board file, choosing the format from its extension.
// The file is created with 0644 permissions.
func WriteFile(b *Board, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()
	return Write(b, file, f)
}

// =============================================================================
// JSON
// =============================================================================

// MarshalBoard converts a board to indented JSON bytes.
func MarshalBoard(b *Board) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteBoard(b, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalBoard decodes JSON bytes into a validated board.
func UnmarshalBoard(data []byte) (*Board, error) {
	return ReadBoard(bytes.NewReader(data))
}

// WriteBoard writes a board as indented JSON.
func WriteBoard(b *Board, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadBoard decodes a JSON board, assigns missing IDs and validates it.
func ReadBoard(r io.Reader) (*Board, error) {
	return Read(r, FormatJSON)
}

func decodeJSON(r io.Reader) (*Board, error) {
	var b Board
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode json board")
	}
	return &b, nil
}

// =============================================================================
// TOML
// =============================================================================

// WriteTOML writes a board as TOML with one [[widgets]] table per widget.
func WriteTOML(b *Board, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(b); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}

// ReadTOML decodes a TOML board, assigns missing IDs and validates it.
func ReadTOML(r io.Reader) (*Board, error) {
	return Read(r, FormatTOML)
}

func decodeTOML(r io.Reader) (*Board, error) {
	var b Board
	md, err := toml.NewDecoder(r).Decode(&b)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode toml board")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unknown keys in toml board: %s", strings.Join(keys, ", "))
	}
	return &b, nil
}
