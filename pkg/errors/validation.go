package errors

import (
	"regexp"
	"strings"
)

// boardIDRegex matches identifiers that are safe to use as file names and
// document keys: letters, digits, dash, underscore and dot.
var boardIDRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateBoardID validates a board identifier for safety.
// Board IDs become file names in the file store, so they must not contain
// path separators or traversal sequences.
func ValidateBoardID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "board id cannot be empty")
	}
	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "board id too long (max 128 characters)")
	}
	if strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "board id cannot contain %q", "..")
	}
	if !boardIDRegex.MatchString(id) {
		return New(ErrCodeInvalidInput, "invalid board id: %q", id)
	}
	return nil
}
