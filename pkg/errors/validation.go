package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeID validates a source node identifier typed by a user.
//
// The rules mirror what the edge-list parser can ever produce:
//   - No empty identifiers
//   - No whitespace (tokens are whitespace separated)
//   - No control characters
//
// Length is not bounded; the parser accepts tokens of any length.
//
// Whether the node exists in a given graph is checked by the generators.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidSource, "source node cannot be empty")
	}
	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidSource, "source node contains invalid characters: %q", id)
		}
	}
	return nil
}

// ValidateAlgorithmName validates an algorithm identifier such as "bfs".
// Names are lowercase ASCII letters and dashes.
func ValidateAlgorithmName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidAlgorithm, "algorithm name cannot be empty")
	}
	if strings.ToLower(name) != name {
		return New(ErrCodeInvalidAlgorithm, "algorithm names must be lowercase: %q", name)
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && r != '-' {
			return New(ErrCodeInvalidAlgorithm, "invalid algorithm name: %q", name)
		}
	}
	return nil
}
