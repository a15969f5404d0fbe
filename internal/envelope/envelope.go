// Package envelope extracts the JSON payload from Aeon Timeline 3 project files.
//
// An .aeon file wraps a single JSON object in an opaque binary container.
// The payload starts at the first '{' byte and ends at the brace that brings
// the nesting depth back to zero.
package envelope

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

// ErrCorrupted is returned when the brace nesting never closes or the payload
// is not valid UTF-8.
var ErrCorrupted = errors.New("corrupted data")

// ErrNoJSON is returned when the input contains no JSON object at all.
var ErrNoJSON = errors.New("no JSON part found")

// Extract returns the JSON text embedded in data.
func Extract(data []byte) (string, error) {
	start := bytes.IndexByte(data, '{')
	if start < 0 {
		return "", ErrNoJSON
	}

	depth := 0
	for i := start; i < len(data); i++ {
		switch data[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return decode(data[start : i+1])
			}
		}
	}
	return "", fmt.Errorf("%w: unbalanced braces (depth %d at end of input)", ErrCorrupted, depth)
}

// ExtractFile reads the file at path and returns its JSON payload.
func ExtractFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	payload, err := Extract(data)
	if err != nil {
		return "", fmt.Errorf("scanning %s: %w", path, err)
	}
	return payload, nil
}

func decode(payload []byte) (string, error) {
	if !utf8.Valid(payload) {
		return "", fmt.Errorf("%w: payload is not valid UTF-8", ErrCorrupted)
	}
	return string(payload), nil
}
