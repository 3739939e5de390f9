package transform

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMissingInput is returned when an input file or feed cannot be read.
	ErrMissingInput = errors.New("missing input")

	// ErrMalformedInput is returned for JSON that does not have the expected
	// shape. ErrMissingField and ErrTypeMismatch wrap it.
	ErrMalformedInput = errors.New("malformed input")

	ErrMissingField = fmt.Errorf("%w: missing field", ErrMalformedInput)
	ErrTypeMismatch = fmt.Errorf("%w: type mismatch", ErrMalformedInput)

	// ErrDegenerateInterval is returned when two consecutive records share a
	// timestamp, leaving nothing to interpolate across.
	ErrDegenerateInterval = errors.New("degenerate interpolation interval")
)

// classifyDecodeError maps encoding/json failures onto the error taxonomy.
func classifyDecodeError(what string, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "value"
		}
		return fmt.Errorf("%w: %s: %s is %s, want %s", ErrTypeMismatch, what, field, typeErr.Value, typeErr.Type)
	}
	return fmt.Errorf("%w: %s: %v", ErrMalformedInput, what, err)
}
