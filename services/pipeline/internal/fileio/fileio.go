package fileio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/renameio/v2"

	"github.com/02loveslollipop/station-backfill/services/pipeline/internal/transform"
)

const indent = "    "

// ReadFile reads path whole. Any failure maps to transform.ErrMissingInput.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", transform.ErrMissingInput, err)
	}
	return data, nil
}

// WriteJSON writes v to path as four-space indented JSON with no trailing
// newline. The file is replaced atomically: a failed write leaves any
// previous content in place.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", indent)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
