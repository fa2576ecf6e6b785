package catalog

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pgddui/pgddui/pkg/core"
)

// MalformedRowError reports a catalog row that cannot become a record.
type MalformedRowError struct {
	Kind  core.ObjectKind
	Index int
	Field string
	Err   error
}

func (e *MalformedRowError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("malformed %s row %d: missing required field %q", e.Kind, e.Index, e.Field)
	}
	return fmt.Sprintf("malformed %s row %d: %v", e.Kind, e.Index, e.Err)
}

func (e *MalformedRowError) Unwrap() error {
	return e.Err
}

// decodeRows converts raw rows into records. NULL columns leave the zero
// value; numeric strings (numeric, bigint rendered as text) are converted.
func decodeRows[T any](kind core.ObjectKind, rows []core.Row, required ...string) ([]T, error) {
	out := make([]T, 0, len(rows))
	for i, row := range rows {
		for _, field := range required {
			if v, ok := row[field]; !ok || v == nil {
				return nil, &MalformedRowError{Kind: kind, Index: i, Field: field}
			}
		}

		var rec T
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &rec,
			WeaklyTypedInput: true,
			TagName:          "mapstructure",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create decoder: %w", err)
		}
		if err := dec.Decode(map[string]any(row)); err != nil {
			return nil, &MalformedRowError{Kind: kind, Index: i, Err: err}
		}
		out = append(out, rec)
	}
	return out, nil
}
