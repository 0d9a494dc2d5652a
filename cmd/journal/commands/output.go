package commands

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	ferrors "github.com/Rafailong/clojure-journal/internal/foundation/errors"
)

// encode writes v as YAML or indented JSON.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return ferrors.InternalError("failed to encode JSON").WithCause(err).Build()
		}
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return ferrors.InternalError("failed to encode YAML").WithCause(err).Build()
		}
		if err := enc.Close(); err != nil {
			return ferrors.InternalError("failed to encode YAML").WithCause(err).Build()
		}
	}
	return nil
}
