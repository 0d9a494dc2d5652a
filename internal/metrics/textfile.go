package metrics

import (
	prom "github.com/prometheus/client_golang/prometheus"

	ferrors "github.com/Rafailong/clojure-journal/internal/foundation/errors"
)

// WriteTextfile writes the metrics gathered from g to path in the text
// exposition format. The file is replaced atomically.
func WriteTextfile(path string, g prom.Gatherer) error {
	if err := prom.WriteToTextfile(path, g); err != nil {
		return ferrors.FileSystemError("failed to write metrics textfile").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
