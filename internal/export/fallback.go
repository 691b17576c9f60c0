package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"linkedin-jobs-export/internal/record"
)

// writeFallback writes one JSON object per record to path, or to the OS temp
// directory when path is not writable. It returns the path actually written.
func (e *Exporter) writeFallback(path string, records []*record.Record) (string, error) {
	data, err := renderRaw(records)
	if err != nil {
		return "", err
	}

	err = os.WriteFile(path, data, 0o644)
	if err == nil {
		return path, nil
	}
	e.logger.Warn("Fallback location not writable, using temp dir",
		"path", path,
		"error", err.Error(),
	)

	tmpPath := filepath.Join(os.TempDir(), filepath.Base(path))
	if tmpErr := os.WriteFile(tmpPath, data, 0o644); tmpErr != nil {
		return "", errors.Join(err, tmpErr)
	}
	return tmpPath, nil
}

func renderRaw(records []*record.Record) ([]byte, error) {
	var buf bytes.Buffer
	for i, rec := range records {
		line, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("render record %d: %w", i, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
