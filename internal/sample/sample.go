// Package sample exports the first rows of a table as a JSON array of
// objects for manual inspection.
package sample

import (
	"os"

	"github.com/nconklindev/xlsxprobe/internal/errors"
	"github.com/nconklindev/xlsxprobe/internal/types"

	json "github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

const DefaultRows = 10

// Marshal encodes up to n rows as indented JSON. Object keys follow column
// order; dates are written as strings.
func Marshal(table *types.Table, n int) ([]byte, error) {
	records := table.Head(n)
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, errors.SerializationFailed(err)
	}
	return append(data, '\n'), nil
}

// Write encodes up to n rows and writes them to path, returning how many
// records were written. The parent directory must exist.
func Write(path string, table *types.Table, n int) (int, error) {
	data, err := Marshal(table, n)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, errors.FileUnwritable(path, err)
	}

	written := len(table.Head(n))
	log.WithFields(log.Fields{"path": path, "records": written}).Debug("sample written")
	return written, nil
}
