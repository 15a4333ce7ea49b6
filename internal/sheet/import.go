package sheet

import (
	"path/filepath"

	"github.com/huangsam/reportboard/core"
	"github.com/huangsam/reportboard/schema"
)

// ImportFile reads path and imports it as a new session labelled with the file name.
func ImportFile(path string, opts core.NormalizeOptions) (*core.Session, error) {
	table, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return core.Import(schema.ImportSource, filepath.Base(path), table.Headers, table.Rows, opts)
}
