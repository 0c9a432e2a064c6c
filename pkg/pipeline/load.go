package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/mindgrid/pkg/document"
	mgerrors "github.com/matzehuels/mindgrid/pkg/errors"
)

// loadDocument reads and decodes the input file. The extension picks
// the decoder: .toml goes through the outline importer, everything
// else is treated as a JSON document.
func loadDocument(path string) (*document.Document, []byte, error) {
	if err := mgerrors.ValidatePath(path); err != nil {
		return nil, nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, mgerrors.Wrap(mgerrors.ErrCodeFileNotFound, err, "input file %s", path)
		}
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	var doc *document.Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		doc, err = document.ReadTOML(bytes.NewReader(raw))
	default:
		doc, err = document.ReadJSON(bytes.NewReader(raw))
	}
	if err != nil {
		return nil, nil, mgerrors.Wrap(mgerrors.ErrCodeInvalidDocument, err, "decode %s", path)
	}
	return doc, raw, nil
}
