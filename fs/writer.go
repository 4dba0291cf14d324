package fs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/s4ng4/winelist"
)

// WriteCatalog writes wines to path as a catalog document that Source can
// read back. The document is written to path.tmp and renamed into place, so
// readers and watchers never see a partial catalog.
func WriteCatalog(path string, wines []*winelist.Wine) error {
	doc := struct {
		Wines []winelist.RawWine `json:"wines"`
	}{
		Wines: make([]winelist.RawWine, len(wines)),
	}
	for i, w := range wines {
		doc.Wines[i] = w.Raw()
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
