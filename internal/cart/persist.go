package cart

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Persister saves and restores cart snapshots across restarts. It is
// the server-side analog of the storefront's local-storage persistence;
// carts are deliberately kept out of the database.
type Persister interface {
	Load(name string) ([]Item, error)
	Save(name string, items []Item) error
}

// FilePersister keeps one JSON file per cart under a root directory.
type FilePersister struct {
	dir string
}

func NewFilePersister(dir string) (*FilePersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FilePersister{dir: dir}, nil
}

func (p *FilePersister) path(name string) string {
	// Cart names embed user/session ids; keep the file name flat.
	safe := strings.NewReplacer("/", "_", string(filepath.Separator), "_").Replace(name)
	return filepath.Join(p.dir, safe+".json")
}

func (p *FilePersister) Load(name string) ([]Item, error) {
	data, err := os.ReadFile(p.path(name))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (p *FilePersister) Save(name string, items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}

	tmp := p.path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, p.path(name))
}
