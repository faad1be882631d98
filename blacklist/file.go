package blacklist

import (
	"encoding/json"
	"os"
)

// FileStore keeps the blacklist as a JSON array on disk. This is the
// default backend when no database is configured.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the whole set. A missing file is an empty blacklist, not
// an error.
func (f *FileStore) Load() ([]string, error) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// Save writes the whole set through a temp file and rename, so a crash
// mid-write cannot truncate the previous copy.
func (f *FileStore) Save(names []string) error {
	data, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}
