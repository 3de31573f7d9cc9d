package record

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads the persisted record document. A missing file is not an error:
// it returns (nil, nil) so the caller can start from an empty record.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse record %s: %w", path, err)
	}
	return &rec, nil
}

// Save writes the whole document atomically: serialized to a temp file in
// the target directory, then renamed over the destination. A failed run can
// never leave a partially written record behind.
func Save(rec *Record, path string) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".precios-*.json")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
