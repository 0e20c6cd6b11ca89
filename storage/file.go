package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"stockpile/models"
)

// FileAdapter persists the inventory and credential documents as indented JSON
// files. Saves go through a temp file and a rename so a failed write never
// truncates the previous document.
type FileAdapter struct {
	inventoryPath string
	loginPath     string
}

// NewFileAdapter returns an adapter writing to the two given paths.
func NewFileAdapter(inventoryPath, loginPath string) *FileAdapter {
	return &FileAdapter{inventoryPath: inventoryPath, loginPath: loginPath}
}

func (a *FileAdapter) LoadDocument() (models.Document, error) {
	doc := models.Document{}
	if err := readJSON(a.inventoryPath, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (a *FileAdapter) SaveDocument(doc models.Document) error {
	return writeJSON(a.inventoryPath, doc)
}

func (a *FileAdapter) LoadCredentials() (models.Credentials, error) {
	creds := models.Credentials{}
	if err := readJSON(a.loginPath, &creds); err != nil {
		return nil, err
	}
	return creds, nil
}

func (a *FileAdapter) SaveCredentials(creds models.Credentials) error {
	return writeJSON(a.loginPath, creds)
}

// Close is a no-op; the adapter holds no open handles between calls.
func (a *FileAdapter) Close() {}

// readJSON decodes path into v. A missing or empty file leaves v untouched so
// a fresh install starts from an empty document.
func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// writeJSON replaces path atomically: marshal, write to a temp file in the
// same directory, then rename over the old document.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting mode on %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
