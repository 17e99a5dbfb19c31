package database

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Backend persists named documents as opaque JSON payloads
type Backend interface {
	// Load returns the stored payload for name. A missing document is
	// reported with ok=false and a nil error.
	Load(name string) (data []byte, ok bool, err error)
	// Save replaces the stored payload for name
	Save(name string, data []byte) error
	// String describes the backend for logs
	String() string
}

// FileBackend stores one <name>.json file per document in a directory
type FileBackend struct {
	dir string
}

// NewFileBackend creates a FileBackend rooted at dir
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// Dir returns the data directory
func (b *FileBackend) Dir() string {
	return b.dir
}

func (b *FileBackend) path(name string) string {
	return filepath.Join(b.dir, name+".json")
}

// Load reads <dir>/<name>.json
func (b *FileBackend) Load(name string) ([]byte, bool, error) {
	data, err := os.ReadFile(b.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", name, err)
	}
	return data, true, nil
}

// Save writes the payload to a temp file and renames it over the target,
// so a crash never leaves a truncated document behind.
func (b *FileBackend) Save(name string, data []byte) error {
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(b.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", name, err)
	}

	if err := os.Rename(tmpName, b.path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

func (b *FileBackend) String() string {
	return "file:" + b.dir
}

// GetStatus reports whether the data directory is usable
func (b *FileBackend) GetStatus() (string, bool) {
	info, err := os.Stat(b.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return "🟡 | Sin datos todavía", true
	}
	if err != nil || !info.IsDir() {
		return "🔴 | Directorio inaccesible", false
	}
	return "🟢 | Archivos locales", true
}
