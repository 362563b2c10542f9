// Package storage provides the persistence adapters: a directory of JSON
// files holding one payment per file, and a SQLite archive of payment events
// used by the worker.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"paytrack/internal/core"
)

// FileRepository stores each payment as <id>.json inside a single directory.
// There is no locking and no cross-record transactionality; concurrent
// writers to the same id race at the filesystem level.
type FileRepository struct {
	dir string
}

func NewFileRepository(dir string) *FileRepository {
	return &FileRepository{dir: dir}
}

// Dir returns the backing directory path.
func (r *FileRepository) Dir() string {
	return r.dir
}

func (r *FileRepository) ensureDir() error {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("create data directory %s: %w", r.dir, err)
	}
	return nil
}

// LoadAll reads every payment file in the directory. Unreadable or
// unparseable files are logged and skipped; a single corrupt record reduces
// the visible dataset rather than failing the whole load.
func (r *FileRepository) LoadAll() ([]core.Payment, error) {
	if err := r.ensureDir(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("read data directory %s: %w", r.dir, err)
	}

	payments := make([]core.Payment, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(r.dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("Skipping unreadable payment file", "path", path, "error", err)
			continue
		}
		var p core.Payment
		if err := json.Unmarshal(data, &p); err != nil {
			slog.Warn("Skipping unparseable payment file", "path", path, "error", err)
			continue
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// Save writes the payment to <id>.json, replacing any previous content. The
// write goes to a temp file first and is renamed into place, so readers never
// observe a half-written record.
func (r *FileRepository) Save(p core.Payment) error {
	if err := r.ensureDir(); err != nil {
		return err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal payment %s: %w", p.ID, err)
	}

	path := filepath.Join(r.dir, p.ID+".json")
	tmp, err := os.CreateTemp(r.dir, p.ID+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file for payment %s: %w", p.ID, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write payment %s: %w", p.ID, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file for payment %s: %w", p.ID, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename payment file %s: %w", p.ID, err)
	}
	return nil
}

// Delete removes the payment file if present. A missing file is not an
// error.
func (r *FileRepository) Delete(id string) error {
	path := filepath.Join(r.dir, id+".json")
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete payment file %s: %w", id, err)
	}
	return nil
}

// Clear removes every payment file in the directory.
func (r *FileRepository) Clear() error {
	if err := r.ensureDir(); err != nil {
		return err
	}
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("read data directory %s: %w", r.dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(r.dir, entry.Name())
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("delete payment file %s: %w", path, err)
		}
	}
	return nil
}
