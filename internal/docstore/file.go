package docstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileBackend stores each document as <root>/<name>.json. Saves write a
// temporary file in the same directory and rename it over the target, so a
// reader sees either the old or the new document, never a partial one.
type FileBackend struct {
	root string
}

// NewFileBackend returns a file backend rooted at root, creating it if needed.
func NewFileBackend(root string) (*FileBackend, error) {
	if root == "" {
		root = "zaloga-data"
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &FileBackend{root: root}, nil
}

func (b *FileBackend) pathFor(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("empty document name")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid document name %q", name)
	}
	return filepath.Join(b.root, name+".json"), nil
}

// Load reads the document file.
func (b *FileBackend) Load(_ context.Context, name string) ([]byte, error) {
	path, err := b.pathFor(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// Save atomically replaces the document file.
func (b *FileBackend) Save(_ context.Context, name string, data []byte) (retErr error) {
	path, err := b.pathFor(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(b.root, ".tmp-"+name+"-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}

	syncDir(b.root)
	return nil
}

// syncDir flushes the directory entry after a rename. Not every platform
// supports syncing a directory, so failures are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
