package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Local хранит файлы как uploads/<клиент>/<имя>.
// Пространство = каталог; каталога нет — пространства нет.
type Local struct {
	root string
}

func NewLocal(root string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", root, err)
	}
	return &Local{root: root}, nil
}

func (l *Local) Kind() string { return "local" }

func (l *Local) Put(_ context.Context, namespace, filename string, r io.Reader, _ int64, _ string) (Location, error) {
	dir := filepath.Join(l.root, namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Location{}, fmt.Errorf("storage: create namespace dir: %w", err)
	}
	dst := filepath.Join(dir, filename)
	f, err := os.Create(dst)
	if err != nil {
		return Location{}, fmt.Errorf("storage: create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(dst)
		return Location{}, fmt.Errorf("storage: write file: %w", err)
	}
	return Location{Path: dst, URL: "/uploads/" + namespace + "/" + filename}, nil
}

func (l *Local) Open(_ context.Context, namespace, filename string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(l.root, namespace, filename))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return f, err
}

func (l *Local) List(_ context.Context, namespace string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(l.root, namespace))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && IsImage(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (l *Local) Namespaces(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (l *Local) Delete(_ context.Context, namespace, filename string) (bool, error) {
	p := filepath.Join(l.root, namespace, filename)
	if _, err := os.Stat(p); os.IsNotExist(err) {
		return false, nil
	}
	if err := os.Remove(p); err != nil {
		return false, err
	}
	return true, nil
}

func (l *Local) DeleteNamespace(_ context.Context, namespace string) (bool, error) {
	p := filepath.Join(l.root, namespace)
	if _, err := os.Stat(p); os.IsNotExist(err) {
		return false, nil
	}
	if err := os.RemoveAll(p); err != nil {
		return false, err
	}
	return true, nil
}

func (l *Local) Exists(_ context.Context, namespace string) (bool, error) {
	info, err := os.Stat(filepath.Join(l.root, namespace))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
