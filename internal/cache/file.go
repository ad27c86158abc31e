package cache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultFilePath - путь к файлу кэша по умолчанию.
const DefaultFilePath = "dr-downloader.cache.yaml"

// fileDocument - формат YAML файла кэша.
type fileDocument struct {
	Entries map[string]string `yaml:"entries"`
}

// FileCache хранит значения в YAML файле.
// Файл перечитывается при каждом Get, поэтому изменения из другого
// процесса видны сразу. Запись атомарна: через временный файл и rename.
type FileCache struct {
	mu   sync.Mutex
	path string
}

// Compile-time проверка реализации интерфейса
var _ Cache = (*FileCache)(nil)

// NewFileCache создаёт FileCache. Файл создаётся при первой записи.
func NewFileCache(path string) (*FileCache, error) {
	if path == "" {
		path = DefaultFilePath
	}
	return &FileCache{path: path}, nil
}

// Path возвращает путь к файлу кэша.
func (c *FileCache) Path() string {
	return c.path
}

// Get читает значение из файла.
func (c *FileCache) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	if key == "" {
		return "", false, ErrEmptyKey
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	doc, err := c.load()
	if err != nil {
		return "", false, err
	}
	v, ok := doc.Entries[key]
	return v, ok, nil
}

// Set записывает значение в файл.
func (c *FileCache) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return ErrEmptyKey
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	doc, err := c.load()
	if err != nil {
		return err
	}
	doc.Entries[key] = value
	return c.store(doc)
}

// Close ничего не делает: файл не держится открытым.
func (c *FileCache) Close() error {
	return nil
}

func (c *FileCache) load() (*fileDocument, error) {
	doc := &fileDocument{Entries: map[string]string{}}

	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache: read %s: %w", c.path, err)
	}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("cache: parse %s: %w", c.path, err)
	}
	if doc.Entries == nil {
		doc.Entries = map[string]string{}
	}
	return doc, nil
}

func (c *FileCache) store(doc *fileDocument) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("cache: encode: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("cache: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("cache: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("cache: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("cache: write: %w", err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("cache: rename: %w", err)
	}
	return nil
}
