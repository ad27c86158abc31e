// Package cachetest предоставляет in-memory реализацию cache.Cache для тестов.
package cachetest

import (
	"context"
	"sync"

	"github.com/Kargones/dr-downloader/internal/cache"
)

// Memory - потокобезопасный Cache в памяти.
// Поля GetErr и SetErr позволяют имитировать сбой хранилища.
type Memory struct {
	mu      sync.Mutex
	entries map[string]string

	GetErr error
	SetErr error
	Closed bool
}

// Compile-time проверка реализации интерфейса
var _ cache.Cache = (*Memory)(nil)

// NewMemory создаёт пустой Memory.
func NewMemory() *Memory {
	return &Memory{entries: map[string]string{}}
}

// Get возвращает значение по ключу.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", false, m.GetErr
	}
	v, ok := m.entries[key]
	return v, ok, nil
}

// Set сохраняет значение.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	m.entries[key] = value
	return nil
}

// Close помечает хранилище закрытым.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}
