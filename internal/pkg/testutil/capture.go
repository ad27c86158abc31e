// Package testutil содержит помощники для тестов CLI dr-downloader:
// перехват stdout (ответы команд, JSON-документ) и stderr (ошибки запуска,
// строки подписчика в JSON-режиме).
package testutil

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// CaptureStdout выполняет fn и возвращает всё, что команды напечатали в stdout.
func CaptureStdout(t *testing.T, fn func()) string {
	t.Helper()
	return capture(t, &os.Stdout, "stdout", fn)
}

// CaptureStderr выполняет fn и возвращает вывод в stderr.
func CaptureStderr(t *testing.T, fn func()) string {
	t.Helper()
	return capture(t, &os.Stderr, "stderr", fn)
}

// capture подменяет *target на pipe на время fn.
// Чтение идёт параллельно, чтобы объёмный вывод не заблокировал запись в pipe.
func capture(t *testing.T, target **os.File, name string, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err, "не удалось создать pipe для %s", name)

	saved := *target
	*target = w

	var buf bytes.Buffer
	done := make(chan error, 1)
	go func() {
		_, readErr := buf.ReadFrom(r)
		done <- readErr
	}()

	func() {
		defer func() { *target = saved }()
		fn()
	}()

	_ = w.Close() //nolint:errcheck // закрытие pipe в тестовом помощнике
	require.NoError(t, <-done, "не удалось прочитать %s", name)
	_ = r.Close() //nolint:errcheck // закрытие pipe в тестовом помощнике
	return buf.String()
}
