// Package tracing связывает записи лога, файл диагностики и OpenTelemetry
// span-ы одной команды общим trace ID.
//
// Trace ID - 32 hex символа (16 байт), совместимо с W3C Trace Context.
package tracing

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

var fallbackCounter atomic.Uint64

// GenerateTraceID возвращает новый trace ID.
// Если crypto/rand недоступен, ID строится из времени и счётчика.
func GenerateTraceID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return fallbackTraceID()
	}
	return hex.EncodeToString(b)
}

// fallbackTraceID: 16 hex символов времени + 16 hex символов счётчика.
func fallbackTraceID() string {
	n := fallbackCounter.Add(1)
	return fmt.Sprintf("%016x%016x", uint64(time.Now().UnixNano()), n)
}
