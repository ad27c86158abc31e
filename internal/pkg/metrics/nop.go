package metrics

import (
	"context"
	"time"
)

// NopCollector - no-op реализация Collector.
type NopCollector struct{}

// NewNopCollector создаёт NopCollector.
func NewNopCollector() *NopCollector {
	return &NopCollector{}
}

// RecordCommandStart ничего не делает.
func (c *NopCollector) RecordCommandStart(string, string) {}

// RecordCommandEnd ничего не делает.
func (c *NopCollector) RecordCommandEnd(string, string, time.Duration, string) {}

// RecordDownload ничего не делает.
func (c *NopCollector) RecordDownload(string, time.Duration, bool) {}

// Push всегда возвращает nil.
func (c *NopCollector) Push(context.Context) error {
	return nil
}
