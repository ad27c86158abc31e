package engine

import (
	"fmt"

	"github.com/Kargones/dr-downloader/internal/pkg/console"
)

// EventSubscriber получает уведомления о стадиях обработки задания.
// Вызовы происходят синхронно в горутине Save.
type EventSubscriber interface {
	// OnDownloading вызывается перед началом загрузки.
	OnDownloading(url string)
	// OnConverting вызывается перед конвертацией в целевой формат.
	OnConverting(title, format string)
	// OnFinished вызывается после сохранения файла.
	OnFinished(title string)
	// OnFailed вызывается при ошибке на любой стадии.
	OnFailed(url string, err error)
}

// ConsoleSubscriber печатает стадии обработки в консоль.
type ConsoleSubscriber struct {
	out console.Console
}

// NewConsoleSubscriber создаёт подписчика, пишущего в указанную консоль.
func NewConsoleSubscriber(out console.Console) *ConsoleSubscriber {
	return &ConsoleSubscriber{out: out}
}

// OnDownloading печатает "Downloading <url>".
func (s *ConsoleSubscriber) OnDownloading(url string) {
	s.out.WriteLine("Downloading " + url)
}

// OnConverting печатает "Converting <title> to <format>".
func (s *ConsoleSubscriber) OnConverting(title, format string) {
	s.out.WriteLine(fmt.Sprintf("Converting %s to %s", title, format))
}

// OnFinished печатает "Finished downloading <title>".
func (s *ConsoleSubscriber) OnFinished(title string) {
	s.out.WriteLine("Finished downloading " + title)
}

// OnFailed печатает "Failed downloading <url>".
// Текст ошибки выводит оболочка, здесь он не дублируется.
func (s *ConsoleSubscriber) OnFailed(url string, _ error) {
	s.out.WriteLine(s.out.Paint(console.ColorRed, "Failed downloading "+url))
}

// NopSubscriber игнорирует все события.
type NopSubscriber struct{}

// OnDownloading ничего не делает.
func (NopSubscriber) OnDownloading(string) {}

// OnConverting ничего не делает.
func (NopSubscriber) OnConverting(string, string) {}

// OnFinished ничего не делает.
func (NopSubscriber) OnFinished(string) {}

// OnFailed ничего не делает.
func (NopSubscriber) OnFailed(string, error) {}
