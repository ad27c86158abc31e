package logging

// NopLogger отбрасывает все записи. Его подставляют engine, shell.Loop
// и обработчики команд, когда логгер не передан, а также unit-тесты.
type NopLogger struct{}

// NewNopLogger возвращает молчащий Logger.
func NewNopLogger() Logger {
	return &NopLogger{}
}

func (n *NopLogger) Debug(_ string, _ ...any) {}

func (n *NopLogger) Info(_ string, _ ...any) {}

func (n *NopLogger) Warn(_ string, _ ...any) {}

func (n *NopLogger) Error(_ string, _ ...any) {}

// With возвращает тот же экземпляр: атрибуты команды или URL всё равно не пишутся.
func (n *NopLogger) With(_ ...any) Logger {
	return n
}
