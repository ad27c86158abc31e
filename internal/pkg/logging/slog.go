package logging

import "log/slog"

// SlogAdapter оборачивает *slog.Logger, построенный NewLogger из секции
// logging (DR_LOG_*). Через него пишут диспетчер, движок загрузки и кеш.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter оборачивает готовый slog.Logger.
// nil заменяется на slog.Default(), о чём пишется предупреждение.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
		logger.Warn("logging: NewSlogAdapter получил nil, используется slog.Default()")
	}
	return &SlogAdapter{logger: logger}
}

func (s *SlogAdapter) Debug(msg string, args ...any) {
	s.logger.Debug(msg, args...)
}

func (s *SlogAdapter) Info(msg string, args ...any) {
	s.logger.Info(msg, args...)
}

func (s *SlogAdapter) Warn(msg string, args ...any) {
	s.logger.Warn(msg, args...)
}

func (s *SlogAdapter) Error(msg string, args ...any) {
	s.logger.Error(msg, args...)
}

// With возвращает дочерний логгер с постоянными атрибутами, например
// KeyCommand или KeyTraceID. Родитель не меняется.
func (s *SlogAdapter) With(args ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(args...)}
}
