package progress

import (
	"os"
	"time"

	"github.com/Kargones/dr-downloader/internal/pkg/logging"
)

// DefaultThrottleInterval - интервал throttling по умолчанию.
const DefaultThrottleInterval = 250 * time.Millisecond

// New создаёт подходящую реализацию Progress на основе Options.
// Логика выбора:
//  1. Disabled → NoopProgress
//  2. Output - терминал → TTYProgress
//  3. Иначе → NonTTYProgress (запись в лог каждые 10%)
func New(opts Options) Progress {
	if opts.Disabled {
		return NewNoOp()
	}
	if opts.ThrottleInterval == 0 {
		opts.ThrottleInterval = DefaultThrottleInterval
	}
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNopLogger()
	}

	if IsTTY(opts.Output) {
		return NewTTYProgress(opts)
	}
	return NewNonTTYProgress(opts)
}
