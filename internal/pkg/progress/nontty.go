package progress

import (
	"sync"
	"time"

	"github.com/Kargones/dr-downloader/internal/pkg/logging"
)

// NonTTYProgress реализует progress для non-TTY режима (pipes, перенаправление в файл).
// Пишет запись в лог при пересечении каждой границы 10%.
type NonTTYProgress struct {
	mu                  sync.Mutex
	opts                Options
	startTime           time.Time
	lastReportedPercent int
	message             string
	log                 logging.Logger
}

// NewNonTTYProgress создаёт новый non-TTY progress.
func NewNonTTYProgress(opts Options) *NonTTYProgress {
	log := opts.Logger
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &NonTTYProgress{opts: opts, log: log}
}

// Start инициализирует progress с начальным сообщением.
func (p *NonTTYProgress) Start(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.message = message
	p.lastReportedPercent = 0
	p.log.Info("загрузка начата", "message", message)
}

// Update пишет прогресс в лог при пересечении 10% границы.
func (p *NonTTYProgress) Update(current int64, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if message != "" {
		p.message = message
	}
	if p.opts.Total == 0 {
		return
	}

	threshold := (percentOf(current, p.opts.Total) / 10) * 10
	if threshold > p.lastReportedPercent && threshold < 100 {
		p.lastReportedPercent = threshold
		p.log.Info("прогресс загрузки",
			"percent", threshold,
			"downloaded", FormatBytes(current),
			"elapsed", FormatDuration(time.Since(p.startTime)),
			"message", p.message)
	}
}

// SetTotal устанавливает общее количество байт.
func (p *NonTTYProgress) SetTotal(total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.Total = total
}

// Finish пишет итоговую запись в лог.
func (p *NonTTYProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.log.Info("загрузка завершена", "duration", FormatDuration(time.Since(p.startTime)))
}
