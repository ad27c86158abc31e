package progress

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// barWidth - ширина progress bar в символах.
const barWidth = 30

// TTYProgress реализует интерактивный progress bar для терминала.
type TTYProgress struct {
	mu        sync.Mutex
	opts      Options
	startTime time.Time
	current   int64
	lastDraw  time.Time
	message   string
}

// NewTTYProgress создаёт новый TTY progress bar.
func NewTTYProgress(opts Options) *TTYProgress {
	return &TTYProgress{opts: opts}
}

// Start инициализирует progress bar с начальным сообщением.
func (p *TTYProgress) Start(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.startTime = time.Now()
	p.message = message
	p.current = 0
	p.lastDraw = time.Time{}
}

// Update обновляет текущий прогресс и перерисовывает bar.
func (p *TTYProgress) Update(current int64, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = current
	if message != "" {
		p.message = message
	}

	if p.opts.ThrottleInterval > 0 && time.Since(p.lastDraw) < p.opts.ThrottleInterval {
		return
	}
	p.lastDraw = time.Now()

	p.draw()
}

// SetTotal устанавливает общее количество байт.
func (p *TTYProgress) SetTotal(total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.opts.Total = total
}

// Finish дорисовывает bar до 100% и переводит строку.
func (p *TTYProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.opts.Total > 0 {
		p.current = p.opts.Total
	}
	p.draw()

	if p.opts.Output != nil {
		_, _ = fmt.Fprintln(p.opts.Output) //nolint:errcheck // terminal output
	}
}

// draw отрисовывает строку вида:
//
//	[=====>    ] 45% 12.0 MiB/26.7 MiB | ETA: 30s | Song title
func (p *TTYProgress) draw() {
	if p.opts.Output == nil {
		return
	}

	percent := percentOf(p.current, p.opts.Total)
	line := fmt.Sprintf("\r%s %d%%", renderBar(percent), percent)

	if p.opts.Total > 0 {
		line += fmt.Sprintf(" %s/%s", FormatBytes(p.current), FormatBytes(p.opts.Total))
	} else if p.current > 0 {
		line += " " + FormatBytes(p.current)
	}

	if p.opts.ShowETA && p.opts.Total > 0 && p.current > 0 {
		line += " | ETA: " + p.calculateETA()
	}
	if p.message != "" {
		line += " | " + p.message
	}

	// Очистка до конца строки
	line += "\033[K"

	_, _ = fmt.Fprint(p.opts.Output, line) //nolint:errcheck // terminal output
}

// renderBar создаёт визуальное представление progress bar.
// При percent=0 bar пустой, без стрелки.
func renderBar(percent int) string {
	filled := percent * barWidth / 100
	if filled > barWidth {
		filled = barWidth
	}

	var bar strings.Builder
	bar.WriteString("[")
	for i := 0; i < barWidth; i++ {
		switch {
		case i < filled:
			bar.WriteString("=")
		case i == filled && filled > 0 && filled < barWidth:
			bar.WriteString(">")
		default:
			bar.WriteString(" ")
		}
	}
	bar.WriteString("]")
	return bar.String()
}

// calculateETA вычисляет оставшееся время по средней скорости с начала загрузки.
func (p *TTYProgress) calculateETA() string {
	remainingWork := p.opts.Total - p.current
	if p.current <= 0 || remainingWork <= 0 {
		return "<1s"
	}

	elapsed := time.Since(p.startTime)
	remaining := time.Duration(float64(elapsed) / float64(p.current) * float64(remainingWork)).Round(time.Second)
	if remaining < time.Second {
		return "<1s"
	}
	return FormatDuration(remaining)
}
