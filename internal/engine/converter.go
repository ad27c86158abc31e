package engine

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Converter перекодирует файл в целевой формат.
type Converter interface {
	Convert(ctx context.Context, src, dst, format string) error
}

// commandRunner запускает внешнюю команду и возвращает её stderr.
type commandRunner func(ctx context.Context, name string, args ...string) (stderr []byte, err error)

// FFmpegConverter перекодирует файлы через ffmpeg.
type FFmpegConverter struct {
	executable string
	run        commandRunner
}

// NewFFmpegConverter создаёт конвертер. executable - путь к ffmpeg.
func NewFFmpegConverter(executable string) *FFmpegConverter {
	return &FFmpegConverter{executable: executable, run: runCommand}
}

// Convert запускает ffmpeg и ждёт завершения.
// При ошибке в сообщение включается хвост stderr ffmpeg.
func (c *FFmpegConverter) Convert(ctx context.Context, src, dst, format string) error {
	stderr, err := c.run(ctx, c.executable, ffmpegArgs(src, dst, format)...)
	if err != nil {
		if msg := lastLine(stderr); msg != "" {
			return fmt.Errorf("ffmpeg: %w: %s", err, msg)
		}
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}

// ffmpegArgs собирает аргументы командной строки ffmpeg для целевого формата.
func ffmpegArgs(src, dst, format string) []string {
	args := []string{"-hide_banner", "-loglevel", "error", "-y", "-i", src}
	args = append(args, codecArgs(format)...)
	return append(args, dst)
}

func codecArgs(format string) []string {
	switch strings.ToLower(format) {
	case FormatMP3:
		return []string{"-vn", "-c:a", "libmp3lame", "-q:a", "2"}
	case FormatM4A:
		return []string{"-vn", "-c:a", "aac", "-b:a", "192k"}
	case FormatWAV:
		return []string{"-vn", "-c:a", "pcm_s16le"}
	case FormatFLAC:
		return []string{"-vn", "-c:a", "flac"}
	case FormatOGG:
		return []string{"-vn", "-c:a", "libvorbis", "-q:a", "5"}
	case FormatOpus:
		return []string{"-vn", "-c:a", "libopus", "-b:a", "128k"}
	case FormatMP4:
		return []string{"-c:v", "libx264", "-preset", "medium", "-crf", "23",
			"-c:a", "aac", "-b:a", "128k", "-movflags", "+faststart"}
	case FormatWebM:
		return []string{"-c:v", "libvpx-vp9", "-crf", "32", "-b:v", "0", "-c:a", "libopus"}
	default:
		// mkv принимает любые дорожки без перекодирования
		return []string{"-c", "copy"}
	}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // путь к ffmpeg из конфигурации
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.Bytes(), err
}

func lastLine(b []byte) string {
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
