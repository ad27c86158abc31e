package engine

import (
	"slices"
	"strings"
)

// Поддерживаемые форматы результата.
const (
	FormatMP3  = "mp3"
	FormatM4A  = "m4a"
	FormatWAV  = "wav"
	FormatFLAC = "flac"
	FormatOGG  = "ogg"
	FormatOpus = "opus"
	FormatMP4  = "mp4"
	FormatMKV  = "mkv"
	FormatWebM = "webm"
)

// DefaultFormat - формат по умолчанию, если пользователь его не указал.
const DefaultFormat = FormatMP3

var audioFormats = []string{FormatMP3, FormatM4A, FormatWAV, FormatFLAC, FormatOGG, FormatOpus}

var videoFormats = []string{FormatMP4, FormatMKV, FormatWebM}

// SupportedFormats возвращает список всех поддерживаемых форматов.
func SupportedFormats() []string {
	return append(slices.Clone(audioFormats), videoFormats...)
}

// IsSupportedFormat проверяет формат без учёта регистра.
func IsSupportedFormat(format string) bool {
	return slices.Contains(SupportedFormats(), strings.ToLower(format))
}

// IsAudioFormat сообщает, является ли формат аудио-only.
func IsAudioFormat(format string) bool {
	return slices.Contains(audioFormats, strings.ToLower(format))
}

// formatSelector возвращает селектор yt-dlp для целевого формата.
// Для аудио скачивается только звуковая дорожка, для видео - лучшее видео со звуком.
func formatSelector(format string) string {
	if IsAudioFormat(format) {
		return "bestaudio/best"
	}
	return "bestvideo*+bestaudio/best"
}
