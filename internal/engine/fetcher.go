package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// FetchRequest описывает одну загрузку исходного медиа.
type FetchRequest struct {
	URL     string
	Format  string
	WorkDir string
	// OnProgress вызывается при обновлении прогресса; может быть nil.
	OnProgress func(FetchProgress)
}

// FetchProgress - снимок прогресса загрузки.
type FetchProgress struct {
	Downloaded int64
	Total      int64
	Title      string
	ETA        time.Duration
}

// Fetched - результат загрузки исходного файла.
type Fetched struct {
	Path  string
	Title string
}

// Fetcher загружает исходное медиа по URL в рабочую директорию.
type Fetcher interface {
	Fetch(ctx context.Context, req FetchRequest) (*Fetched, error)
}

// progressInterval - частота вызова ProgressFunc у yt-dlp.
const progressInterval = 250 * time.Millisecond

// YtdlpFetcher загружает медиа через yt-dlp.
type YtdlpFetcher struct {
	executable string
}

// NewYtdlpFetcher создаёт Fetcher. executable - путь к yt-dlp;
// пустая строка означает поиск в PATH.
func NewYtdlpFetcher(executable string) *YtdlpFetcher {
	return &YtdlpFetcher{executable: executable}
}

// Fetch загружает одно видео (без плейлиста) в req.WorkDir.
func (f *YtdlpFetcher) Fetch(ctx context.Context, req FetchRequest) (*Fetched, error) {
	dl := ytdlp.New().
		NoPlaylist().
		ForceOverwrites().
		RestrictFilenames().
		Format(formatSelector(req.Format)).
		Output(filepath.Join(req.WorkDir, "%(title)s.%(ext)s"))

	if f.executable != "" {
		dl.SetExecutable(f.executable)
	}

	var title string
	if req.OnProgress != nil {
		dl.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
			if update.Info != nil && update.Info.Title != nil {
				title = *update.Info.Title
			}
			req.OnProgress(FetchProgress{
				Downloaded: int64(update.DownloadedBytes),
				Total:      int64(update.TotalBytes),
				Title:      title,
				ETA:        update.ETA(),
			})
		})
	}

	result, err := dl.Run(ctx, req.URL)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp: %w", err)
	}

	fetched := &Fetched{Title: title}
	if info, infoErr := result.GetExtractedInfo(); infoErr == nil && len(info) > 0 {
		if info[0].Filename != nil {
			fetched.Path = *info[0].Filename
		}
		if info[0].Title != nil && *info[0].Title != "" {
			fetched.Title = *info[0].Title
		}
	}

	// После постобработки (слияние дорожек) итоговое имя может отличаться
	// от того, что вернул yt-dlp в extracted info.
	if fetched.Path == "" || !fileExists(fetched.Path) {
		path, findErr := largestFile(req.WorkDir)
		if findErr != nil {
			return nil, findErr
		}
		fetched.Path = path
	}
	if fetched.Title == "" {
		base := filepath.Base(fetched.Path)
		fetched.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return fetched, nil
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// errNothingDownloaded возвращается, если в рабочей директории нет файлов.
var errNothingDownloaded = errors.New("yt-dlp finished but no file was produced")

// largestFile находит самый большой обычный файл в директории,
// пропуская незавершённые загрузки (*.part, *.ytdl).
func largestFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var (
		best     string
		bestSize int64 = -1
	)
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".part") || strings.HasSuffix(name, ".ytdl") {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		if fi.Size() > bestSize {
			best, bestSize = filepath.Join(dir, name), fi.Size()
		}
	}
	if best == "" {
		return "", errNothingDownloaded
	}
	return best, nil
}
