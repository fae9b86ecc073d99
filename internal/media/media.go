// Package media downloads audio or video from media site URLs.
package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	ytdlp "github.com/lrstanley/go-ytdlp"

	"github.com/jaa/yoink/internal/output"
)

// Options controls a single URL download.
type Options struct {
	// OutputDir receives the downloaded file. Required.
	OutputDir string
	// Video keeps the full mp4 video instead of extracting mp3 audio.
	Video bool
	// Playlist downloads every entry when the URL points at a playlist.
	// Off by default; a video URL carrying playlist context downloads
	// only the video itself.
	Playlist bool
	// EmbedMetadata writes title/uploader metadata into the container.
	EmbedMetadata bool
	// EmbedThumbnail embeds the site thumbnail as cover art.
	EmbedThumbnail bool
	// CookiesFromBrowser passes browser cookies through for members-only
	// or age-gated content.
	CookiesFromBrowser string
}

// Result describes what a download produced.
type Result struct {
	Filename string
	Title    string
}

// Downloader fetches media URLs through the yt-dlp wrapper, reporting
// progress through the configured printer.
type Downloader struct {
	Progress *output.ProgressPrinter
}

// Download fetches a single URL into opts.OutputDir and returns the produced
// file. The wrapper shells out to yt-dlp underneath, so yt-dlp and ffmpeg
// must be installed.
func (d *Downloader) Download(ctx context.Context, rawURL string, opts Options) (Result, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Result{}, fmt.Errorf("url is empty")
	}
	if strings.TrimSpace(opts.OutputDir) == "" {
		return Result{}, fmt.Errorf("output directory is empty")
	}

	cmd := ytdlp.New().
		ForceOverwrites().
		RestrictFilenames().
		Format(FormatSelector(opts.Video)).
		Output(OutputTemplate(opts.OutputDir))

	if !opts.Video {
		cmd = cmd.ExtractAudio().AudioFormat("mp3")
	}
	if !opts.Playlist {
		cmd = cmd.NoPlaylist()
	}
	if opts.EmbedMetadata {
		cmd = cmd.EmbedMetadata()
	}
	if opts.EmbedThumbnail {
		cmd = cmd.EmbedThumbnail()
	}
	if browser := strings.TrimSpace(opts.CookiesFromBrowser); browser != "" {
		cmd = cmd.CookiesFromBrowser(browser)
	}

	if d.Progress != nil {
		cmd.ProgressFunc(500*time.Millisecond, func(update ytdlp.ProgressUpdate) {
			label := rawURL
			if update.Info != nil && update.Info.Title != nil && *update.Info.Title != "" {
				label = *update.Info.Title
			}
			d.Progress.Update(label, int64(update.DownloadedBytes), int64(update.TotalBytes), update.Started)
		})
	}

	res, err := cmd.Run(ctx, rawURL)
	if d.Progress != nil {
		d.Progress.Finish()
	}
	if err != nil {
		return Result{}, fmt.Errorf("downloading %s: %w", rawURL, err)
	}

	result := Result{}
	infos, infoErr := res.GetExtractedInfo()
	if infoErr != nil {
		return result, nil
	}
	for _, info := range infos {
		if info.Filename != nil && *info.Filename != "" {
			result.Filename = *info.Filename
		}
		if info.Title != nil && result.Title == "" {
			result.Title = *info.Title
		}
	}
	return result, nil
}

// FormatSelector picks the yt-dlp format string for the requested mode.
func FormatSelector(video bool) string {
	if video {
		return "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
	}
	return "bestaudio/best"
}

// OutputTemplate builds the yt-dlp output template rooted at dir.
func OutputTemplate(dir string) string {
	return filepath.Join(dir, "%(title)s.%(ext)s")
}
