package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jaa/yoink/internal/config"
	"github.com/jaa/yoink/internal/exitcode"
	"github.com/jaa/yoink/internal/media"
	"github.com/jaa/yoink/internal/output"
)

func newGetCommand(app *AppContext) *cobra.Command {
	var video bool
	var playlist bool
	var listOnly bool
	var outDir string

	cmd := &cobra.Command{
		Use:   "get URL...",
		Short: "Download media URLs (YouTube, Bilibili, anything yt-dlp supports)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(app)
			if err != nil {
				return withExitCode(exitcode.InvalidConfig, err)
			}
			if err := config.Validate(cfg); err != nil {
				return withExitCode(exitcode.InvalidConfig, err)
			}

			destDir := outDir
			if destDir == "" {
				destDir, err = config.ExpandPath(cfg.Defaults.MusicDir)
				if err != nil {
					return withExitCode(exitcode.InvalidConfig, fmt.Errorf("resolve music dir: %w", err))
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), interruptSignals()...)
			defer stop()

			if listOnly {
				return listPlaylists(ctx, app, args)
			}

			downloader := &media.Downloader{}
			if !app.Opts.JSON && !app.Opts.Quiet {
				downloader.Progress = output.NewProgressPrinter(app.IO.Out)
			}

			opts := media.Options{
				OutputDir:          destDir,
				Video:              video,
				Playlist:           playlist,
				EmbedMetadata:      true,
				EmbedThumbnail:     !video && cfg.Defaults.EmbedCover,
				CookiesFromBrowser: cfg.Defaults.CookiesFromBrowser,
			}

			failed := 0
			for _, url := range args {
				if ctx.Err() != nil {
					return withExitCode(exitcode.Interrupted, fmt.Errorf("download interrupted"))
				}

				if app.Opts.DryRun {
					fmt.Fprintf(app.IO.Out, "dry-run: would download %s to %s\n", url, destDir)
					continue
				}

				result, downloadErr := downloader.Download(ctx, url, opts)
				if downloadErr != nil {
					if errors.Is(downloadErr, context.Canceled) || ctx.Err() != nil {
						return withExitCode(exitcode.Interrupted, fmt.Errorf("download interrupted"))
					}
					failed++
					fmt.Fprintf(app.IO.ErrOut, "ERROR: %v\n", downloadErr)
					if !cfg.Defaults.ContinueOnError {
						break
					}
					continue
				}

				name := result.Filename
				if name == "" {
					name = result.Title
				}
				fmt.Fprintf(app.IO.Out, "Downloaded %s\n", name)
			}

			if failed == len(args) && failed > 0 {
				return withExitCode(exitcode.RuntimeFailure, fmt.Errorf("all %d download(s) failed", failed))
			}
			if failed > 0 {
				return withExitCode(exitcode.PartialSuccess, fmt.Errorf("finished with %d failed download(s)", failed))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&video, "video", false, "Keep the full mp4 video instead of extracting mp3 audio")
	cmd.Flags().BoolVar(&playlist, "playlist", false, "Download every entry of a playlist URL")
	cmd.Flags().BoolVar(&listOnly, "list", false, "List playlist entries without downloading")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (defaults to music_dir)")
	return cmd
}

func listPlaylists(ctx context.Context, app *AppContext, urls []string) error {
	for _, url := range urls {
		entries, err := media.ListPlaylist(ctx, url)
		if err != nil {
			return withExitCode(exitcode.RuntimeFailure, err)
		}
		for i, entry := range entries {
			fmt.Fprintf(app.IO.Out, "%3d  %s  %s\n", i+1, entry.VideoID, entry.Title)
		}
	}
	return nil
}
