package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaa/yoink/internal/adapters/ffmpeg"
	"github.com/jaa/yoink/internal/adapters/ytdlp"
	"github.com/jaa/yoink/internal/config"
	"github.com/jaa/yoink/internal/engine"
	"github.com/jaa/yoink/internal/exitcode"
	"github.com/jaa/yoink/internal/lyrics"
	"github.com/jaa/yoink/internal/musicbrainz"
	"github.com/jaa/yoink/internal/output"
	"github.com/jaa/yoink/internal/picker"
	"github.com/jaa/yoink/internal/tags"
)

func newSearchCommand(app *AppContext) *cobra.Command {
	var title string
	var artist string
	var album string
	var kind string
	var limit int
	var first bool
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "search [QUERY...]",
		Short: "Search MusicBrainz and fetch the chosen song or album",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedKind, err := parseSearchKind(kind)
			if err != nil {
				return withExitCode(exitcode.InvalidUsage, err)
			}
			title, album = foldQueryArgs(parsedKind, args, title, album)
			if parsedKind == searchKindSong && strings.TrimSpace(title) == "" {
				return withExitCode(exitcode.InvalidUsage, fmt.Errorf("a query or --title is required for song searches"))
			}
			if parsedKind == searchKindAlbum && strings.TrimSpace(album) == "" {
				return withExitCode(exitcode.InvalidUsage, fmt.Errorf("a query or --album is required for album searches"))
			}

			cfg, err := loadConfig(app)
			if err != nil {
				return withExitCode(exitcode.InvalidConfig, err)
			}
			if err := config.Validate(cfg); err != nil {
				return withExitCode(exitcode.InvalidConfig, err)
			}

			searchLimit := limit
			if searchLimit <= 0 {
				searchLimit = cfg.Defaults.SearchLimit
			}

			ctx, stop := signal.NotifyContext(context.Background(), interruptSignals()...)
			defer stop()

			emitter := newEmitter(app)
			client := musicbrainz.NewClient(userAgent(app))
			query := musicbrainz.SearchQuery{Title: title, Artist: artist, Album: album}

			emitEvent(emitter, output.EventSearchStarted,
				fmt.Sprintf("searching MusicBrainz for %s", describeQuery(query)),
				map[string]any{"kind": string(parsedKind), "limit": searchLimit})

			var jobs []engine.Job
			switch parsedKind {
			case searchKindSong:
				jobs, err = selectSongJob(ctx, app, emitter, client, query, searchLimit, first)
			case searchKindAlbum:
				jobs, err = selectAlbumJobs(ctx, app, emitter, client, query, searchLimit, first)
			}
			if err != nil {
				if errors.Is(err, picker.ErrCancelled) {
					fmt.Fprintln(app.IO.Out, "Selection canceled.")
					return nil
				}
				if errors.Is(err, context.Canceled) {
					return withExitCode(exitcode.Interrupted, fmt.Errorf("search interrupted"))
				}
				return withExitCode(exitcode.RuntimeFailure, err)
			}
			if len(jobs) == 0 {
				fmt.Fprintln(app.IO.Out, "No MusicBrainz matches found.")
				return nil
			}

			runnerStdout := app.IO.Out
			runnerStderr := app.IO.ErrOut
			if app.Opts.JSON {
				runnerStdout = app.IO.ErrOut
			} else if app.Opts.Quiet || !app.Opts.Verbose {
				runnerStdout = io.Discard
				runnerStderr = io.Discard
			}

			runner := engine.NewSubprocessRunner(runnerStdout, runnerStderr)

			tagger := &tags.Service{
				Cover:       client,
				Lyrics:      lyrics.NewClient(userAgent(app)),
				EmbedCover:  cfg.Defaults.EmbedCover,
				EmbedLyrics: cfg.Defaults.EmbedLyrics,
			}
			fetcher := engine.NewFetcher(runner,
				ytdlp.New(cfg.Tools.YTDLPBin),
				ffmpeg.New(cfg.Tools.FFmpegBin),
				tagger, emitter)

			result, runErr := fetcher.Fetch(ctx, cfg, jobs, engine.FetchOptions{
				DryRun:          app.Opts.DryRun,
				TimeoutOverride: timeout,
			})
			if runErr != nil {
				if errors.Is(runErr, engine.ErrInterrupted) {
					return withExitCode(exitcode.Interrupted, runErr)
				}
				return withExitCode(exitcode.RuntimeFailure, runErr)
			}

			if result.DependencyFailures > 0 {
				return withExitCode(exitcode.MissingDependency, fmt.Errorf("fetch finished with missing dependencies (%d)", result.DependencyFailures))
			}
			if result.Failed > 0 {
				return withExitCode(exitcode.PartialSuccess, fmt.Errorf("fetch finished with failed tracks (%d/%d)", result.Failed, result.Total))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Song title to search for")
	cmd.Flags().StringVar(&artist, "artist", "", "Artist name to narrow the search")
	cmd.Flags().StringVar(&album, "album", "", "Album/release title")
	cmd.Flags().StringVar(&kind, "kind", "song", "Search kind: song or album")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum search results (defaults to config search_limit)")
	cmd.Flags().BoolVar(&first, "first", false, "Skip the picker and take the best-scored match")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Override per-track command timeout (e.g. 10m)")
	return cmd
}

type searchKind string

const (
	searchKindSong  searchKind = "song"
	searchKindAlbum searchKind = "album"
)

// foldQueryArgs treats bare arguments as a free-text query for the field
// the search kind matches on: the release title for albums, the recording
// title otherwise. An explicit flag wins over positional args.
func foldQueryArgs(kind searchKind, args []string, title, album string) (string, string) {
	if len(args) == 0 {
		return title, album
	}
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return title, album
	}
	if kind == searchKindAlbum {
		if strings.TrimSpace(album) == "" {
			album = query
		}
		return title, album
	}
	if strings.TrimSpace(title) == "" {
		title = query
	}
	return title, album
}

func parseSearchKind(raw string) (searchKind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "song":
		return searchKindSong, nil
	case "album":
		return searchKindAlbum, nil
	default:
		return "", fmt.Errorf("invalid --kind %q (expected: song, album)", raw)
	}
}

func selectSongJob(ctx context.Context, app *AppContext, emitter output.EventEmitter, client *musicbrainz.Client, query musicbrainz.SearchQuery, limit int, first bool) ([]engine.Job, error) {
	recordings, err := client.SearchRecordings(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	emitEvent(emitter, output.EventSearchResults,
		fmt.Sprintf("found %d recording(s)", len(recordings)),
		map[string]any{"count": len(recordings)})
	if len(recordings) == 0 {
		return nil, nil
	}

	idx := 0
	if !first && interactiveAllowed(app) {
		idx, err = picker.Run("Select a recording", recordingItems(recordings), app.IO.In, app.IO.Out)
		if err != nil {
			return nil, err
		}
	}
	return []engine.Job{jobFromRecording(recordings[idx], "track-1")}, nil
}

func selectAlbumJobs(ctx context.Context, app *AppContext, emitter output.EventEmitter, client *musicbrainz.Client, query musicbrainz.SearchQuery, limit int, first bool) ([]engine.Job, error) {
	releases, err := client.SearchReleases(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	emitEvent(emitter, output.EventSearchResults,
		fmt.Sprintf("found %d release(s)", len(releases)),
		map[string]any{"count": len(releases)})
	if len(releases) == 0 {
		return nil, nil
	}

	idx := 0
	if !first && interactiveAllowed(app) {
		idx, err = picker.Run("Select a release", releaseItems(releases), app.IO.In, app.IO.Out)
		if err != nil {
			return nil, err
		}
	}

	details, err := client.GetReleaseTracks(ctx, releases[idx].ID)
	if err != nil {
		return nil, err
	}
	return jobsFromRelease(details), nil
}

func recordingItems(recordings []musicbrainz.Recording) []picker.Item {
	items := make([]picker.Item, 0, len(recordings))
	for _, rec := range recordings {
		detail := rec.Album
		if year := tags.YearFromDate(rec.Date); year != "" {
			detail = strings.TrimSpace(detail + " (" + year + ")")
		}
		if length := formatLength(rec.LengthMS); length != "" {
			detail = strings.TrimSpace(detail + " " + length)
		}
		if rec.Disambiguation != "" {
			detail = strings.TrimSpace(detail + " [" + rec.Disambiguation + "]")
		}
		items = append(items, picker.Item{
			Title:    rec.Title,
			Subtitle: rec.Artist,
			Detail:   detail,
		})
	}
	return items
}

func releaseItems(releases []musicbrainz.Release) []picker.Item {
	items := make([]picker.Item, 0, len(releases))
	for _, rel := range releases {
		detail := ""
		if year := tags.YearFromDate(rel.Date); year != "" {
			detail = year
		}
		if rel.Country != "" {
			detail = strings.TrimSpace(detail + " " + rel.Country)
		}
		if rel.TrackCount > 0 {
			detail = strings.TrimSpace(detail + fmt.Sprintf(" %d tracks", rel.TrackCount))
		}
		items = append(items, picker.Item{
			Title:    rel.Title,
			Subtitle: rel.Artist,
			Detail:   detail,
		})
	}
	return items
}

func jobFromRecording(rec musicbrainz.Recording, id string) engine.Job {
	return engine.Job{
		ID:            id,
		Title:         rec.Title,
		Artist:        rec.Artist,
		Album:         rec.Album,
		TrackNumber:   rec.TrackNumber,
		TotalTracks:   rec.TotalTracks,
		Year:          rec.Date,
		RecordingMBID: rec.ID,
		ReleaseMBID:   rec.ReleaseID,
	}
}

func jobsFromRelease(details *musicbrainz.ReleaseDetails) []engine.Job {
	jobs := make([]engine.Job, 0, len(details.Tracks))
	for _, track := range details.Tracks {
		jobs = append(jobs, engine.Job{
			ID:            fmt.Sprintf("track-%d", track.Position),
			Title:         track.Title,
			Artist:        track.Artist,
			Album:         details.Title,
			TrackNumber:   track.Position,
			TotalTracks:   details.TrackCount,
			Year:          details.Date,
			RecordingMBID: track.RecordingID,
			ReleaseMBID:   details.ID,
		})
	}
	return jobs
}

func formatLength(ms int) string {
	if ms <= 0 {
		return ""
	}
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func describeQuery(query musicbrainz.SearchQuery) string {
	parts := []string{}
	if query.Title != "" {
		parts = append(parts, fmt.Sprintf("title=%q", query.Title))
	}
	if query.Artist != "" {
		parts = append(parts, fmt.Sprintf("artist=%q", query.Artist))
	}
	if query.Album != "" {
		parts = append(parts, fmt.Sprintf("album=%q", query.Album))
	}
	return strings.Join(parts, " ")
}

func emitEvent(emitter output.EventEmitter, name output.EventName, message string, details map[string]any) {
	_ = emitter.Emit(output.Event{
		Timestamp: time.Now(),
		Level:     output.LevelInfo,
		Event:     name,
		Message:   message,
		Details:   details,
	})
}
