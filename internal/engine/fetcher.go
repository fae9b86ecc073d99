package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jaa/yoink/internal/config"
	"github.com/jaa/yoink/internal/library"
	"github.com/jaa/yoink/internal/output"
)

var ErrInterrupted = errors.New("fetch interrupted")

// audio containers yt-dlp may produce before transcoding.
var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".m4a":  {},
	".webm": {},
	".opus": {},
	".ogg":  {},
	".mp4":  {},
}

// SearchPlan is one attempt in the variant retry ladder.
type SearchPlan struct {
	Name string
	Spec ExecSpec
}

type SearchPlanner interface {
	Binary() string
	PlanSearch(query string, destDir string, defaults config.Defaults, tools config.Tools, timeout time.Duration) ([]SearchPlan, error)
}

type Transcoder interface {
	Binary() string
	PlanTranscode(src string, dst string, timeout time.Duration) (ExecSpec, error)
}

type Tagger interface {
	TagFile(ctx context.Context, path string, job Job) error
}

// Fetcher drives the song fetch pipeline: yt-dlp search download, optional
// ffmpeg transcode, library placement, tagging. Jobs run one at a time.
type Fetcher struct {
	Runner    ExecRunner
	Search    SearchPlanner
	Transcode Transcoder
	Tagger    Tagger
	Emitter   output.EventEmitter
	Now       func() time.Time
}

func NewFetcher(runner ExecRunner, search SearchPlanner, transcode Transcoder, tagger Tagger, emitter output.EventEmitter) *Fetcher {
	if emitter == nil {
		emitter = noOpEmitter{}
	}
	return &Fetcher{
		Runner:    runner,
		Search:    search,
		Transcode: transcode,
		Tagger:    tagger,
		Emitter:   emitter,
		Now:       time.Now,
	}
}

type noOpEmitter struct{}

func (noOpEmitter) Emit(event output.Event) error {
	return nil
}

func (f *Fetcher) Fetch(ctx context.Context, cfg config.Config, jobs []Job, opts FetchOptions) (FetchResult, error) {
	result := FetchResult{Total: len(jobs)}
	if f.Now == nil {
		f.Now = time.Now
	}

	musicDir, err := config.ExpandPath(cfg.Defaults.MusicDir)
	if err != nil {
		return result, fmt.Errorf("resolve music dir: %w", err)
	}
	if err := os.MkdirAll(musicDir, 0o755); err != nil {
		return result, fmt.Errorf("create music dir %s: %w", musicDir, err)
	}

	timeout := time.Duration(cfg.Defaults.CommandTimeoutSeconds) * time.Second
	if opts.TimeoutOverride > 0 {
		timeout = opts.TimeoutOverride
	}

	for _, job := range jobs {
		if ctx.Err() != nil {
			result.Interrupted = true
			break
		}

		result.Attempted++
		if err := f.fetchOne(ctx, cfg, musicDir, job, timeout, opts); err != nil {
			if errors.Is(err, ErrInterrupted) {
				result.Failed++
				result.Interrupted = true
				break
			}
			var depErr *missingBinaryError
			if errors.As(err, &depErr) {
				result.DependencyFailures++
			}
			result.Failed++
			f.emit(output.LevelError, output.EventJobFailed, job.ID, err.Error(), nil)
			if !cfg.Defaults.ContinueOnError {
				break
			}
			continue
		}
		result.Succeeded++
	}

	f.emit(output.LevelInfo, output.EventRunFinished, "",
		fmt.Sprintf("fetched %d/%d track(s), %d failed", result.Succeeded, result.Total, result.Failed),
		map[string]any{
			"total":     result.Total,
			"attempted": result.Attempted,
			"succeeded": result.Succeeded,
			"failed":    result.Failed,
		})

	if result.Interrupted {
		return result, ErrInterrupted
	}
	return result, nil
}

type missingBinaryError struct {
	binary string
}

func (e *missingBinaryError) Error() string {
	return fmt.Sprintf("%s not found in PATH (run 'yoink doctor')", e.binary)
}

func (f *Fetcher) fetchOne(ctx context.Context, cfg config.Config, musicDir string, job Job, timeout time.Duration, opts FetchOptions) error {
	query := searchQuery(job)
	plans, err := f.Search.PlanSearch(query, musicDir, cfg.Defaults, cfg.Tools, timeout)
	if err != nil {
		return fmt.Errorf("plan search: %w", err)
	}
	if len(plans) == 0 {
		return fmt.Errorf("no search plans for query %q", query)
	}

	f.emit(output.LevelInfo, output.EventJobStarted, job.ID,
		fmt.Sprintf("[%s] searching YouTube: %s", job.ID, query),
		map[string]any{"query": query})

	if opts.DryRun {
		f.emit(output.LevelInfo, output.EventTrackFetched, job.ID,
			fmt.Sprintf("[%s] dry-run: %s", job.ID, plans[0].Spec.DisplayCommand), nil)
		return nil
	}

	baselineArtifacts, err := snapshotArtifacts(musicDir)
	if err != nil {
		return fmt.Errorf("snapshot artifacts: %w", err)
	}
	baselineAudio, err := snapshotAudioFiles(musicDir)
	if err != nil {
		return fmt.Errorf("snapshot music dir: %w", err)
	}

	downloadErr := f.runVariants(ctx, job, plans)
	if downloadErr != nil {
		f.sweepArtifacts(job.ID, musicDir, baselineArtifacts)
		return downloadErr
	}

	produced, err := newestProducedAudio(musicDir, baselineAudio)
	if err != nil {
		f.sweepArtifacts(job.ID, musicDir, baselineArtifacts)
		return err
	}

	if !strings.EqualFold(filepath.Ext(produced), ".mp3") {
		converted, transcodeErr := f.transcodeToMP3(ctx, job, produced, timeout)
		if transcodeErr != nil {
			f.sweepArtifacts(job.ID, musicDir, baselineArtifacts)
			return transcodeErr
		}
		if removeErr := os.Remove(produced); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			f.emit(output.LevelWarn, output.EventJobProgress, job.ID,
				fmt.Sprintf("[%s] could not remove source file %s: %v", job.ID, produced, removeErr), nil)
		}
		produced = converted
	}

	finalPath, err := f.placeInLibrary(cfg, musicDir, job, produced)
	if err != nil {
		return err
	}

	if f.Tagger != nil {
		if tagErr := f.Tagger.TagFile(ctx, finalPath, job); tagErr != nil {
			// The file is already in place; a tagging failure downgrades to a warning.
			f.emit(output.LevelWarn, output.EventTrackTagged, job.ID,
				fmt.Sprintf("[%s] tagging failed: %v", job.ID, tagErr), nil)
		} else {
			f.emit(output.LevelInfo, output.EventTrackTagged, job.ID,
				fmt.Sprintf("[%s] tagged %s", job.ID, filepath.Base(finalPath)), nil)
		}
	}

	f.emit(output.LevelInfo, output.EventTrackFetched, job.ID,
		fmt.Sprintf("[%s] saved %s", job.ID, finalPath),
		map[string]any{"path": finalPath})
	return nil
}

func (f *Fetcher) runVariants(ctx context.Context, job Job, plans []SearchPlan) error {
	var lastResult ExecResult
	for _, plan := range plans {
		if ctx.Err() != nil {
			return ErrInterrupted
		}

		f.emit(output.LevelInfo, output.EventJobProgress, job.ID,
			fmt.Sprintf("[%s] trying variant %s", job.ID, plan.Name),
			map[string]any{"variant": plan.Name})

		result := f.Runner.Run(ctx, plan.Spec)
		if result.ExitCode == 0 {
			return nil
		}
		if result.Interrupted {
			return ErrInterrupted
		}
		if result.ExitCode == 127 {
			return &missingBinaryError{binary: f.Search.Binary()}
		}
		if result.TimedOut {
			f.emit(output.LevelWarn, output.EventJobProgress, job.ID,
				fmt.Sprintf("[%s] variant %s timed out after %s", job.ID, plan.Name, result.Duration.Round(time.Second)), nil)
		}
		lastResult = result
	}

	message := fmt.Sprintf("all %d download variant(s) failed", len(plans))
	if tail := strings.TrimSpace(lastResult.StderrTail); tail != "" {
		message = fmt.Sprintf("%s; last error: %s", message, lastLine(tail))
	}
	return errors.New(message)
}

func (f *Fetcher) transcodeToMP3(ctx context.Context, job Job, src string, timeout time.Duration) (string, error) {
	dst := strings.TrimSuffix(src, filepath.Ext(src)) + ".mp3"
	if _, err := os.Stat(dst); err == nil {
		dst = strings.TrimSuffix(src, filepath.Ext(src)) + ".transcoded.mp3"
	}

	spec, err := f.Transcode.PlanTranscode(src, dst, timeout)
	if err != nil {
		return "", fmt.Errorf("plan transcode: %w", err)
	}

	f.emit(output.LevelInfo, output.EventJobProgress, job.ID,
		fmt.Sprintf("[%s] transcoding %s to mp3", job.ID, filepath.Base(src)), nil)

	result := f.Runner.Run(ctx, spec)
	if result.Interrupted {
		return "", ErrInterrupted
	}
	if result.ExitCode == 127 {
		return "", &missingBinaryError{binary: f.Transcode.Binary()}
	}
	if result.ExitCode != 0 {
		message := fmt.Sprintf("ffmpeg transcode failed with exit code %d", result.ExitCode)
		if tail := strings.TrimSpace(result.StderrTail); tail != "" {
			message = fmt.Sprintf("%s: %s", message, lastLine(tail))
		}
		return "", errors.New(message)
	}
	return dst, nil
}

func (f *Fetcher) placeInLibrary(cfg config.Config, musicDir string, job Job, produced string) (string, error) {
	title := job.Title
	if strings.TrimSpace(title) == "" {
		// Fall back to the uploaded video's title, minus "(Official Video)"
		// style qualifiers.
		title = library.CleanTitle(strings.TrimSuffix(filepath.Base(produced), filepath.Ext(produced)))
	}

	var finalPath string
	var err error
	if cfg.Defaults.Organize {
		finalPath, err = library.TrackPath(musicDir, job.Artist, job.Album, title, job.TrackNumber, ".mp3")
	} else {
		finalPath, err = library.FlatPath(musicDir, title, ".mp3")
	}
	if err != nil {
		return "", fmt.Errorf("resolve library path: %w", err)
	}

	if err := os.Rename(produced, finalPath); err != nil {
		return "", fmt.Errorf("move %s into library: %w", filepath.Base(produced), err)
	}
	return finalPath, nil
}

func (f *Fetcher) sweepArtifacts(jobID string, dir string, baseline map[string]struct{}) {
	removed, err := sweepNewArtifacts(dir, baseline)
	if err != nil {
		f.emit(output.LevelWarn, output.EventArtifactsSwept, jobID,
			fmt.Sprintf("[%s] artifact sweep failed: %v", jobID, err), nil)
		return
	}
	if len(removed) == 0 {
		return
	}
	f.emit(output.LevelInfo, output.EventArtifactsSwept, jobID,
		fmt.Sprintf("[%s] swept %d partial artifact(s)", jobID, len(removed)),
		map[string]any{"removed": removed})
}

func (f *Fetcher) emit(level output.Level, name output.EventName, jobID string, message string, details map[string]any) {
	_ = f.Emitter.Emit(output.Event{
		Timestamp: f.Now(),
		Level:     level,
		Event:     name,
		JobID:     jobID,
		Message:   message,
		Details:   details,
	})
}

func searchQuery(job Job) string {
	return strings.TrimSpace(strings.TrimSpace(job.Artist) + " " + strings.TrimSpace(job.Title))
}

func snapshotAudioFiles(dir string) (map[string]struct{}, error) {
	seen := map[string]struct{}{}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return seen, nil
		}
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := audioExtensions[strings.ToLower(filepath.Ext(entry.Name()))]; ok {
			seen[filepath.Join(dir, entry.Name())] = struct{}{}
		}
	}
	return seen, nil
}

// newestProducedAudio finds the audio file the download created, preferring
// mp3 output from yt-dlp's own postprocessor over raw containers.
func newestProducedAudio(dir string, baseline map[string]struct{}) (string, error) {
	current, err := snapshotAudioFiles(dir)
	if err != nil {
		return "", err
	}

	var newest string
	var newestMod time.Time
	var newestIsMP3 bool
	for path := range current {
		if _, existed := baseline[path]; existed {
			continue
		}
		info, statErr := os.Stat(path)
		if statErr != nil {
			continue
		}
		isMP3 := strings.EqualFold(filepath.Ext(path), ".mp3")
		if newest == "" || (isMP3 && !newestIsMP3) || (isMP3 == newestIsMP3 && info.ModTime().After(newestMod)) {
			newest = path
			newestMod = info.ModTime()
			newestIsMP3 = isMP3
		}
	}
	if newest == "" {
		return "", errors.New("download reported success but produced no audio file")
	}
	return newest, nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
