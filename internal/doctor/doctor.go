// Package doctor verifies that the host environment can run fetch jobs:
// external binaries present and recent enough, music directory writable.
package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jaa/yoink/internal/config"
)

type Status string

const (
	StatusOK   Status = "ok"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

type Check struct {
	Name   string
	Status Status
	Detail string
}

type Report struct {
	Checks []Check
}

// Healthy reports whether no check failed. Warnings do not count as
// failures.
func (r Report) Healthy() bool {
	for _, c := range r.Checks {
		if c.Status == StatusFail {
			return false
		}
	}
	return true
}

// minYTDLPVersion is the oldest yt-dlp known to handle current site
// extractor churn. Older builds fail with signature errors.
const minYTDLPVersion = "2024.01.01"

// Checker probes the environment. The function fields exist so tests can
// substitute fakes for PATH lookups and subprocess calls.
type Checker struct {
	Config config.Config

	LookPath      func(name string) (string, error)
	ReadVersion   func(ctx context.Context, bin string) (string, error)
	CheckWritable func(dir string) error
}

func NewChecker(cfg config.Config) *Checker {
	return &Checker{
		Config:        cfg,
		LookPath:      exec.LookPath,
		ReadVersion:   readVersion,
		CheckWritable: checkWritable,
	}
}

// Run executes every check and returns the combined report.
func (c *Checker) Run(ctx context.Context) Report {
	var report Report

	ytdlpBin := c.Config.Tools.YTDLPBin
	if ytdlpBin == "" {
		ytdlpBin = "yt-dlp"
	}
	report.Checks = append(report.Checks, c.checkYTDLP(ctx, ytdlpBin))

	ffmpegBin := c.Config.Tools.FFmpegBin
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}
	report.Checks = append(report.Checks, c.checkBinary(ffmpegBin, "ffmpeg"))
	report.Checks = append(report.Checks, c.checkBinary("ffprobe", "ffprobe"))

	report.Checks = append(report.Checks, c.checkMusicDir())

	return report
}

func (c *Checker) checkYTDLP(ctx context.Context, bin string) Check {
	path, err := c.LookPath(bin)
	if err != nil {
		return Check{
			Name:   "yt-dlp",
			Status: StatusFail,
			Detail: fmt.Sprintf("%s not found in PATH", bin),
		}
	}

	version, err := c.ReadVersion(ctx, path)
	if err != nil {
		return Check{
			Name:   "yt-dlp",
			Status: StatusWarn,
			Detail: fmt.Sprintf("found at %s but version probe failed: %v", path, err),
		}
	}

	if CompareCalendarVersions(version, minYTDLPVersion) < 0 {
		return Check{
			Name:   "yt-dlp",
			Status: StatusWarn,
			Detail: fmt.Sprintf("version %s is older than %s, extractors may be stale", version, minYTDLPVersion),
		}
	}

	return Check{
		Name:   "yt-dlp",
		Status: StatusOK,
		Detail: fmt.Sprintf("%s (%s)", version, path),
	}
}

func (c *Checker) checkBinary(bin, name string) Check {
	path, err := c.LookPath(bin)
	if err != nil {
		return Check{
			Name:   name,
			Status: StatusFail,
			Detail: fmt.Sprintf("%s not found in PATH", bin),
		}
	}
	return Check{Name: name, Status: StatusOK, Detail: path}
}

func (c *Checker) checkMusicDir() Check {
	dir, err := config.ExpandPath(c.Config.Defaults.MusicDir)
	if err != nil {
		return Check{
			Name:   "music_dir",
			Status: StatusFail,
			Detail: fmt.Sprintf("cannot resolve %s: %v", c.Config.Defaults.MusicDir, err),
		}
	}

	if err := c.CheckWritable(dir); err != nil {
		return Check{
			Name:   "music_dir",
			Status: StatusFail,
			Detail: fmt.Sprintf("%s is not writable: %v", dir, err),
		}
	}
	return Check{Name: "music_dir", Status: StatusOK, Detail: dir}
}

func readVersion(ctx context.Context, bin string) (string, error) {
	out, err := exec.CommandContext(ctx, bin, "--version").Output()
	if err != nil {
		return "", err
	}
	version := strings.TrimSpace(string(out))
	if version == "" {
		return "", fmt.Errorf("empty version output")
	}
	// Some builds print extra lines; the version is always the first.
	if idx := strings.IndexByte(version, '\n'); idx >= 0 {
		version = version[:idx]
	}
	return version, nil
}

func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	probe := filepath.Join(dir, ".yoink-write-check")
	f, err := os.Create(probe)
	if err != nil {
		return err
	}
	f.Close()
	return os.Remove(probe)
}

// CompareCalendarVersions compares two calendar-style versions like
// "2024.08.06". Returns -1, 0 or 1. Unparseable segments compare as zero.
func CompareCalendarVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		av, bv := 0, 0
		if i < len(as) {
			av, _ = strconv.Atoi(strings.TrimSpace(as[i]))
		}
		if i < len(bs) {
			bv, _ = strconv.Atoi(strings.TrimSpace(bs[i]))
		}
		if av < bv {
			return -1
		}
		if av > bv {
			return 1
		}
	}
	return 0
}
