// Package ytdlp assembles yt-dlp invocations for the song fetch pipeline.
package ytdlp

import (
	"fmt"
	"strings"
	"time"

	"github.com/jaa/yoink/internal/config"
	"github.com/jaa/yoink/internal/engine"
)

// Variant is one entry in the retry ladder. YouTube intermittently rejects
// individual player clients, so a failed extraction is retried with a
// different client/format combination before giving up.
type Variant struct {
	Name           string
	FormatOverride string
	PlayerClient   string
}

type Adapter struct {
	Bin string
}

func New(bin string) *Adapter {
	if strings.TrimSpace(bin) == "" {
		bin = "yt-dlp"
	}
	return &Adapter{Bin: bin}
}

func (a *Adapter) Binary() string {
	return a.Bin
}

func (a *Adapter) Variants() []Variant {
	return []Variant{
		{Name: "default"},
		{Name: "force_m4a", FormatOverride: "bestaudio[ext=m4a]/bestaudio/best"},
		{Name: "android_client", PlayerClient: "android"},
		{Name: "android_m4a", FormatOverride: "bestaudio[ext=m4a]/bestaudio/best", PlayerClient: "android"},
		{Name: "tv_client", PlayerClient: "tv"},
		{Name: "web_music", PlayerClient: "web_music"},
	}
}

// BuildSearchSpec builds a "download the first YouTube search hit as mp3"
// invocation. The query is searched with an " audio" suffix to bias results
// away from music videos.
func (a *Adapter) BuildSearchSpec(variant Variant, query string, destDir string, defaults config.Defaults, tools config.Tools, timeout time.Duration) (engine.ExecSpec, error) {
	if strings.TrimSpace(query) == "" {
		return engine.ExecSpec{}, fmt.Errorf("search query is empty")
	}
	if strings.TrimSpace(destDir) == "" {
		return engine.ExecSpec{}, fmt.Errorf("destination directory is empty")
	}

	args := []string{
		fmt.Sprintf("ytsearch1:%s audio", strings.TrimSpace(query)),
		"-f", audioFormat(variant, defaults.MaxKbps),
		"-x", "--audio-format", "mp3",
		"--no-playlist",
		"--retries", "3",
		"-o", "%(title)s.%(ext)s",
	}
	if defaults.MaxKbps > 0 {
		args = append(args, "--audio-quality", fmt.Sprintf("%dK", defaults.MaxKbps))
	}
	args = appendCommonArgs(args, variant, defaults, tools)

	return engine.ExecSpec{
		Bin:            a.Bin,
		Args:           args,
		Dir:            destDir,
		Timeout:        timeout,
		DisplayCommand: formatCommand(a.Bin, args),
	}, nil
}

// PlanSearch expands the variant ladder into ordered exec specs for the
// engine to try until one succeeds.
func (a *Adapter) PlanSearch(query string, destDir string, defaults config.Defaults, tools config.Tools, timeout time.Duration) ([]engine.SearchPlan, error) {
	variants := a.Variants()
	plans := make([]engine.SearchPlan, 0, len(variants))
	for _, variant := range variants {
		spec, err := a.BuildSearchSpec(variant, query, destDir, defaults, tools, timeout)
		if err != nil {
			return nil, err
		}
		plans = append(plans, engine.SearchPlan{Name: variant.Name, Spec: spec})
	}
	return plans, nil
}

func audioFormat(variant Variant, maxKbps int) string {
	if variant.FormatOverride != "" {
		return variant.FormatOverride
	}
	if maxKbps > 0 {
		return fmt.Sprintf("bestaudio[ext=m4a][abr<=%d]/bestaudio[ext=m4a]/bestaudio/best", maxKbps)
	}
	return "bestaudio[ext=m4a]/bestaudio/best"
}

func appendCommonArgs(args []string, variant Variant, defaults config.Defaults, tools config.Tools) []string {
	if variant.PlayerClient != "" {
		args = append(args, "--extractor-args", fmt.Sprintf("youtube:player_client=%s", variant.PlayerClient))
	}
	if browser := strings.TrimSpace(defaults.CookiesFromBrowser); browser != "" {
		args = append(args, "--cookies-from-browser", browser)
	}
	if ffmpeg := strings.TrimSpace(tools.FFmpegBin); ffmpeg != "" {
		args = append(args, "--ffmpeg-location", ffmpeg)
	}
	return args
}

func formatCommand(bin string, args []string) string {
	parts := []string{bin}
	parts = append(parts, args...)
	return strings.Join(parts, " ")
}
