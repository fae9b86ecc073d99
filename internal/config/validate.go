package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Browsers yt-dlp accepts for --cookies-from-browser.
var knownBrowsers = map[string]struct{}{
	"brave":    {},
	"chrome":   {},
	"chromium": {},
	"edge":     {},
	"firefox":  {},
	"opera":    {},
	"safari":   {},
	"vivaldi":  {},
}

type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "invalid config"
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(e.Problems, "; "))
}

func Validate(cfg Config) error {
	problems := []string{}

	if cfg.Version != 1 {
		problems = append(problems, "version must be 1")
	}

	musicDir, err := ExpandPath(cfg.Defaults.MusicDir)
	if err != nil || strings.TrimSpace(musicDir) == "" {
		problems = append(problems, "defaults.music_dir must be a valid path")
	} else if !filepath.IsAbs(musicDir) {
		problems = append(problems, "defaults.music_dir must resolve to an absolute path")
	}

	if cfg.Defaults.MaxKbps < 0 {
		problems = append(problems, "defaults.max_kbps must be >= 0 (0 means best available)")
	}
	if cfg.Defaults.SearchLimit <= 0 || cfg.Defaults.SearchLimit > 100 {
		problems = append(problems, "defaults.search_limit must be between 1 and 100")
	}
	if cfg.Defaults.CommandTimeoutSeconds <= 0 {
		problems = append(problems, "defaults.command_timeout_seconds must be > 0")
	}

	if browser := strings.TrimSpace(cfg.Defaults.CookiesFromBrowser); browser != "" {
		// yt-dlp accepts BROWSER[+KEYRING][:PROFILE]; only the browser part is checked.
		name := browser
		if idx := strings.IndexAny(name, "+:"); idx >= 0 {
			name = name[:idx]
		}
		if _, ok := knownBrowsers[strings.ToLower(name)]; !ok {
			problems = append(problems, fmt.Sprintf("defaults.cookies_from_browser has unknown browser %q", name))
		}
	}

	for _, tool := range []struct {
		field string
		value string
	}{
		{"tools.ytdlp_bin", cfg.Tools.YTDLPBin},
		{"tools.ffmpeg_bin", cfg.Tools.FFmpegBin},
	} {
		if strings.TrimSpace(tool.value) == "" {
			continue
		}
		expanded, expandErr := ExpandPath(tool.value)
		if expandErr != nil || strings.TrimSpace(expanded) == "" {
			problems = append(problems, fmt.Sprintf("%s is not a valid path", tool.field))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
