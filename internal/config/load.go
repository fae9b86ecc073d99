package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type LoadOptions struct {
	ExplicitPath string
	WorkingDir   string
	Env          map[string]string
}

type fileConfig struct {
	Version  *int         `yaml:"version"`
	Defaults fileDefaults `yaml:"defaults"`
	Tools    fileTools    `yaml:"tools"`
}

type fileDefaults struct {
	MusicDir              *string `yaml:"music_dir"`
	MaxKbps               *int    `yaml:"max_kbps"`
	SearchLimit           *int    `yaml:"search_limit"`
	CommandTimeoutSeconds *int    `yaml:"command_timeout_seconds"`
	ContinueOnError       *bool   `yaml:"continue_on_error"`
	Organize              *bool   `yaml:"organize"`
	EmbedCover            *bool   `yaml:"embed_cover"`
	EmbedLyrics           *bool   `yaml:"embed_lyrics"`
	CookiesFromBrowser    *string `yaml:"cookies_from_browser"`
}

type fileTools struct {
	YTDLPBin  *string `yaml:"ytdlp_bin"`
	FFmpegBin *string `yaml:"ffmpeg_bin"`
}

func Load(opts LoadOptions) (Config, error) {
	cfg := DefaultConfig()

	cwd := opts.WorkingDir
	if strings.TrimSpace(cwd) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("resolve working directory: %w", err)
		}
		cwd = wd
	}

	env := opts.Env
	if env == nil {
		env = osEnvMap()
	}

	if explicit := strings.TrimSpace(opts.ExplicitPath); explicit != "" {
		if err := mergeFile(&cfg, explicit, true); err != nil {
			return Config{}, err
		}
	} else {
		userPath, err := UserConfigPath()
		if err != nil {
			return Config{}, err
		}
		if err := mergeFile(&cfg, userPath, false); err != nil {
			return Config{}, err
		}

		if err := mergeFile(&cfg, ProjectConfigPath(cwd), false); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnvOverrides(&cfg, env); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func mergeFile(cfg *Config, path string, required bool) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file does not exist: %s", path)
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(payload, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Version != nil {
		cfg.Version = *fc.Version
	}
	if fc.Defaults.MusicDir != nil {
		cfg.Defaults.MusicDir = strings.TrimSpace(*fc.Defaults.MusicDir)
	}
	if fc.Defaults.MaxKbps != nil {
		cfg.Defaults.MaxKbps = *fc.Defaults.MaxKbps
	}
	if fc.Defaults.SearchLimit != nil {
		cfg.Defaults.SearchLimit = *fc.Defaults.SearchLimit
	}
	if fc.Defaults.CommandTimeoutSeconds != nil {
		cfg.Defaults.CommandTimeoutSeconds = *fc.Defaults.CommandTimeoutSeconds
	}
	if fc.Defaults.ContinueOnError != nil {
		cfg.Defaults.ContinueOnError = *fc.Defaults.ContinueOnError
	}
	if fc.Defaults.Organize != nil {
		cfg.Defaults.Organize = *fc.Defaults.Organize
	}
	if fc.Defaults.EmbedCover != nil {
		cfg.Defaults.EmbedCover = *fc.Defaults.EmbedCover
	}
	if fc.Defaults.EmbedLyrics != nil {
		cfg.Defaults.EmbedLyrics = *fc.Defaults.EmbedLyrics
	}
	if fc.Defaults.CookiesFromBrowser != nil {
		cfg.Defaults.CookiesFromBrowser = strings.TrimSpace(*fc.Defaults.CookiesFromBrowser)
	}
	if fc.Tools.YTDLPBin != nil {
		cfg.Tools.YTDLPBin = strings.TrimSpace(*fc.Tools.YTDLPBin)
	}
	if fc.Tools.FFmpegBin != nil {
		cfg.Tools.FFmpegBin = strings.TrimSpace(*fc.Tools.FFmpegBin)
	}

	return nil
}

func applyEnvOverrides(cfg *Config, env map[string]string) error {
	if value := strings.TrimSpace(env["YOINK_MUSIC_DIR"]); value != "" {
		cfg.Defaults.MusicDir = value
	}
	if value := strings.TrimSpace(env["YOINK_MAX_KBPS"]); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid YOINK_MAX_KBPS value %q: %w", value, err)
		}
		cfg.Defaults.MaxKbps = parsed
	}
	if value := strings.TrimSpace(env["YOINK_SEARCH_LIMIT"]); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid YOINK_SEARCH_LIMIT value %q: %w", value, err)
		}
		cfg.Defaults.SearchLimit = parsed
	}
	if value := strings.TrimSpace(env["YOINK_COMMAND_TIMEOUT_SECONDS"]); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid YOINK_COMMAND_TIMEOUT_SECONDS value %q: %w", value, err)
		}
		cfg.Defaults.CommandTimeoutSeconds = parsed
	}
	if value := strings.TrimSpace(env["YOINK_CONTINUE_ON_ERROR"]); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid YOINK_CONTINUE_ON_ERROR value %q: %w", value, err)
		}
		cfg.Defaults.ContinueOnError = parsed
	}
	if value := strings.TrimSpace(env["YOINK_COOKIES_FROM_BROWSER"]); value != "" {
		cfg.Defaults.CookiesFromBrowser = value
	}
	if value := strings.TrimSpace(env["YOINK_YTDLP_BIN"]); value != "" {
		cfg.Tools.YTDLPBin = value
	}
	if value := strings.TrimSpace(env["YOINK_FFMPEG_BIN"]); value != "" {
		cfg.Tools.FFmpegBin = value
	}
	return nil
}

func osEnvMap() map[string]string {
	result := map[string]string{}
	for _, pair := range os.Environ() {
		pieces := strings.SplitN(pair, "=", 2)
		if len(pieces) == 2 {
			result[pieces[0]] = pieces[1]
		}
	}
	return result
}
