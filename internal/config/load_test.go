package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithoutFiles(t *testing.T) {
	cfg, err := Load(LoadOptions{
		WorkingDir: t.TempDir(),
		Env:        map[string]string{},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Version != 1 {
		t.Fatalf("expected version 1, got %d", cfg.Version)
	}
	if cfg.Defaults.SearchLimit != 40 {
		t.Fatalf("expected default search_limit 40, got %d", cfg.Defaults.SearchLimit)
	}
	if !cfg.Defaults.Organize {
		t.Fatalf("expected organize enabled by default")
	}
	if cfg.Defaults.MaxKbps != 0 {
		t.Fatalf("expected max_kbps 0 by default, got %d", cfg.Defaults.MaxKbps)
	}
}

func TestLoadExplicitPathRequired(t *testing.T) {
	_, err := Load(LoadOptions{
		ExplicitPath: filepath.Join(t.TempDir(), "missing.yaml"),
		WorkingDir:   t.TempDir(),
		Env:          map[string]string{},
	})
	if err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestLoadProjectFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	payload := []byte("version: 1\ndefaults:\n  max_kbps: 192\n  embed_lyrics: false\ntools:\n  ffmpeg_bin: \"/opt/ffmpeg/bin/ffmpeg\"\n")
	if err := os.WriteFile(filepath.Join(dir, "yoink.yaml"), payload, 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(LoadOptions{
		WorkingDir: dir,
		Env:        map[string]string{},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Defaults.MaxKbps != 192 {
		t.Fatalf("expected max_kbps 192, got %d", cfg.Defaults.MaxKbps)
	}
	if cfg.Defaults.EmbedLyrics {
		t.Fatalf("expected embed_lyrics disabled by project file")
	}
	if cfg.Tools.FFmpegBin != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("unexpected ffmpeg_bin %q", cfg.Tools.FFmpegBin)
	}
	if !cfg.Defaults.Organize {
		t.Fatalf("expected untouched defaults to survive merge")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	cfg, err := Load(LoadOptions{
		WorkingDir: t.TempDir(),
		Env: map[string]string{
			"YOINK_MUSIC_DIR":            "/tmp/music",
			"YOINK_MAX_KBPS":             "256",
			"YOINK_COOKIES_FROM_BROWSER": "firefox",
		},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Defaults.MusicDir != "/tmp/music" {
		t.Fatalf("expected music_dir override, got %q", cfg.Defaults.MusicDir)
	}
	if cfg.Defaults.MaxKbps != 256 {
		t.Fatalf("expected max_kbps 256, got %d", cfg.Defaults.MaxKbps)
	}
	if cfg.Defaults.CookiesFromBrowser != "firefox" {
		t.Fatalf("expected cookies_from_browser firefox, got %q", cfg.Defaults.CookiesFromBrowser)
	}
}

func TestLoadRejectsBadEnvNumbers(t *testing.T) {
	_, err := Load(LoadOptions{
		WorkingDir: t.TempDir(),
		Env:        map[string]string{"YOINK_MAX_KBPS": "not-a-number"},
	})
	if err == nil {
		t.Fatalf("expected error for invalid YOINK_MAX_KBPS")
	}
}
