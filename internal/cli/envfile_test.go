package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnvFilesLoadsEnvAndLocalOverrides(t *testing.T) {
	tmp := t.TempDir()
	envPath := filepath.Join(tmp, ".env")
	localPath := filepath.Join(tmp, ".env.local")

	if err := os.WriteFile(envPath, []byte("YOINK_YTDLP_BIN=/tmp/bin/yt-dlp-a\nYOINK_MAX_KBPS=192\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	if err := os.WriteFile(localPath, []byte("YOINK_YTDLP_BIN=/tmp/bin/yt-dlp-b\n"), 0o644); err != nil {
		t.Fatalf("write .env.local: %v", err)
	}

	values := map[string]string{}
	setenv := func(k, v string) error {
		values[k] = v
		return nil
	}

	if err := loadDotEnvFiles(tmp, nil, setenv); err != nil {
		t.Fatalf("load dotenv files: %v", err)
	}
	if values["YOINK_YTDLP_BIN"] != "/tmp/bin/yt-dlp-b" {
		t.Fatalf("expected .env.local to override .env, got %q", values["YOINK_YTDLP_BIN"])
	}
	if values["YOINK_MAX_KBPS"] != "192" {
		t.Fatalf("expected YOINK_MAX_KBPS from .env, got %q", values["YOINK_MAX_KBPS"])
	}
}

func TestLoadDotEnvFilesDoesNotOverrideProcessEnv(t *testing.T) {
	tmp := t.TempDir()
	envPath := filepath.Join(tmp, ".env")
	if err := os.WriteFile(envPath, []byte("YOINK_MUSIC_DIR=/tmp/music\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	values := map[string]string{}
	setenv := func(k, v string) error {
		values[k] = v
		return nil
	}

	if err := loadDotEnvFiles(tmp, []string{"YOINK_MUSIC_DIR=/already/set"}, setenv); err != nil {
		t.Fatalf("load dotenv files: %v", err)
	}
	if _, exists := values["YOINK_MUSIC_DIR"]; exists {
		t.Fatalf("expected existing process env to be protected")
	}
}

func TestParseDotEnvLineSupportsExportAndQuotedValues(t *testing.T) {
	key, value, ok, err := parseDotEnvLine("export YOINK_FFMPEG_BIN=\"/opt/homebrew/bin/ffmpeg\"")
	if err != nil {
		t.Fatalf("parse line: %v", err)
	}
	if !ok || key != "YOINK_FFMPEG_BIN" || value != "/opt/homebrew/bin/ffmpeg" {
		t.Fatalf("unexpected parse result: ok=%v key=%q value=%q", ok, key, value)
	}

	key, value, ok, err = parseDotEnvLine("YOINK_COOKIES_FROM_BROWSER='firefox:work'")
	if err != nil {
		t.Fatalf("parse single-quoted line: %v", err)
	}
	if !ok || key != "YOINK_COOKIES_FROM_BROWSER" || value != "firefox:work" {
		t.Fatalf("unexpected single-quoted parse result: ok=%v key=%q value=%q", ok, key, value)
	}
}

func TestParseDotEnvLineSkipsCommentsAndBlanks(t *testing.T) {
	for _, line := range []string{"", "   ", "# comment"} {
		_, _, ok, err := parseDotEnvLine(line)
		if err != nil {
			t.Fatalf("parse %q: %v", line, err)
		}
		if ok {
			t.Fatalf("expected %q to be skipped", line)
		}
	}

	if _, _, _, err := parseDotEnvLine("NOT A PAIR"); err == nil {
		t.Fatal("expected error for malformed line")
	}
}
