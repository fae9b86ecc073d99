package config

import (
	"path/filepath"
	"testing"
)

func TestUserConfigPathHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/xdg")
	path, err := UserConfigPath()
	if err != nil {
		t.Fatalf("user config path: %v", err)
	}
	if path != filepath.Join("/custom/xdg", "yoink", "config.yaml") {
		t.Fatalf("unexpected path %q", path)
	}
}

func TestExpandPathTilde(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	expanded, err := ExpandPath("~/Music/yoink")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if expanded != "/home/tester/Music/yoink" {
		t.Fatalf("unexpected expansion %q", expanded)
	}
}

func TestExpandPathEnvVar(t *testing.T) {
	t.Setenv("YOINK_TEST_ROOT", "/srv/media")
	expanded, err := ExpandPath("$YOINK_TEST_ROOT/library")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if expanded != "/srv/media/library" {
		t.Fatalf("unexpected expansion %q", expanded)
	}
}

func TestExpandPathEmpty(t *testing.T) {
	expanded, err := ExpandPath("   ")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if expanded != "" {
		t.Fatalf("expected empty result, got %q", expanded)
	}
}
