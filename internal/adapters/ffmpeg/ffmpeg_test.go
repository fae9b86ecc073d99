package ffmpeg

import (
	"strings"
	"testing"
	"time"
)

func TestBuildTranscodeSpec(t *testing.T) {
	adapter := New("")
	spec, err := adapter.BuildTranscodeSpec("/music/in.m4a", "/music/out.mp3", time.Minute)
	if err != nil {
		t.Fatalf("build transcode spec: %v", err)
	}

	if spec.Bin != "ffmpeg" {
		t.Fatalf("expected default binary ffmpeg, got %q", spec.Bin)
	}
	joined := strings.Join(spec.Args, " ")
	want := "-y -i /music/in.m4a -vn -c:a libmp3lame -q:a 0 /music/out.mp3"
	if joined != want {
		t.Fatalf("expected %q, got %q", want, joined)
	}
}

func TestBuildTranscodeSpecBinaryOverride(t *testing.T) {
	adapter := New("/opt/ffmpeg/bin/ffmpeg")
	spec, err := adapter.BuildTranscodeSpec("/a.webm", "/a.mp3", time.Minute)
	if err != nil {
		t.Fatalf("build transcode spec: %v", err)
	}
	if spec.Bin != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("expected overridden binary, got %q", spec.Bin)
	}
}

func TestBuildTranscodeSpecValidation(t *testing.T) {
	adapter := New("")
	if _, err := adapter.BuildTranscodeSpec("", "/a.mp3", time.Minute); err == nil {
		t.Fatalf("expected error for empty source")
	}
	if _, err := adapter.BuildTranscodeSpec("/a.m4a", "", time.Minute); err == nil {
		t.Fatalf("expected error for empty destination")
	}
	if _, err := adapter.BuildTranscodeSpec("/a.mp3", "/a.mp3", time.Minute); err == nil {
		t.Fatalf("expected error for identical paths")
	}
}
