package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestJSONEmitterEncodesEvent(t *testing.T) {
	var buf bytes.Buffer
	emitter := NewJSONEmitter(&buf)

	err := emitter.Emit(Event{
		Timestamp: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		Level:     LevelInfo,
		Event:     EventTrackFetched,
		JobID:     "job-1",
		Message:   "fetched track",
		Details:   map[string]any{"path": "/tmp/a.mp3"},
	})
	if err != nil {
		t.Fatalf("emit: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode emitted event: %v", err)
	}
	if decoded["event"] != "track_fetched" {
		t.Fatalf("unexpected event name %v", decoded["event"])
	}
	if decoded["job_id"] != "job-1" {
		t.Fatalf("unexpected job id %v", decoded["job_id"])
	}
}

func TestHumanEmitterRoutesByLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	emitter := NewHumanEmitter(&stdout, &stderr, false, false)

	_ = emitter.Emit(Event{Level: LevelError, Event: EventJobFailed, Message: "boom"})
	_ = emitter.Emit(Event{Level: LevelWarn, Event: EventJobFailed, Message: "careful"})
	_ = emitter.Emit(Event{Level: LevelInfo, Event: EventTrackFetched, Message: "done"})

	if !strings.Contains(stderr.String(), "ERROR: boom") {
		t.Fatalf("expected error on stderr, got %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "WARN: careful") {
		t.Fatalf("expected warning on stderr, got %q", stderr.String())
	}
	if !strings.Contains(stdout.String(), "done") {
		t.Fatalf("expected info on stdout, got %q", stdout.String())
	}
}

func TestHumanEmitterQuietKeepsSummaryAndErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	emitter := NewHumanEmitter(&stdout, &stderr, true, false)

	_ = emitter.Emit(Event{Level: LevelInfo, Event: EventTrackFetched, Message: "skipped in quiet"})
	_ = emitter.Emit(Event{Level: LevelInfo, Event: EventRunFinished, Message: "run finished"})
	_ = emitter.Emit(Event{Level: LevelError, Event: EventJobFailed, Message: "boom"})

	if strings.Contains(stdout.String(), "skipped in quiet") {
		t.Fatalf("quiet mode leaked info output: %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "run finished") {
		t.Fatalf("quiet mode suppressed the summary: %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "ERROR: boom") {
		t.Fatalf("quiet mode suppressed errors: %q", stderr.String())
	}
}

func TestHumanEmitterHidesProgressUnlessVerbose(t *testing.T) {
	var stdout, stderr bytes.Buffer
	emitter := NewHumanEmitter(&stdout, &stderr, false, false)

	_ = emitter.Emit(Event{Level: LevelInfo, Event: EventJobStarted, Message: "starting"})
	if stdout.Len() != 0 {
		t.Fatalf("job_started should be hidden by default, got %q", stdout.String())
	}

	verbose := NewHumanEmitter(&stdout, &stderr, false, true)
	_ = verbose.Emit(Event{Level: LevelInfo, Event: EventJobStarted, Message: "starting"})
	if !strings.Contains(stdout.String(), "starting") {
		t.Fatalf("verbose mode should show job_started")
	}
}

func TestMultiEmitterFansOut(t *testing.T) {
	var a, b bytes.Buffer
	multi := NewMultiEmitter(NewJSONEmitter(&a), NewJSONEmitter(&b))

	if err := multi.Emit(Event{Level: LevelInfo, Event: EventRunFinished, Message: "x"}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if a.Len() == 0 || b.Len() == 0 {
		t.Fatalf("expected both emitters to receive the event")
	}
}
