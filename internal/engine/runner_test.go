package engine

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestTailBufferKeepsTail(t *testing.T) {
	buf := newTailBuffer(8)
	if _, err := buf.Write([]byte("0123456789")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "23456789" {
		t.Fatalf("expected tail, got %q", buf.String())
	}

	if _, err := buf.Write([]byte("ab")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "456789ab" {
		t.Fatalf("expected rolling tail, got %q", buf.String())
	}
}

func TestTailBufferLargeSingleWrite(t *testing.T) {
	buf := newTailBuffer(4)
	if _, err := buf.Write([]byte("abcdefgh")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "efgh" {
		t.Fatalf("expected last 4 bytes, got %q", buf.String())
	}
}

func TestSubprocessRunnerMissingBinarySpec(t *testing.T) {
	runner := NewSubprocessRunner(nil, nil)
	result := runner.Run(context.Background(), ExecSpec{})
	if result.ExitCode != 1 {
		t.Fatalf("expected exit code 1 for empty binary, got %d", result.ExitCode)
	}
	if result.Err == nil {
		t.Fatalf("expected error for empty binary")
	}
}

func TestSubprocessRunnerBinaryNotFound(t *testing.T) {
	runner := NewSubprocessRunner(nil, nil)
	result := runner.Run(context.Background(), ExecSpec{Bin: "yoink-no-such-binary-xyz"})
	if result.ExitCode != 127 {
		t.Fatalf("expected exit code 127 for missing binary, got %d", result.ExitCode)
	}
}

func TestSubprocessRunnerCapturesOutput(t *testing.T) {
	runner := NewSubprocessRunner(nil, nil)
	result := runner.Run(context.Background(), ExecSpec{
		Bin:  "sh",
		Args: []string{"-c", "echo out; echo err 1>&2"},
	})
	if result.ExitCode != 0 {
		t.Fatalf("expected success, got exit code %d (%v)", result.ExitCode, result.Err)
	}
	if !strings.Contains(result.StdoutTail, "out") {
		t.Fatalf("expected stdout tail, got %q", result.StdoutTail)
	}
	if !strings.Contains(result.StderrTail, "err") {
		t.Fatalf("expected stderr tail, got %q", result.StderrTail)
	}
}

func TestSubprocessRunnerNonZeroExit(t *testing.T) {
	runner := NewSubprocessRunner(nil, nil)
	result := runner.Run(context.Background(), ExecSpec{
		Bin:  "sh",
		Args: []string{"-c", "exit 3"},
	})
	if result.ExitCode != 3 {
		t.Fatalf("expected exit code 3, got %d", result.ExitCode)
	}
}

func TestSubprocessRunnerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	runner := NewSubprocessRunner(nil, nil)
	result := runner.Run(ctx, ExecSpec{
		Bin:  "sh",
		Args: []string{"-c", "sleep 10"},
	})
	if !result.Interrupted {
		t.Fatalf("expected interrupted result, got %+v", result)
	}
	if result.ExitCode != 130 {
		t.Fatalf("expected exit code 130, got %d", result.ExitCode)
	}
}

func TestSubprocessRunnerTimeout(t *testing.T) {
	runner := NewSubprocessRunner(nil, nil)
	result := runner.Run(context.Background(), ExecSpec{
		Bin:     "sh",
		Args:    []string{"-c", "sleep 10"},
		Timeout: 50 * time.Millisecond,
	})
	if !result.TimedOut {
		t.Fatalf("expected timed-out result, got %+v", result)
	}
}
