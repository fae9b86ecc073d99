// Package ffmpeg assembles ffmpeg invocations for transcoding fetched audio.
package ffmpeg

import (
	"fmt"
	"strings"
	"time"

	"github.com/jaa/yoink/internal/engine"
)

type Adapter struct {
	Bin string
}

func New(bin string) *Adapter {
	if strings.TrimSpace(bin) == "" {
		bin = "ffmpeg"
	}
	return &Adapter{Bin: bin}
}

func (a *Adapter) Binary() string {
	return a.Bin
}

// PlanTranscode implements the engine's Transcoder interface.
func (a *Adapter) PlanTranscode(src string, dst string, timeout time.Duration) (engine.ExecSpec, error) {
	return a.BuildTranscodeSpec(src, dst, timeout)
}

// BuildTranscodeSpec converts any audio container to mp3 at the highest VBR
// quality (-q:a 0). Video streams are dropped.
func (a *Adapter) BuildTranscodeSpec(src, dst string, timeout time.Duration) (engine.ExecSpec, error) {
	if strings.TrimSpace(src) == "" {
		return engine.ExecSpec{}, fmt.Errorf("transcode source is empty")
	}
	if strings.TrimSpace(dst) == "" {
		return engine.ExecSpec{}, fmt.Errorf("transcode destination is empty")
	}
	if src == dst {
		return engine.ExecSpec{}, fmt.Errorf("transcode source and destination must differ")
	}

	args := []string{"-y", "-i", src, "-vn", "-c:a", "libmp3lame", "-q:a", "0", dst}
	return engine.ExecSpec{
		Bin:            a.Bin,
		Args:           args,
		Timeout:        timeout,
		DisplayCommand: strings.Join(append([]string{a.Bin}, args...), " "),
	}, nil
}
