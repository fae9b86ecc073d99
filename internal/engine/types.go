package engine

import (
	"time"
)

type ExecSpec struct {
	Bin            string
	Args           []string
	Dir            string
	Timeout        time.Duration
	DisplayCommand string
}

type ExecResult struct {
	ExitCode    int
	Duration    time.Duration
	Interrupted bool
	TimedOut    bool
	StdoutTail  string
	StderrTail  string
	Err         error
}

// Job is one track to locate and fetch. Metadata fields beyond Title/Artist
// are optional and only improve tagging and library placement.
type Job struct {
	ID            string
	Title         string
	Artist        string
	Album         string
	TrackNumber   int
	TotalTracks   int
	Year          string
	RecordingMBID string
	ReleaseMBID   string
}

type FetchOptions struct {
	DryRun          bool
	TimeoutOverride time.Duration
}

type FetchResult struct {
	Total              int
	Attempted          int
	Succeeded          int
	Failed             int
	DependencyFailures int
	Interrupted        bool
}
