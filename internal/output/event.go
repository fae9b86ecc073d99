package output

import "time"

type Level string

const (
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

type EventName string

const (
	EventSearchStarted  EventName = "search_started"
	EventSearchResults  EventName = "search_results"
	EventJobStarted     EventName = "job_started"
	EventJobProgress    EventName = "job_progress"
	EventTrackFetched   EventName = "track_fetched"
	EventTrackTagged    EventName = "track_tagged"
	EventJobFailed      EventName = "job_failed"
	EventRunFinished    EventName = "run_finished"
	EventArtifactsSwept EventName = "artifacts_swept"
)

type Event struct {
	Timestamp time.Time      `json:"timestamp"`
	Level     Level          `json:"level"`
	Event     EventName      `json:"event"`
	JobID     string         `json:"job_id,omitempty"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
}
