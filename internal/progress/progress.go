package progress

import "time"

// Stage identifies which pipeline stage is active.
type Stage string

const (
	StageBrief      Stage = "brief"
	StageCopy       Stage = "copy"
	StageClassify   Stage = "classify"
	StageExtract    Stage = "extract"
	StageSynthesize Stage = "synthesize"
	StageEncode     Stage = "encode"
	StageComplete   Stage = "complete"
)

// Event carries progress information from the pipeline to the renderer.
type Event struct {
	Stage   Stage
	Message string
	Percent float64 // 0.0–1.0
	Elapsed time.Duration
	Error   error
	// OutputFile is set on StageComplete when an artifact was written
	// to disk.
	OutputFile string
	// SizeKB is the output size in KB, set on StageComplete for audio.
	SizeKB float64
}

// Callback is the function signature for progress event handlers.
type Callback func(Event)

// NopCallback is a no-op progress callback for tests and silent mode.
func NopCallback(Event) {}

// NewEvent creates an Event with common fields populated.
func NewEvent(stage Stage, msg string, pct float64, start time.Time) Event {
	return Event{
		Stage:   stage,
		Message: msg,
		Percent: pct,
		Elapsed: time.Since(start),
	}
}
