package tasks

// Stage is the externally visible progress stage of an upload.
type Stage string

const (
	StageUploading    Stage = "uploading"
	StageTranscoding  Stage = "transcoding"
	StageUpdatingCard Stage = "updating_card"
	StageComplete     Stage = "complete"
)

// Progress waypoints observers depend on.
const (
	ProgressUploadStart    = 0.0
	ProgressTranscodeStart = 50.0
	ProgressTranscodeEnd   = 75.0
	ProgressCardUpdate     = 85.0
	ProgressComplete       = 100.0
)

// ProgressEvent is a single progress notification.
//
// Err is set only on the one failure event of a run; Stage and Progress then repeat the last reported values.
type ProgressEvent struct {
	Stage    Stage   // Progress stage
	Progress float64 // Percentage in [0, 100]
	State    State   // Pipeline state that emitted the event
	Err      error   // Failure, nil otherwise
}

// Failed reports whether this is the failure event.
func (e ProgressEvent) Failed() bool {
	return e.Err != nil
}

// ProgressFunc observes progress events. It is called synchronously from the pipeline goroutine.
type ProgressFunc func(ProgressEvent)

// State enumerates the internal pipeline states.
type State int

const (
	RequestingTarget State = iota
	Uploading
	Transcoding
	FetchingCard
	Mutating
	Saving
	Complete
	Failed
)

func (s State) String() string {
	switch s {
	case RequestingTarget:
		return "requesting_target"
	case Uploading:
		return "uploading"
	case Transcoding:
		return "transcoding"
	case FetchingCard:
		return "fetching_card"
	case Mutating:
		return "mutating"
	case Saving:
		return "saving"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	default:
		return ""
	}
}

// transcodeProgress interpolates the polling range for a finished attempt.
func transcodeProgress(attempts, maxAttempts int) float64 {
	if maxAttempts <= 0 {
		return ProgressTranscodeStart
	}
	return ProgressTranscodeStart + float64(attempts)/float64(maxAttempts)*(ProgressTranscodeEnd-ProgressTranscodeStart)
}

// ChannelProgress adapts a channel to a [ProgressFunc]. Sends never block; updates are dropped when the channel is full.
func ChannelProgress(ch chan<- ProgressEvent) ProgressFunc {
	return func(ev ProgressEvent) {
		select {
		case ch <- ev:
		default:
		}
	}
}
