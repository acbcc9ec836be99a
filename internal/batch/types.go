package batch

// Status classifies the result of processing one file.
type Status int

const (
	StatusOK Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Task is one discovered file waiting to be processed.
type Task struct {
	Path    string
	RelPath string
	Display string
}

// Outcome is the result of processing one Task. Reason carries the
// human-readable detail line ("below 2.0 MB threshold", the tool error,
// the new dimensions) printed after the run.
type Outcome struct {
	Display     string
	Status      Status
	Reason      string
	BytesBefore int64
	BytesAfter  int64
	OutputPath  string
}

// Summary aggregates outcomes across one batch run.
type Summary struct {
	Total     int
	Succeeded int
	Skipped   int
	Failed    int
	BytesIn   int64
	BytesOut  int64
}

// SpaceSaved returns the aggregate byte difference between inputs and
// outputs. Positive means outputs are smaller.
func (s *Summary) SpaceSaved() int64 {
	return s.BytesIn - s.BytesOut
}

// ProgressUpdate carries incremental counters from the sequential run
// loop to the progress view.
type ProgressUpdate struct {
	TotalDelta      int
	ProcessedDelta  int
	SkippedDelta    int
	FailedDelta     int
	BytesSavedDelta int64
	File            string
}
