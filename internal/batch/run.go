// Package batch is the shared spine of every assetpress subcommand:
// discover candidate files, process them one at a time, and aggregate
// the per-file outcomes into a run summary.
package batch

import (
	"context"
)

// ProcessFunc transforms a single file. Implementations must confine
// any failure to the returned Outcome; only the discovery phase can
// abort a run.
type ProcessFunc func(ctx context.Context, task Task) Outcome

// Run processes tasks strictly sequentially, feeding progress deltas to
// updates (which may be nil). Per-file failures never stop the batch; a
// cancelled context does, returning the outcomes gathered so far.
func Run(ctx context.Context, tasks []Task, process ProcessFunc, updates chan<- ProgressUpdate) (Summary, []Outcome) {
	summary := Summary{Total: len(tasks)}
	outcomes := make([]Outcome, 0, len(tasks))

	if updates != nil {
		updates <- ProgressUpdate{TotalDelta: len(tasks)}
	}

	for _, task := range tasks {
		if ctx != nil && ctx.Err() != nil {
			break
		}

		out := process(ctx, task)
		if out.Display == "" {
			out.Display = task.Display
		}
		outcomes = append(outcomes, out)

		delta := ProgressUpdate{ProcessedDelta: 1, File: task.Display}
		switch out.Status {
		case StatusOK:
			summary.Succeeded++
			summary.BytesIn += out.BytesBefore
			summary.BytesOut += out.BytesAfter
			delta.BytesSavedDelta = out.BytesBefore - out.BytesAfter
		case StatusSkipped:
			summary.Skipped++
			delta.SkippedDelta = 1
		case StatusFailed:
			summary.Failed++
			delta.FailedDelta = 1
		}
		if updates != nil {
			updates <- delta
		}
	}

	return summary, outcomes
}
