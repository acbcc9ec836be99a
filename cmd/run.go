package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"assetpress/internal/batch"
	"assetpress/internal/tui"
)

// runBatch is the shared command body: discover files under root,
// process them sequentially behind the progress view (or plain lines
// with --no-tui), then print per-file outcomes and the summary table.
func runBatch(title, root string, exts map[string]bool, recursive bool, process batch.ProcessFunc) error {
	tasks, err := batch.Discover(root, exts, recursive)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Fprintf(os.Stdout, "No matching files found in %s\n", root)
		return nil
	}

	var summary batch.Summary
	var outcomes []batch.Outcome

	if noTUI {
		logged := func(ctx context.Context, task batch.Task) batch.Outcome {
			out := process(ctx, task)
			fmt.Fprintln(os.Stdout, tui.RenderOutcome(out))
			return out
		}
		summary, _ = batch.Run(context.Background(), tasks, logged, nil)
	} else {
		updates := make(chan batch.ProgressUpdate, 64)
		model := tui.NewModel(title, updates)
		program := tea.NewProgram(model)

		uiDone := make(chan struct{})
		go func() {
			_, _ = program.Run()
			close(uiDone)
		}()

		summary, outcomes = batch.Run(context.Background(), tasks, process, updates)
		close(updates)
		<-uiDone

		for _, out := range outcomes {
			fmt.Fprintln(os.Stdout, tui.RenderOutcome(out))
		}
	}

	fmt.Fprintln(os.Stdout, tui.RenderSummary(summaryRows(summary)))
	return nil
}

func summaryRows(s batch.Summary) []tui.SummaryRow {
	rows := []tui.SummaryRow{
		{Label: "Files found", Value: fmt.Sprintf("%d", s.Total)},
		{Label: "Processed", Value: fmt.Sprintf("%d", s.Succeeded)},
		{Label: "Skipped", Value: fmt.Sprintf("%d", s.Skipped)},
		{Label: "Failed", Value: fmt.Sprintf("%d", s.Failed)},
	}
	if s.Succeeded == 0 {
		return rows
	}

	if s.BytesIn == 0 {
		// Pipelines that only create new files have nothing to compare.
		return append(rows, tui.SummaryRow{Label: "Bytes written", Value: humanize.IBytes(uint64(s.BytesOut))})
	}

	rows = append(rows,
		tui.SummaryRow{Label: "Total input size", Value: humanize.IBytes(uint64(s.BytesIn))},
		tui.SummaryRow{Label: "Total output size", Value: humanize.IBytes(uint64(s.BytesOut))},
	)
	if saved := s.SpaceSaved(); saved >= 0 {
		rows = append(rows, tui.SummaryRow{Label: "Space saved", Value: humanize.IBytes(uint64(saved))})
	} else {
		rows = append(rows, tui.SummaryRow{Label: "Space saved", Value: "-" + humanize.IBytes(uint64(-saved))})
	}
	return rows
}
