package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/backmassage/reviewtool/internal/report"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "List journaled runs, or the mapping rows of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return a.historyEntries(cmd.Context(), args[0])
			}
			return a.historyRuns(cmd.Context(), limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to list (0 for all)")
	return cmd
}

func (a *app) historyRuns(ctx context.Context, limit int) error {
	j, err := a.openJournal(ctx)
	if err != nil {
		return err
	}
	runs, err := j.Runs(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		a.log.Info("No runs recorded in %s", a.cfg.JournalPath)
		return nil
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKIND\tSTARTED\tBOOK\tITEMS\tMISSING\tOUTPUT")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			r.ID, r.Kind, r.StartedAt.Local().Format("2006-01-02 15:04"), dash(r.BookID), r.Items, r.Missing, r.OutputDir)
	}
	return tw.Flush()
}

// historyEntries prints a run's rows in mapping-file format.
func (a *app) historyEntries(ctx context.Context, runID string) error {
	j, err := a.openJournal(ctx)
	if err != nil {
		return err
	}
	entries, err := j.Entries(ctx, runID)
	if err != nil {
		return err
	}
	m := &report.Mapping{Rows: make([]report.MappingRow, len(entries))}
	for i, e := range entries {
		m.Rows[i] = e.MappingRow
	}
	return report.WriteMapping(a.stdout, m)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
