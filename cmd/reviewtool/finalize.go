package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/backmassage/reviewtool/internal/config"
	"github.com/backmassage/reviewtool/internal/pipeline"
	"github.com/backmassage/reviewtool/internal/report"
	"github.com/backmassage/reviewtool/internal/review"
)

func newFinalizeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finalize <session.yaml>",
		Short: "Name and copy a reviewed session into its review folder",
		Long: `Finalize assigns every reviewed image its page-number name, copies the
images into the review folder (accepted pages, rejected pages under the
rejected folder, pending pages with a not-reviewed prefix) and writes the
mapping and stats files. Issues are printed to stdout as tab-separated
lines.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.finalize(cmd.Context(), args[0])
		},
	}
	config.DefineOutputFlags(cmd.Flags(), &a.flags)
	config.DefineFinalizeFlags(cmd.Flags(), &a.flags)
	return cmd
}

func (a *app) finalize(ctx context.Context, sessionPath string) error {
	sess, err := review.Load(sessionPath)
	if err != nil {
		return err
	}
	pending, accepted, rejected := sess.Counts()
	a.log.Debug("Session %s: %d accepted, %d rejected, %d pending", sessionPath, accepted, rejected, pending)

	rec, err := a.recorder(ctx)
	if err != nil {
		return err
	}
	log := a.log
	if sess.BookID != "" {
		log = log.With("book", sess.BookID)
	}
	stats, err := pipeline.Finalize(ctx, a.cfg, log, sess, rec)
	if err != nil {
		return err
	}
	return report.WriteIssues(a.stdout, stats.Issues)
}
