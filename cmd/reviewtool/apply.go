package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/backmassage/reviewtool/internal/config"
	"github.com/backmassage/reviewtool/internal/pipeline"
	"github.com/backmassage/reviewtool/internal/report"
)

func newApplyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <source_dir> <mapping.tsv>",
		Short: "Rebuild a review folder from a mapping file",
		Long: `Apply copies the images of a source folder into its review folder using
the names and statuses recorded in a mapping file. The folder must hold
exactly the images the mapping lists.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.apply(cmd.Context(), args[0], args[1])
		},
	}
	config.DefineOutputFlags(cmd.Flags(), &a.flags)
	cmd.Flags().IntVarP(&a.flags.Workers, "workers", "j", 0, "Parallel file copies")
	return cmd
}

func (a *app) apply(ctx context.Context, sourceDir, mappingPath string) error {
	m, err := report.LoadMapping(mappingPath)
	if err != nil {
		return err
	}
	rec, err := a.recorder(ctx)
	if err != nil {
		return err
	}
	stats, err := pipeline.Apply(ctx, a.cfg, a.log, sourceDir, m, mappingPath, rec)
	if err != nil {
		return err
	}
	return report.WriteIssues(a.stdout, stats.Issues)
}
