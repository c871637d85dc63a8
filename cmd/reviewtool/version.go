package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/backmassage/reviewtool/internal/display"
)

func newVersionCmd(a *app) *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if short {
				_, err := fmt.Fprintln(a.stdout, version)
				return err
			}
			display.PrintBanner(a.stdout, version)
			_, err := fmt.Fprintf(a.stdout, "commit %s\n", commit)
			return err
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print the version number only")
	return cmd
}
