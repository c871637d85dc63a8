package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/backmassage/reviewtool/internal/check"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:         "check [source_dir]",
		Short:       "Check the configuration, a source folder and the journal",
		Args:        cobra.MaximumNArgs(1),
		Annotations: map[string]string{skipValidate: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir string
			if len(args) == 1 {
				dir = args[0]
			}
			if !check.Run(cmd.Context(), a.cfg, dir, a.log) {
				return errors.New("check failed")
			}
			return nil
		},
	}
}
