package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/backmassage/reviewtool/internal/config"
	"github.com/backmassage/reviewtool/internal/journal"
	"github.com/backmassage/reviewtool/internal/logging"
	"github.com/backmassage/reviewtool/internal/pipeline"
)

// skipValidate marks commands that report config problems themselves.
const skipValidate = "skip-validate"

var errNoJournal = errors.New("no journal configured (set journal_path or --journal)")

// app holds the state shared by every command once the root pre-run has
// loaded the configuration.
type app struct {
	flags   config.Flags
	cfg     *config.Config
	log     *logging.Logger
	journal *journal.Journal
	stdout  io.Writer
	stderr  io.Writer
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "reviewtool",
		Short: "Number reviewed book scans into a review folder",
		Long: `reviewtool turns an operator's review of a folder of scanned pages into a
numbered review folder: accepted pages get sortable page-number names,
rejected pages are set aside with their reason, and a mapping file records
every original name.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	config.DefineGlobalFlags(root.PersistentFlags(), &a.flags)

	root.AddCommand(
		newScanCmd(a),
		newFinalizeCmd(a),
		newApplyCmd(a),
		newNamesCmd(a),
		newHistoryCmd(a),
		newCheckCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup builds the configuration from file, environment and flags, then
// opens the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.flags.ConfigPath)
	if err != nil {
		return err
	}
	a.flags.Apply(cmd.Flags(), cfg)
	if cmd.Annotations[skipValidate] == "" {
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	log, err := logging.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	a.log = log
	return nil
}

// recorder opens the journal when one is configured. A nil Recorder means
// runs are not journaled.
func (a *app) recorder(ctx context.Context) (pipeline.Recorder, error) {
	if a.cfg.JournalPath == "" {
		return nil, nil
	}
	j, err := a.openJournal(ctx)
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (a *app) openJournal(ctx context.Context) (*journal.Journal, error) {
	if a.journal != nil {
		return a.journal, nil
	}
	if a.cfg.JournalPath == "" {
		return nil, errNoJournal
	}
	j, err := journal.Open(ctx, a.cfg.JournalPath)
	if err != nil {
		return nil, err
	}
	a.journal = j
	return j, nil
}

// fail reports err through the logger, or straight to stderr when setup
// never got that far.
func (a *app) fail(err error) {
	if a.log != nil {
		a.log.Error("%v", err)
		return
	}
	fmt.Fprintf(a.stderr, "reviewtool: %v\n", err)
}

func (a *app) close() {
	if a.journal != nil {
		if err := a.journal.Close(); err != nil && a.log != nil {
			a.log.Warn("Closing journal: %v", err)
		}
	}
	if a.log != nil {
		a.log.Close()
	}
}
