package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Iron-Ham/obslist/internal/config"
	"github.com/Iron-Ham/obslist/internal/errors"
	"github.com/Iron-Ham/obslist/internal/logging"
	"github.com/Iron-Ham/obslist/internal/obslist"
	"github.com/Iron-Ham/obslist/internal/watch"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Write an observation list from an APT proposal",
	Long: `Write an observation list from an APT proposal.

Every NIRCAM and WFSC observation in the proposal becomes one block,
headed by its position in the proposal. One SW and one LW point-source
catalog must be given per retained observation, in document order:

  obslist write --xml OTE01-1134.xml -o ote01.yaml \
    --sw-catalog sw1.list --sw-catalog sw2.list \
    --lw-catalog lw1.list --lw-catalog lw2.list

With --watch the list is rewritten whenever the proposal changes.`,
	Args: cobra.NoArgs,
	RunE: runWrite,
}

func init() {
	rootCmd.AddCommand(writeCmd)

	flags := writeCmd.Flags()
	flags.String("xml", "", "APT XML export to read")
	flags.String("pointing", "", "APT pointing file (accepted, not read)")
	flags.StringP("output", "o", "", "observation list to write")
	flags.StringSlice("sw-catalog", nil, "SW point-source catalog, once per observation")
	flags.StringSlice("lw-catalog", nil, "LW point-source catalog, once per observation")
	flags.Bool("watch", false, "rewrite the list whenever the proposal changes")
	annotateFlag(flags, "xml", "proposal.xml_file")
	annotateFlag(flags, "pointing", "proposal.pointing_file")
	annotateFlag(flags, "output", "output.path")
	annotateFlag(flags, "sw-catalog", "catalogs.sw")
	annotateFlag(flags, "lw-catalog", "catalogs.lw")
}

func runWrite(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	w := obslist.NewWriter(afero.NewOsFs(),
		obslist.WithLogger(logger),
		obslist.WithSummaryOutput(cmd.OutOrStdout()))

	write := func() error {
		_, err := w.Write(cfg.Proposal.XMLFile, cfg.Proposal.PointingFile, cfg.Output.Path,
			cfg.Catalogs.SW, cfg.Catalogs.LW)
		return err
	}

	if watchMode, _ := cmd.Flags().GetBool("watch"); watchMode {
		return watchAndWrite(cmd, cfg, logger, write)
	}
	return write()
}

// watchAndWrite writes once, then again after every settled change to the
// proposal, until interrupted. Failed writes are reported and watching
// continues.
func watchAndWrite(cmd *cobra.Command, cfg *config.Config, logger *logging.Logger, write func() error) error {
	st := newStyles(cmd.OutOrStdout())
	report := func() {
		if err := write(); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), st.Error.Render("Error: "+err.Error()))
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := watch.New(cfg.Proposal.XMLFile, report,
		watch.WithDebounce(cfg.Watch.Debounce),
		watch.WithLogger(logger))
	if err != nil {
		return errors.Wrapf(err, "failed to watch %s", cfg.Proposal.XMLFile)
	}

	report()
	fmt.Fprintln(cmd.OutOrStdout(), st.Muted.Render(
		fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", watcher.Path())))

	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
