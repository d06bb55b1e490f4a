package cmd

import (
	"fmt"

	"github.com/Iron-Ham/obslist/internal/apt"
	"github.com/Iron-Ham/obslist/internal/config"
	"github.com/Iron-Ham/obslist/internal/errors"
	"github.com/gobwas/glob"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const maxLabelWidth = 40

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the observations and filters a proposal would produce",
	Long: `Show the observations and filters a proposal would produce, without
writing anything.

--match keeps only observations whose label matches a glob pattern,
e.g. --match "*phasing*". Filters are still derived from the whole proposal.`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	flags := inspectCmd.Flags()
	flags.String("xml", "", "APT XML export to read")
	flags.String("match", "", "only show observations whose label matches this glob")
	annotateFlag(flags, "xml", "proposal.xml_file")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	var matcher glob.Glob
	if pattern, _ := cmd.Flags().GetString("match"); pattern != "" {
		matcher, err = glob.Compile(pattern)
		if err != nil {
			return errors.NewValidationError("invalid --match pattern").
				WithField("match").
				WithValue(pattern).
				WithCause(err)
		}
	}

	path := cfg.Proposal.XMLFile
	reader := apt.NewReader(afero.NewOsFs(), apt.WithLogger(logger))
	set, err := reader.ExtractObservations(path)
	if err != nil {
		return err
	}
	table, err := reader.ExtractFilterTable(path)
	if err != nil {
		return err
	}
	filters, err := apt.DeriveFiltersPerObservation(table)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	st := newStyles(out)

	fmt.Fprintln(out, st.Title.Render("Proposal: "+path))
	fmt.Fprintf(out, "%d observations retained, %d filter records, %d filter groups\n\n",
		set.Len(), table.Len(), filters.Len())

	rows := [][]string{{"HEADING", "INSTRUMENT", "LABEL", "SW", "LW"}}
	for i, obs := range set.Observations {
		if matcher != nil && !matcher.Match(obs.Label) {
			continue
		}
		sw, lw := "-", "-"
		if i < filters.Len() {
			sw, lw = filters.SW[i], filters.LW[i]
		}
		rows = append(rows, []string{
			fmt.Sprintf("Observation%d", obs.Index+1),
			obs.Instrument,
			truncate(obs.Label, maxLabelWidth),
			sw,
			lw,
		})
	}

	if len(rows) == 1 {
		fmt.Fprintln(out, st.Muted.Render("No matching observations."))
	} else {
		fmt.Fprintln(out, renderTable(st, rows))
	}

	if set.Len() != filters.Len() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, st.Warning.Render(fmt.Sprintf(
			"Warning: %d observations but %d filter groups; write will refuse this proposal.",
			set.Len(), filters.Len())))
	}
	return nil
}
