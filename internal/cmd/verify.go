package cmd

import (
	"fmt"

	"github.com/Iron-Ham/obslist/internal/errors"
	"github.com/Iron-Ham/obslist/internal/obslist"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <list-file>",
	Short: "Check that an observation list parses and summarize it",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	path := args[0]

	f, err := afero.NewOsFs().Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	list, err := obslist.Decode(f)
	if err != nil {
		return errors.Wrapf(err, "%s", path)
	}

	seen := make(map[int]bool)
	for _, e := range list.Entries {
		if seen[e.Number] {
			return errors.NewValidationError(fmt.Sprintf("%s: duplicate block", path)).
				WithField("heading").
				WithValue(e.Heading())
		}
		seen[e.Number] = true
	}

	out := cmd.OutOrStdout()
	st := newStyles(out)

	rows := [][]string{{"HEADING", "NAME", "SW FILTER", "SW CATALOG", "LW FILTER", "LW CATALOG"}}
	for _, e := range list.Entries {
		rows = append(rows, []string{
			e.Heading(),
			truncate(e.Name, maxLabelWidth),
			e.SW.Filter,
			e.SW.PointSourceCatalog,
			e.LW.Filter,
			e.LW.PointSourceCatalog,
		})
	}
	if list.Len() > 0 {
		fmt.Fprintln(out, renderTable(st, rows))
		fmt.Fprintln(out)
	}
	fmt.Fprintln(out, st.Success.Render(fmt.Sprintf("%s: %d observations OK", path, list.Len())))
	return nil
}
