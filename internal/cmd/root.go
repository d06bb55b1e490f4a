package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/Iron-Ham/obslist/internal/config"
	"github.com/Iron-Ham/obslist/internal/errors"
	"github.com/Iron-Ham/obslist/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// viperKeyAnnotation marks a flag with the config key it overrides.
const viperKeyAnnotation = "obslist_viper_key"

var rootCmd = &cobra.Command{
	Use:   "obslist",
	Short: "Build NIRCam simulator observation lists from APT proposals",
	Long: `obslist reads an APT (Astronomer's Proposal Tool) XML export, keeps the
NIRCAM and WFSC observations, derives one short- and one long-wavelength
filter per observation and writes an observation-list file for the
simulator. Fields other than names, filters and point-source catalogs
are filled with fixed defaults.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: bindFlags,
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func reportError(w io.Writer, err error) {
	st := newStyles(w)
	fmt.Fprintln(w, st.Error.Render("Error: "+err.Error()))

	switch {
	case errors.Is(err, errors.ErrDimensionMismatch):
		fmt.Fprintln(w, st.Muted.Render(
			"Pass one --sw-catalog and one --lw-catalog per NIRCAM/WFSC observation; 'obslist inspect' lists them."))
	case errors.GetSeverity(err) >= errors.SeverityCritical:
		fmt.Fprintln(w, st.Muted.Render("Nothing was written; any existing observation list is unchanged."))
	case errors.IsDomainError(err) && (errors.Is(err, errors.ErrProposalParse) || errors.Is(err, errors.ErrProposalStructure)):
		fmt.Fprintln(w, st.Muted.Render("Check that --xml points at an APT XML export."))
	case errors.IsSemanticError(err):
		// The message names the offending value.
	case !errors.IsUserFacing(err):
		fmt.Fprintln(w, st.Muted.Render("Run with --log-level debug for details."))
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.config/obslist/config.yaml)")
	flags.String("log-level", "", "log level: "+strings.Join(config.ValidLogLevels(), ", "))
	flags.String("log-dir", "", "directory for obslist.log (default is stderr)")
	annotateFlag(flags, "log-level", "logging.level")
	annotateFlag(flags, "log-dir", "logging.dir")
}

func initConfig() {
	// A .env file in the working directory may carry OBSLIST_* settings;
	// it never overrides variables that are already set.
	_ = godotenv.Load()

	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/obslist")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("OBSLIST")
	// e.g., OBSLIST_PROPOSAL_XML_FILE for proposal.xml_file
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// annotateFlag records the config key a flag overrides. The binding itself
// happens in bindFlags, once the command being run is known.
func annotateFlag(flags *pflag.FlagSet, name, key string) {
	_ = flags.SetAnnotation(name, viperKeyAnnotation, []string{key})
}

// bindFlags binds every annotated flag of the running command to viper.
// Commands may share a key, so only the running command's flags are bound.
func bindFlags(cmd *cobra.Command, _ []string) error {
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		keys := f.Annotations[viperKeyAnnotation]
		if len(keys) == 0 || err != nil {
			return
		}
		err = viper.BindPFlag(keys[0], f)
	})
	return err
}

// newLogger creates the logger described by cfg. Without a log directory
// records go to the command's error stream.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	if cfg.Logging.Dir == "" {
		return logging.NewWriterLogger(cmd.ErrOrStderr(), cfg.Logging.Level), nil
	}
	return logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
}
