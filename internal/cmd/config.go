package cmd

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Iron-Ham/obslist/internal/config"
	"github.com/Iron-Ham/obslist/internal/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or modify obslist configuration",
	Long: `View or modify obslist configuration.

Without arguments, displays the current configuration.
Use subcommands to modify settings or create a config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the user's config file.

Keys use dot notation, e.g.:
  obslist config set proposal.xml_file OTE01-1134.xml
  obslist config set catalogs.sw sw1.list,sw2.list
  obslist config set watch.debounce 500ms

Valid keys:
  proposal.xml_file       - APT XML export to read
  proposal.pointing_file  - APT pointing file (not read)
  output.path             - Observation list to write
  catalogs.sw             - SW point-source catalogs, comma separated
  catalogs.lw             - LW point-source catalogs, comma separated
  logging.enabled         - Emit structured logs (true/false)
  logging.level           - debug, info, warn or error
  logging.dir             - Directory for obslist.log (empty for stderr)
  watch.debounce          - Quiet period before --watch rewrites (e.g. 250ms)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/obslist/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

// settableKeys maps each config key to the kind of value it takes.
var settableKeys = map[string]string{
	"proposal.xml_file":      "string",
	"proposal.pointing_file": "string",
	"output.path":            "string",
	"catalogs.sw":            "list",
	"catalogs.lw":            "list",
	"logging.enabled":        "bool",
	"logging.level":          "level",
	"logging.dir":            "string",
	"watch.debounce":         "duration",
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(out, "Configuration is invalid, showing defaults:\n%v\n\n", err)
		cfg = config.Default()
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out)

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintln(out, "Config file: (none - using defaults)")
	}
	fmt.Fprintln(out)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to render configuration")
	}
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key := args[0]
	value := args[1]

	kind, ok := settableKeys[key]
	if !ok {
		keys := slices.Sorted(maps.Keys(settableKeys))
		return fmt.Errorf("unknown configuration key: %s\nValid keys: %s", key, strings.Join(keys, ", "))
	}

	// Validate the value based on type
	var typed any
	switch kind {
	case "string":
		typed = value
	case "list":
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		typed = items
	case "bool":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		typed = b
	case "level":
		level := strings.ToLower(value)
		if !slices.Contains(config.ValidLogLevels(), level) {
			return fmt.Errorf("invalid value for %s: %s\nValid options: %s",
				key, value, strings.Join(config.ValidLogLevels(), ", "))
		}
		typed = level
	case "duration":
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return fmt.Errorf("invalid value for %s: expected a non-negative duration such as 250ms", key)
		}
		typed = d.String()
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = config.ConfigFile()
	}
	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set(key, typed)
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Set %s = %v\n", key, typed)
	fmt.Fprintf(out, "Config saved to %s\n", configFile)
	return nil
}

// configHeader precedes the generated defaults in `config init`.
const configHeader = `# obslist configuration
#
# Every key can also be set with an OBSLIST_* environment variable,
# e.g. OBSLIST_OUTPUT_PATH or OBSLIST_CATALOGS_SW=sw1.list,sw2.list.
#
# catalogs.sw and catalogs.lw need one entry per NIRCAM/WFSC observation,
# in proposal order. logging.level is one of: %s.

`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s\nUse 'obslist config set' to modify values", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return errors.Wrap(err, "failed to render default configuration")
	}
	content := fmt.Sprintf(configHeader, strings.Join(config.ValidLogLevels(), ", ")) + string(data)

	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created config file at %s\n", configFile)
	fmt.Fprintln(out, "Edit this file to customize obslist's defaults.")
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	configFile := config.ConfigFile()

	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", configFile)
	}

	// Also show config search paths
	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", configFile)
	fmt.Fprintln(out, "  2. $HOME/.config/obslist/config.yaml")
	fmt.Fprintln(out, "  3. ./config.yaml (current directory)")
	fmt.Fprintln(out, "\nEnvironment variables: OBSLIST_* (e.g., OBSLIST_PROPOSAL_XML_FILE)")
	fmt.Fprintln(out, "A .env file in the current directory is loaded first.")
	return nil
}
