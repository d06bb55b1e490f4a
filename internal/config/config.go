package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config represents the complete obslist configuration
type Config struct {
	Proposal ProposalConfig `mapstructure:"proposal" yaml:"proposal"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output"`
	Catalogs CatalogConfig  `mapstructure:"catalogs" yaml:"catalogs"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	Watch    WatchConfig    `mapstructure:"watch" yaml:"watch"`
}

// ProposalConfig names the APT inputs for a run
type ProposalConfig struct {
	// XMLFile is the APT XML export to read observations and filters from
	XMLFile string `mapstructure:"xml_file" yaml:"xml_file"`
	// PointingFile is the APT pointing export. It is accepted for
	// compatibility with older invocations and is not read.
	PointingFile string `mapstructure:"pointing_file" yaml:"pointing_file"`
}

// OutputConfig controls where the observation list is written
type OutputConfig struct {
	// Path is the observation list file; it is overwritten on every run
	Path string `mapstructure:"path" yaml:"path"`
}

// CatalogConfig holds the per-observation point-source catalogs.
// Each list needs one entry per retained observation, in document order.
type CatalogConfig struct {
	SW []string `mapstructure:"sw" yaml:"sw"`
	LW []string `mapstructure:"lw" yaml:"lw"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether structured logs are emitted (default: true)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "warn")
	Level string `mapstructure:"level" yaml:"level"`
	// Dir receives obslist.log. Empty means stderr.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// WatchConfig controls `obslist write --watch`
type WatchConfig struct {
	// Debounce is how long the proposal must stay quiet before re-rendering
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce"`
}

// Default returns a Config with the historical example inputs
func Default() *Config {
	return &Config{
		Proposal: ProposalConfig{
			XMLFile:      "../OTECommissioning/OTE01/OTE01-1134.xml",
			PointingFile: "../OTECommissioning/OTE01/OTE01-1134.pointing",
		},
		Output: OutputConfig{
			Path: "test.yaml",
		},
		Catalogs: CatalogConfig{
			SW: []string{},
			LW: []string{},
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "warn",
			Dir:     "",
		},
		Watch: WatchConfig{
			Debounce: 250 * time.Millisecond,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("proposal.xml_file", defaults.Proposal.XMLFile)
	viper.SetDefault("proposal.pointing_file", defaults.Proposal.PointingFile)

	viper.SetDefault("output.path", defaults.Output.Path)

	viper.SetDefault("catalogs.sw", defaults.Catalogs.SW)
	viper.SetDefault("catalogs.lw", defaults.Catalogs.LW)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)

	viper.SetDefault("watch.debounce", defaults.Watch.Debounce)
}

// decodeHook lets environment variables carry lists and durations,
// e.g. OBSLIST_CATALOGS_SW="a.list,b.list" or OBSLIST_WATCH_DEBOUNCE=1s.
func decodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "obslist")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".obslist"
	}
	return filepath.Join(home, ".config", "obslist")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
