package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.Proposal.XMLFile != "../OTECommissioning/OTE01/OTE01-1134.xml" {
		t.Errorf("Proposal.XMLFile = %q", cfg.Proposal.XMLFile)
	}
	if cfg.Proposal.PointingFile != "../OTECommissioning/OTE01/OTE01-1134.pointing" {
		t.Errorf("Proposal.PointingFile = %q", cfg.Proposal.PointingFile)
	}
	if cfg.Output.Path != "test.yaml" {
		t.Errorf("Output.Path = %q, want %q", cfg.Output.Path, "test.yaml")
	}
	if len(cfg.Catalogs.SW) != 0 || len(cfg.Catalogs.LW) != 0 {
		t.Errorf("Catalogs should default to empty, got %+v", cfg.Catalogs)
	}
	if !cfg.Logging.Enabled {
		t.Error("Logging.Enabled should be true by default")
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "warn")
	}
	if cfg.Watch.Debounce != 250*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 250ms", cfg.Watch.Debounce)
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		if got, want := ConfigDir(), "/custom/config/obslist"; got != want {
			t.Errorf("ConfigDir() = %q, want %q", got, want)
		}
	})

	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		home, _ := os.UserHomeDir()
		if got, want := ConfigDir(), filepath.Join(home, ".config", "obslist"); got != want {
			t.Errorf("ConfigDir() = %q, want %q", got, want)
		}
	})
}

func TestConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got, want := ConfigFile(), "/custom/config/obslist/config.yaml"; got != want {
		t.Errorf("ConfigFile() = %q, want %q", got, want)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.SetEnvPrefix("OBSLIST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	t.Setenv("OBSLIST_CATALOGS_SW", "a_sw.list,b_sw.list")
	t.Setenv("OBSLIST_CATALOGS_LW", "a_lw.list,b_lw.list")
	t.Setenv("OBSLIST_WATCH_DEBOUNCE", "2s")
	t.Setenv("OBSLIST_OUTPUT_PATH", "obs.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := cfg.Catalogs.SW; len(got) != 2 || got[0] != "a_sw.list" || got[1] != "b_sw.list" {
		t.Errorf("Catalogs.SW = %v", got)
	}
	if got := cfg.Catalogs.LW; len(got) != 2 || got[1] != "b_lw.list" {
		t.Errorf("Catalogs.LW = %v", got)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("Watch.Debounce = %v, want 2s", cfg.Watch.Debounce)
	}
	if cfg.Output.Path != "obs.yaml" {
		t.Errorf("Output.Path = %q, want obs.yaml", cfg.Output.Path)
	}
}

func TestLoad_FromFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `proposal:
  xml_file: prop.xml
catalogs:
  sw: [one_sw.list]
  lw: [one_lw.list]
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Proposal.XMLFile != "prop.xml" {
		t.Errorf("Proposal.XMLFile = %q", cfg.Proposal.XMLFile)
	}
	if cfg.Proposal.PointingFile != Default().Proposal.PointingFile {
		t.Errorf("Proposal.PointingFile should keep its default, got %q", cfg.Proposal.PointingFile)
	}
	if len(cfg.Catalogs.SW) != 1 || cfg.Catalogs.SW[0] != "one_sw.list" {
		t.Errorf("Catalogs.SW = %v", cfg.Catalogs.SW)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q", cfg.Logging.Level)
	}
}

func TestLoad_RejectsInvalidLevel(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()
	viper.Set("logging.level", "loud")

	_, err := Load()
	var errs ValidationErrors
	if !errors.As(err, &errs) {
		t.Fatalf("Load() error = %v, want ValidationErrors", err)
	}
	if len(errs) != 1 || errs[0].Field != "logging.level" {
		t.Errorf("Load() errors = %v, want one logging.level error", errs)
	}
}

func TestDefault_MarshalsAsYAML(t *testing.T) {
	data, err := yaml.Marshal(Default())
	if err != nil {
		t.Fatalf("yaml.Marshal: %v", err)
	}

	var back Config
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}
	if back.Output.Path != "test.yaml" || back.Proposal.XMLFile != Default().Proposal.XMLFile {
		t.Errorf("round trip lost values: %+v", back)
	}
}
