package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/capsaicin/security-gate/internal/gate"
	"github.com/capsaicin/security-gate/internal/reporting"
)

// EnvPrefix scopes the variables that override tool settings.
const EnvPrefix = "SECURITY_GATE"

type Config struct {
	CheckRequiredVars    bool
	Threshold            Threshold
	EnforceDefaultBranch bool

	ReportsDir   string
	ReportFiles  []string
	RequiredVars []string

	ConfigFile string
	EnvFiles   []string
	Debug      bool
}

// Threshold is the --severity-threshold flag. Invalid levels are rejected
// while flags are parsed.
type Threshold struct {
	Level gate.Severity
	IsSet bool
}

func (t *Threshold) String() string {
	if !t.IsSet {
		return ""
	}
	return t.Level.String()
}

func (t *Threshold) Set(value string) error {
	level, ok := gate.ParseSeverity(value)
	if !ok {
		return fmt.Errorf("invalid choice: '%s' (choose from %s)", value, strings.Join(gate.Levels(), ", "))
	}
	t.Level = level
	t.IsSet = true
	return nil
}

func (t *Threshold) Type() string {
	return "level"
}

// Register defines the command line flags on flags, storing into cfg.
func Register(flags *pflag.FlagSet, cfg *Config) {
	flags.BoolVar(&cfg.CheckRequiredVars, "check-required-vars", false, "Validate required protected variables")
	flags.Var(&cfg.Threshold, "severity-threshold", "Severity threshold to enforce ("+strings.Join(gate.Levels(), ", ")+")")
	flags.BoolVar(&cfg.EnforceDefaultBranch, "enforce-default-branch", false, "Only fail when running on default branch")
	flags.StringVar(&cfg.ReportsDir, "reports-dir", ".", "Directory containing the GitLab Secure report files")
	flags.StringVar(&cfg.ConfigFile, "config", "", "Optional config file (yaml, json or toml)")
	flags.StringArrayVar(&cfg.EnvFiles, "env-file", nil, "Load variables from a dotenv file (repeatable, never overrides)")
	flags.BoolVar(&cfg.Debug, "debug", false, "Enable debug diagnostics on stderr")
}

// Load resolves the settings that may also come from the environment or a
// config file. Precedence: changed flag, SECURITY_GATE_* variable, config
// file, default.
func Load(cfg *Config, flags *pflag.FlagSet) error {
	if len(cfg.EnvFiles) > 0 {
		if err := godotenv.Load(cfg.EnvFiles...); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("reports_dir", ".")
	v.SetDefault("report_files", reporting.DefaultReportFiles)
	v.SetDefault("required_vars", gate.DefaultRequiredVars)
	v.SetDefault("debug", false)

	for key, name := range map[string]string{"reports_dir": "reports-dir", "debug": "debug"} {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if cfg.ConfigFile != "" {
		v.SetConfigFile(cfg.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfg.ConfigFile, err)
		}
	}

	cfg.ReportsDir = v.GetString("reports_dir")
	cfg.ReportFiles = v.GetStringSlice("report_files")
	cfg.RequiredVars = v.GetStringSlice("required_vars")
	cfg.Debug = v.GetBool("debug")

	return Validate(cfg)
}

func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.ReportsDir) == "" {
		return errors.New("reports directory must not be empty")
	}
	for _, name := range cfg.ReportFiles {
		if strings.TrimSpace(name) == "" {
			return errors.New("report_files contains an empty name")
		}
	}
	for _, name := range cfg.RequiredVars {
		if strings.TrimSpace(name) == "" {
			return errors.New("required_vars contains an empty name")
		}
	}
	return nil
}

// Environment returns the lookup the gate uses for CI variables.
func Environment() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}
