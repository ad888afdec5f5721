package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/capsaicin/security-gate/internal/gate"
	"github.com/capsaicin/security-gate/internal/reporting"
)

func newFlags(t *testing.T, args ...string) (*Config, *pflag.FlagSet) {
	t.Helper()
	cfg := &Config{}
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Register(flags, cfg)
	if err := flags.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return cfg, flags
}

func TestThresholdFlag_Valid(t *testing.T) {
	cfg, _ := newFlags(t, "--severity-threshold", "medium")
	if !cfg.Threshold.IsSet || cfg.Threshold.Level != gate.SeverityMedium {
		t.Errorf("expected medium, got %+v", cfg.Threshold)
	}
	if cfg.Threshold.String() != "medium" {
		t.Errorf("unexpected String(): %q", cfg.Threshold.String())
	}
}

func TestThresholdFlag_Invalid(t *testing.T) {
	for _, value := range []string{"severe", "HIGH", ""} {
		cfg := &Config{}
		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.SetOutput(new(strings.Builder))
		Register(flags, cfg)

		err := flags.Parse([]string{"--severity-threshold=" + value})
		if err == nil {
			t.Errorf("expected %q to be rejected", value)
			continue
		}
		if !strings.Contains(err.Error(), "invalid choice") {
			t.Errorf("unexpected error for %q: %v", value, err)
		}
		if cfg.Threshold.IsSet {
			t.Errorf("threshold should stay unset after %q", value)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, flags := newFlags(t)
	if err := Load(cfg, flags); err != nil {
		t.Fatal(err)
	}

	if cfg.ReportsDir != "." {
		t.Errorf("expected default reports dir, got %q", cfg.ReportsDir)
	}
	if strings.Join(cfg.ReportFiles, ",") != strings.Join(reporting.DefaultReportFiles, ",") {
		t.Errorf("expected default report files, got %v", cfg.ReportFiles)
	}
	if strings.Join(cfg.RequiredVars, ",") != strings.Join(gate.DefaultRequiredVars, ",") {
		t.Errorf("expected default required vars, got %v", cfg.RequiredVars)
	}
	if cfg.Debug {
		t.Error("expected debug off by default")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gate.yaml")
	content := "reports_dir: artifacts\nreport_files:\n  - custom.json\nrequired_vars:\n  - ONE\n  - TWO\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, flags := newFlags(t, "--config", path)
	if err := Load(cfg, flags); err != nil {
		t.Fatal(err)
	}

	if cfg.ReportsDir != "artifacts" {
		t.Errorf("expected reports dir from file, got %q", cfg.ReportsDir)
	}
	if strings.Join(cfg.ReportFiles, ",") != "custom.json" {
		t.Errorf("unexpected report files: %v", cfg.ReportFiles)
	}
	if strings.Join(cfg.RequiredVars, ",") != "ONE,TWO" {
		t.Errorf("unexpected required vars: %v", cfg.RequiredVars)
	}
}

func TestLoad_FlagBeatsEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gate.yaml")
	if err := os.WriteFile(path, []byte("reports_dir: from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SECURITY_GATE_REPORTS_DIR", "from-env")

	cfg, flags := newFlags(t, "--config", path)
	if err := Load(cfg, flags); err != nil {
		t.Fatal(err)
	}
	if cfg.ReportsDir != "from-env" {
		t.Errorf("expected env to beat config file, got %q", cfg.ReportsDir)
	}

	cfg, flags = newFlags(t, "--config", path, "--reports-dir", "from-flag")
	if err := Load(cfg, flags); err != nil {
		t.Fatal(err)
	}
	if cfg.ReportsDir != "from-flag" {
		t.Errorf("expected flag to win, got %q", cfg.ReportsDir)
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	cfg, flags := newFlags(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	if err := Load(cfg, flags); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_EnvFileDoesNotOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ci.env")
	content := "SECURITY_GATE_TEST_FROM_FILE=file\nSECURITY_GATE_TEST_PRESET=file\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SECURITY_GATE_TEST_PRESET", "process")
	// Registered with t.Setenv so the variable is cleaned up after the test.
	t.Setenv("SECURITY_GATE_TEST_FROM_FILE", "")
	os.Unsetenv("SECURITY_GATE_TEST_FROM_FILE")

	cfg, flags := newFlags(t, "--env-file", path)
	if err := Load(cfg, flags); err != nil {
		t.Fatal(err)
	}

	env := Environment()
	if got := env.GetString("SECURITY_GATE_TEST_FROM_FILE"); got != "file" {
		t.Errorf("expected value from env file, got %q", got)
	}
	if got := env.GetString("SECURITY_GATE_TEST_PRESET"); got != "process" {
		t.Errorf("expected process value to win, got %q", got)
	}
}

func TestLoad_MissingEnvFile(t *testing.T) {
	cfg, flags := newFlags(t, "--env-file", filepath.Join(t.TempDir(), "absent.env"))
	if err := Load(cfg, flags); err == nil {
		t.Error("expected error for missing env file")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(&Config{ReportsDir: " "}); err == nil {
		t.Error("expected empty reports dir to fail")
	}
	if err := Validate(&Config{ReportsDir: ".", ReportFiles: []string{""}}); err == nil {
		t.Error("expected empty report name to fail")
	}
	if err := Validate(&Config{ReportsDir: ".", RequiredVars: []string{"A", ""}}); err == nil {
		t.Error("expected empty variable name to fail")
	}
	if err := Validate(&Config{ReportsDir: "."}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEnvironment_EmptyIsUnset(t *testing.T) {
	t.Setenv("COSIGN_IMAGE", "")
	t.Setenv("PODMAN_IMAGE", "quay.io/podman/stable")

	missing := gate.MissingVars(Environment(), []string{"COSIGN_IMAGE", "PODMAN_IMAGE"})
	if strings.Join(missing, ",") != "COSIGN_IMAGE" {
		t.Errorf("expected only COSIGN_IMAGE missing, got %v", missing)
	}
}
