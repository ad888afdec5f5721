package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/capsaicin/security-gate/internal/config"
	"github.com/capsaicin/security-gate/internal/gate"
	"github.com/capsaicin/security-gate/internal/logging"
	"github.com/capsaicin/security-gate/internal/ui"
)

func newRootCommand(stdout, stderr io.Writer, exitCode *int) *cobra.Command {
	cfg := &config.Config{}

	cmd := &cobra.Command{
		Use:   "security-gate",
		Short: "Security gate helper",
		Long: `Branch-aware security gating for CI pipelines.

  --check-required-vars       ensure mandatory variables are present for the default branch
  --severity-threshold LEVEL  fail when a GitLab Secure report has a finding at or above LEVEL

Reports read from the reports directory:
  gl-sast-report.json
  gl-dependency-scanning-report.json
  gl-secret-detection-report.json
  gl-sast-iac-report.json
  gl-container-scanning-report.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cfg.CheckRequiredVars && !cfg.Threshold.IsSet {
				*exitCode = gate.ExitOK
				return cmd.Help()
			}

			if err := config.Load(cfg, cmd.Flags()); err != nil {
				return err
			}

			logger := logging.New(cfg.Debug, stderr)
			defer logger.Sync()

			g := gate.New(gate.Options{
				ReportsDir:   cfg.ReportsDir,
				ReportFiles:  cfg.ReportFiles,
				RequiredVars: cfg.RequiredVars,
			}, config.Environment(), ui.NewPrinter(stdout), logger)

			if cfg.CheckRequiredVars {
				*exitCode = g.CheckRequiredVars()
				return nil
			}
			*exitCode = g.RunThresholdCheck(cfg.Threshold.Level, cfg.EnforceDefaultBranch)
			return nil
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	config.Register(cmd.Flags(), cfg)
	return cmd
}
