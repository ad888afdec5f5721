// Package gate decides whether a CI pipeline may proceed based on the
// security reports in its workspace and the variables it was started with.
package gate

import (
	"go.uber.org/zap"

	"github.com/capsaicin/security-gate/internal/reporting"
	"github.com/capsaicin/security-gate/internal/ui"
)

// Branch variables set by GitLab CI.
const (
	EnvCommitBranch  = "CI_COMMIT_BRANCH"
	EnvDefaultBranch = "CI_DEFAULT_BRANCH"
)

// Env resolves environment values. *viper.Viper satisfies it.
type Env interface {
	GetString(key string) string
}

// Options overrides the report and variable sets. Zero values fall back to
// the documented defaults.
type Options struct {
	ReportsDir   string
	ReportFiles  []string
	RequiredVars []string
}

type Gate struct {
	reportsDir   string
	reportFiles  []string
	requiredVars []string

	env Env
	out *ui.Printer
	log *zap.SugaredLogger
}

func New(opts Options, env Env, out *ui.Printer, log *zap.SugaredLogger) *Gate {
	g := &Gate{
		reportsDir:   opts.ReportsDir,
		reportFiles:  opts.ReportFiles,
		requiredVars: opts.RequiredVars,
		env:          env,
		out:          out,
		log:          log,
	}
	if g.reportsDir == "" {
		g.reportsDir = "."
	}
	if g.reportFiles == nil {
		g.reportFiles = reporting.DefaultReportFiles
	}
	if g.requiredVars == nil {
		g.requiredVars = DefaultRequiredVars
	}
	if g.log == nil {
		g.log = zap.NewNop().Sugar()
	}
	return g
}
