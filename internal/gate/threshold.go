package gate

import "github.com/capsaicin/security-gate/internal/reporting"

// Outcome is the terminal state of a threshold check.
type Outcome int

const (
	OutcomePass Outcome = iota
	OutcomeSoftWarn
	OutcomeFail
)

func (o Outcome) String() string {
	switch o {
	case OutcomePass:
		return "pass"
	case OutcomeSoftWarn:
		return "soft-warn"
	case OutcomeFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Match is the first finding at or above the threshold.
type Match struct {
	Finding  reporting.Finding
	Severity Severity
	Index    int
}

// SeverityExceeds scans findings in order and returns the first one whose
// severity is at or above threshold. Findings without a recognized severity
// are ignored.
func SeverityExceeds(findings []reporting.Finding, threshold Severity) (Match, bool) {
	for i, f := range findings {
		label, ok := f.SeverityLabel()
		if !ok {
			continue
		}
		sev, ok := ParseSeverity(label)
		if !ok {
			continue
		}
		if sev.AtOrAbove(threshold) {
			return Match{Finding: f, Severity: sev, Index: i}, true
		}
	}
	return Match{}, false
}

// Decision carries everything the threshold check concluded.
type Decision struct {
	Outcome         Outcome
	Threshold       Severity
	Enforced        bool
	Branch          string
	DefaultBranch   string
	IsDefaultBranch bool
	Findings        int
	Skipped         []reporting.SkippedReport
	Match           *Match
}

// Evaluate loads the reports and applies the threshold policy without
// printing anything. When enforceDefault is set, exceedance only fails the
// pipeline on the default branch.
func (g *Gate) Evaluate(threshold Severity, enforceDefault bool) Decision {
	branch := g.env.GetString(EnvCommitBranch)
	defaultBranch := g.env.GetString(EnvDefaultBranch)

	d := Decision{
		Outcome:       OutcomePass,
		Threshold:     threshold,
		Enforced:      enforceDefault,
		Branch:        branch,
		DefaultBranch: defaultBranch,
		// Two unset values compare equal, so an unconfigured job is
		// treated as the default branch and enforced strictly.
		IsDefaultBranch: branch == defaultBranch,
	}

	findings, skipped := reporting.LoadFindings(g.reportsDir, g.reportFiles)
	d.Findings = len(findings)
	d.Skipped = skipped
	if len(findings) == 0 {
		return d
	}

	m, exceeds := SeverityExceeds(findings, threshold)
	if !exceeds {
		return d
	}
	d.Match = &m

	if !enforceDefault || d.IsDefaultBranch {
		d.Outcome = OutcomeFail
	} else {
		d.Outcome = OutcomeSoftWarn
	}
	return d
}

// RunThresholdCheck evaluates the reports, prints the status lines and
// returns the exit code.
func (g *Gate) RunThresholdCheck(threshold Severity, enforceDefault bool) int {
	d := g.Evaluate(threshold, enforceDefault)

	if d.Branch == "" && d.DefaultBranch == "" {
		g.log.Warnw("branch variables are unset; treating job as default branch",
			"commit_branch_var", EnvCommitBranch, "default_branch_var", EnvDefaultBranch)
	}
	for _, s := range d.Skipped {
		g.log.Debugw("report skipped", "report", s.Name, "error", s.Err)
		if s.Reason == reporting.SkipUnreadable {
			g.out.Warn("Could not read %s", s.Name)
		} else {
			g.out.Warn("Could not parse %s", s.Name)
		}
	}

	g.log.Debugw("threshold evaluated",
		"threshold", d.Threshold.String(),
		"findings", d.Findings,
		"outcome", d.Outcome.String(),
		"branch", d.Branch,
		"default_branch", d.DefaultBranch,
		"enforce_default_branch", d.Enforced)

	if d.Findings == 0 {
		g.out.Info("No report files found; allowing pipeline to continue")
		return ExitOK
	}

	if d.Match != nil {
		f := d.Match.Finding
		g.out.Gate("Found %s vulnerability: %s (id=%s)", d.Match.Severity, f.DisplayName(), f.DisplayID())
	}

	switch d.Outcome {
	case OutcomeFail:
		g.out.Fail("Severity threshold '%s' exceeded", d.Threshold)
	case OutcomeSoftWarn:
		branch := d.Branch
		if branch == "" {
			branch = reporting.Placeholder
		}
		g.out.Warn("Threshold exceeded but branch is not default (%s); soft fail allowed", branch)
	default:
		g.out.OK("No findings above %s", d.Threshold)
	}
	return DetermineExitCode(d.Outcome)
}
