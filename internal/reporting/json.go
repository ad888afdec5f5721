package reporting

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// DefaultReportFiles are the GitLab Secure artifact names, in the order they
// are read.
var DefaultReportFiles = []string{
	"gl-sast-report.json",
	"gl-dependency-scanning-report.json",
	"gl-secret-detection-report.json",
	"gl-sast-iac-report.json",
	"gl-container-scanning-report.json",
}

// Placeholder is shown for display fields a report leaves out.
const Placeholder = "unknown"

// Finding is one entry of a report's vulnerabilities array. Members are kept
// raw so that odd values from third-party analyzers never fail the decode.
type Finding struct {
	Severity jsontext.Value `json:"severity"`
	Name     jsontext.Value `json:"name"`
	ID       jsontext.Value `json:"id"`

	// Report is the file name the finding was read from.
	Report string `json:"-"`
}

// SeverityLabel returns the lowercased severity. A missing or null severity
// reads as "unknown"; a non-string severity has no label.
func (f Finding) SeverityLabel() (string, bool) {
	if absent(f.Severity) {
		return "unknown", true
	}
	s, ok := stringValue(f.Severity)
	if !ok {
		return "", false
	}
	return strings.ToLower(s), true
}

func (f Finding) DisplayName() string { return display(f.Name) }

func (f Finding) DisplayID() string { return display(f.ID) }

// SkipReason explains why an existing report contributed no findings.
type SkipReason int

const (
	SkipUnparsable SkipReason = iota
	SkipUnreadable
)

// SkippedReport records a report file that exists but was ignored.
type SkippedReport struct {
	Name   string
	Reason SkipReason
	Err    error
}

type secureReport struct {
	Vulnerabilities []*Finding `json:"vulnerabilities"`
}

// LoadFindings reads each named report from dir and flattens their
// vulnerabilities in file order. Missing files are skipped silently; files
// that cannot be read or decoded are returned in skipped.
func LoadFindings(dir string, names []string) (findings []Finding, skipped []SkippedReport) {
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			skipped = append(skipped, SkippedReport{Name: name, Reason: SkipUnreadable, Err: err})
			continue
		}

		vulns, err := DecodeReport(data)
		if err != nil {
			skipped = append(skipped, SkippedReport{Name: name, Reason: SkipUnparsable, Err: err})
			continue
		}
		for _, v := range vulns {
			v.Report = name
			findings = append(findings, v)
		}
	}
	return findings, skipped
}

// DecodeReport parses a single report document. The document must be a JSON
// object; a missing or null vulnerabilities member yields no findings.
func DecodeReport(data []byte) ([]Finding, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errors.New("report is not a JSON object")
	}

	var doc secureReport
	if err := json.Unmarshal(trimmed, &doc, jsontext.AllowDuplicateNames(true)); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}

	findings := make([]Finding, 0, len(doc.Vulnerabilities))
	for _, v := range doc.Vulnerabilities {
		if v == nil {
			continue
		}
		findings = append(findings, *v)
	}
	return findings, nil
}

func absent(v jsontext.Value) bool {
	return len(v) == 0 || v.Kind() == 'n'
}

func stringValue(v jsontext.Value) (string, bool) {
	if v.Kind() != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, true
}

func display(v jsontext.Value) string {
	if absent(v) {
		return Placeholder
	}
	if s, ok := stringValue(v); ok {
		return s
	}
	return string(v)
}
