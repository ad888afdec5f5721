package gate

import "fmt"

// Severity is a level on the ordered vocabulary used by GitLab Secure reports.
// Higher value = more severe.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityUnknown
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityNames = [...]string{
	SeverityInfo:     "info",
	SeverityUnknown:  "unknown",
	SeverityLow:      "low",
	SeverityMedium:   "medium",
	SeverityHigh:     "high",
	SeverityCritical: "critical",
}

// Levels returns the severity labels from least to most severe.
func Levels() []string {
	levels := make([]string, len(severityNames))
	copy(levels, severityNames[:])
	return levels
}

func (s Severity) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// Valid reports whether s is a member of the scale.
func (s Severity) Valid() bool {
	return s >= SeverityInfo && s <= SeverityCritical
}

// ParseSeverity maps an already normalized label to its level. Matching is
// exact: callers lowercase report values first.
func ParseSeverity(label string) (Severity, bool) {
	for i, name := range severityNames {
		if name == label {
			return Severity(i), true
		}
	}
	return SeverityInfo, false
}

// AtOrAbove reports whether s is at or above the threshold.
func (s Severity) AtOrAbove(threshold Severity) bool {
	return s >= threshold
}
