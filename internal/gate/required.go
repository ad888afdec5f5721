package gate

import "strings"

// DefaultRequiredVars must be non-empty before default-branch enforcement.
var DefaultRequiredVars = []string{
	"SECURE_ANALYZERS_PREFIX",
	"POLICY_TOOLS_IMAGE",
	"PODMAN_IMAGE",
	"COSIGN_IMAGE",
}

// MissingVars returns every name whose value is unset or empty, in the order
// given.
func MissingVars(env Env, names []string) []string {
	var missing []string
	for _, name := range names {
		if env.GetString(name) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// CheckRequiredVars prints the result of the required variables check and
// returns the exit code.
func (g *Gate) CheckRequiredVars() int {
	missing := MissingVars(g.env, g.requiredVars)
	if len(missing) > 0 {
		g.log.Debugw("required variables missing", "missing", missing, "checked", len(g.requiredVars))
		g.out.Error("Missing required variables: %s", strings.Join(missing, ", "))
		return ExitFailed
	}
	g.out.OK("All required variables present for default-branch enforcement")
	return ExitOK
}
