package gate

// Exit codes for CI integration.
const (
	ExitOK     = 0
	ExitFailed = 1
	ExitUsage  = 2
)

// DetermineExitCode maps a gate outcome to the process exit status. A soft
// warning lets the pipeline continue.
func DetermineExitCode(o Outcome) int {
	if o == OutcomeFail {
		return ExitFailed
	}
	return ExitOK
}
