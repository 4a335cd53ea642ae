package exitcodes

const (
	// ================================
	// Platform-universal exit codes
	// ================================

	// ExitCodeSuccess indicates no errors or failures had occurred.
	ExitCodeSuccess = 0

	// ExitCodeGeneralError indicates some type of general error occurred.
	ExitCodeGeneralError = 1

	// ================================
	// Application-specific exit codes
	// ================================
	// Note: Despite not being standardized, exit codes 2-5 are often used for common use cases, so we avoid them.

	// ExitCodeHandledError indicates an error occurred which the command already reported to the user itself, so
	// the top-level error printing logic should stay quiet and simply exit with this code.
	ExitCodeHandledError = 6

	// ExitCodeVerificationFailed indicates at least one registry entry mismatched or errored during verification.
	ExitCodeVerificationFailed = 7
)
