package reporting

import (
	"github.com/pmezard/go-difflib/difflib"
)

// diffLineWidth is how many hex characters (32 bytes) are placed on each line of a diagnostic diff.
const diffLineWidth = 64

// formatDiff renders a bounded unified diff between the transaction input data and the compiled deployment
// bytecode of a failed creation-code comparison. Each operand is truncated to maxChars hex characters before
// diffing, keeping the cost bounded on pathologically large mismatches. Returns an empty string if the diff could
// not be produced.
func formatDiff(creationInput string, compiledDeployment string, maxChars int) string {
	if maxChars > 0 {
		if len(creationInput) > maxChars {
			creationInput = creationInput[:maxChars]
		}
		if len(compiledDeployment) > maxChars {
			compiledDeployment = compiledDeployment[:maxChars]
		}
	}

	diff := difflib.UnifiedDiff{
		A:        splitHexLines(creationInput),
		B:        splitHexLines(compiledDeployment),
		FromFile: "transaction input data",
		ToFile:   "compiled deployment bytecode",
		Context:  2,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return ""
	}
	return text
}

// splitHexLines breaks a hex string into fixed-width newline-terminated lines for diffing.
func splitHexLines(s string) []string {
	lines := make([]string, 0, len(s)/diffLineWidth+1)
	for len(s) > diffLineWidth {
		lines = append(lines, s[:diffLineWidth]+"\n")
		s = s[diffLineWidth:]
	}
	if len(s) > 0 {
		lines = append(lines, s+"\n")
	}
	return lines
}
