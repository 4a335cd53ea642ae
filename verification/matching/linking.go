package matching

import (
	"strings"
)

const (
	// linkPlaceholderStart is the literal marker the Solidity compiler places at the start of a library link
	// placeholder in unlinked bytecode. The full placeholder format is "__$<truncated library name hash>$__".
	linkPlaceholderStart = "__$"

	// linkPlaceholderChars is the total width of a library link placeholder in hex characters. Placeholders stand
	// in for a 20-byte library address, so they always occupy 40 characters.
	linkPlaceholderChars = 40
)

// ResolveLinks substitutes library link placeholders in compiled Solidity bytecode using the deployed bytecode as
// the source of truth. For every occurrence of the placeholder start marker in the compiled operand, the 40-character
// window at the same offset in the deployed operand is taken as the resolved library address, and every occurrence
// of that exact placeholder throughout the compiled operand is replaced with it (the same library recurs at multiple
// call sites and must resolve to the same value). Both operands must already be normalized.
//
// If the deployed bytecode is shorter than a placeholder window, the available bytes are used as-is; the resulting
// string will then simply fail the downstream comparison. A placeholder whose trailing "$__" characters are cut off
// at the end of the bytecode is handled the same way, using the best-effort window that remains.
func ResolveLinks(compiled string, deployed string) string {
	for {
		offset := strings.Index(compiled, linkPlaceholderStart)
		if offset == -1 {
			return compiled
		}

		// Take the fixed-width placeholder window, truncated if the bytecode ends inside it.
		end := offset + linkPlaceholderChars
		if end > len(compiled) {
			end = len(compiled)
		}
		placeholder := compiled[offset:end]

		// Read the byte-aligned window at the same offset in the deployed bytecode as the resolved address.
		resolved := ""
		if offset < len(deployed) {
			resolvedEnd := offset + len(placeholder)
			if resolvedEnd > len(deployed) {
				resolvedEnd = len(deployed)
			}
			resolved = deployed[offset:resolvedEnd]
		}

		// Replace all occurrences of this placeholder. The deployed operand is plain hex, so the replacement can
		// never reintroduce a start marker and the loop always terminates.
		compiled = strings.ReplaceAll(compiled, placeholder, resolved)
	}
}
