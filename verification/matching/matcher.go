package matching

import (
	"strings"
)

// RuntimeMatchKind is the tagged result of a deployed-code comparison. A tagged result is used instead of a boolean
// so that callers can distinguish the two ways a match can succeed, and so "no match" remains an explicit value
// rather than an overloaded third truthiness state.
type RuntimeMatchKind int

const (
	// RuntimeNoMatch indicates the deployed bytecode does not correspond to the compiled runtime bytecode.
	RuntimeNoMatch RuntimeMatchKind = iota

	// RuntimeExactMatch indicates the two operands were identical after normalization and link resolution.
	RuntimeExactMatch

	// RuntimeMetadataTolerantMatch indicates the operands were identical only after the metadata trailers were
	// trimmed from both, i.e. the same code compiled with differing metadata.
	RuntimeMetadataTolerantMatch
)

// Matched returns whether this kind represents a successful match.
func (k RuntimeMatchKind) Matched() bool {
	return k != RuntimeNoMatch
}

// String returns a display name for the match kind.
func (k RuntimeMatchKind) String() string {
	switch k {
	case RuntimeExactMatch:
		return "exact"
	case RuntimeMetadataTolerantMatch:
		return "metadata-tolerant"
	default:
		return "no match"
	}
}

// MatchDeployedCode compares bytecode fetched from a contract's address against the runtime bytecode recorded in a
// compiled artifact. Both operands are normalized first. For Solidity, library link placeholders in the compiled
// operand are resolved against the deployed operand before comparing; if the operands are not identical at that
// point, the metadata trailers are trimmed from both independently and the trimmed forms compared, since metadata
// hashes and immutable values can legitimately differ between two deployments of the same code. Trimmed operands of
// unequal length are a definitive mismatch without a character comparison. Vyper bytecode carries no metadata
// trailer, so for Vyper no match after the exact comparison is definitive.
//
// The only possible error is ErrMalformedHex on either operand.
func MatchDeployedCode(deployed string, compiledRuntime string, dialect Dialect) (RuntimeMatchKind, error) {
	deployedHex, err := NormalizeHex(deployed)
	if err != nil {
		return RuntimeNoMatch, err
	}

	var compiledHex string
	if dialect == DialectSolidity {
		compiledHex, err = NormalizeLinkable(compiledRuntime)
		if err != nil {
			return RuntimeNoMatch, err
		}
		compiledHex = ResolveLinks(compiledHex, deployedHex)
	} else {
		compiledHex, err = NormalizeHex(compiledRuntime)
		if err != nil {
			return RuntimeNoMatch, err
		}
	}

	if deployedHex == compiledHex {
		return RuntimeExactMatch, nil
	}

	if dialect == DialectSolidity {
		trimmedDeployed := TrimMetadata(deployedHex)
		trimmedCompiled := TrimMetadata(compiledHex)
		if len(trimmedDeployed) == len(trimmedCompiled) && trimmedDeployed == trimmedCompiled {
			return RuntimeMetadataTolerantMatch, nil
		}
	}

	return RuntimeNoMatch, nil
}

// MatchCreationCode compares a deployment transaction's input data against the deployment bytecode recorded in a
// compiled artifact. The transaction input legitimately carries ABI-encoded constructor arguments appended after the
// deployment bytecode, so this is a prefix comparison, not an equality check. For Solidity, the metadata trailer is
// trimmed from the compiled operand only; the transaction input is never trimmed since its suffix is constructor
// arguments, not metadata.
func MatchCreationCode(txInput string, compiledDeployment string, dialect Dialect) (bool, error) {
	inputHex, compiledHex, err := CreationComparands(txInput, compiledDeployment, dialect)
	if err != nil {
		return false, err
	}
	return strings.HasPrefix(inputHex, compiledHex), nil
}

// CreationComparands normalizes and prepares the two operands of a creation-code comparison, returning the
// transaction input and the (possibly metadata-trimmed) compiled deployment bytecode. Exposed so that reporting
// layers can diff exactly what was compared.
func CreationComparands(txInput string, compiledDeployment string, dialect Dialect) (string, string, error) {
	inputHex, err := NormalizeHex(txInput)
	if err != nil {
		return "", "", err
	}

	var compiledHex string
	if dialect == DialectSolidity {
		compiledHex, err = NormalizeLinkable(compiledDeployment)
		if err != nil {
			return "", "", err
		}
		compiledHex = TrimMetadata(compiledHex)
	} else {
		compiledHex, err = NormalizeHex(compiledDeployment)
		if err != nil {
			return "", "", err
		}
	}

	return inputHex, compiledHex, nil
}
