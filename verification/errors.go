package verification

// ErrorKind classifies the ways a single descriptor's verification can fail outright. Every kind is scoped to one
// descriptor and never aborts the rest of the batch.
type ErrorKind string

const (
	// ErrorKindArtifactUnreadable indicates no readable artifact existed at the descriptor's artifact location.
	ErrorKindArtifactUnreadable ErrorKind = "artifact unreadable"

	// ErrorKindMissingBytecode indicates the artifact lacked a resolvable runtime or deployment bytecode field.
	ErrorKindMissingBytecode ErrorKind = "missing bytecode"

	// ErrorKindMalformedHex indicates a bytecode operand was not valid even-length hex.
	ErrorKindMalformedHex ErrorKind = "malformed hex"

	// ErrorKindChainUnavailable indicates a chain-reader call failed.
	ErrorKindChainUnavailable ErrorKind = "chain unavailable"

	// ErrorKindMissingTxHash indicates the creation-code fallback was required but the descriptor supplied no
	// deployment transaction hash.
	ErrorKindMissingTxHash ErrorKind = "missing deployment transaction hash"

	// ErrorKindTransactionNotFound indicates the supplied deployment transaction does not exist on the chain.
	ErrorKindTransactionNotFound ErrorKind = "deployment transaction not found"

	// ErrorKindWrongDeploymentTransaction indicates the supplied transaction created a different contract than the
	// descriptor's target address, i.e. the wrong transaction was supplied.
	ErrorKindWrongDeploymentTransaction ErrorKind = "wrong deployment transaction"

	// ErrorKindEmptyCreationData indicates the supplied deployment transaction carried no input data.
	ErrorKindEmptyCreationData ErrorKind = "empty creation data"
)
