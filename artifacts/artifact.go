package artifacts

import (
	"github.com/attestor-eth/attestor/verification/matching"
)

// CompiledArtifact represents the subset of a compiler toolchain's output JSON that bytecode verification requires.
// Toolchains disagree on field naming and nesting; the reader resolves those variants so the rest of the system only
// ever sees these normalized fields.
type CompiledArtifact struct {
	// RuntimeBytecode is the hex-encoded bytecode expected at the contract's address after construction.
	RuntimeBytecode string

	// DeploymentBytecode is the hex-encoded bytecode sent in the contract-creation transaction, excluding any
	// ABI-encoded constructor arguments appended by the deployer.
	DeploymentBytecode string

	// Dialect identifies the compiler family whose trimming and linking rules apply to this artifact's bytecode.
	Dialect matching.Dialect
}

// Reader provides parsed compiled artifacts given a file location and an optional sub-path within it.
type Reader interface {
	// Read parses the artifact at the given path. If key is non-empty, it identifies a dot-separated object path
	// within the artifact JSON under which the contract's fields live. Returns ErrNoArtifact if the file cannot be
	// read or parsed, or ErrMissingBytecode if either bytecode field cannot be resolved.
	Read(path string, key string) (*CompiledArtifact, error)
}
