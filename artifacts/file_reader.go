package artifacts

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ErrNoArtifact indicates no readable artifact exists at the requested location.
var ErrNoArtifact = errors.New("no readable artifact")

// ErrMissingBytecode indicates an artifact lacks a resolvable runtime or deployment bytecode field.
var ErrMissingBytecode = errors.New("artifact is missing a bytecode field")

// runtimeBytecodeFieldNames are the field names under which toolchains record runtime bytecode, in resolution order.
// Hardhat and truffle store a plain hex string under "deployedBytecode"; solc standard JSON and some vyper toolchains
// nest it as an object under "deployedBytecode" or "runtimeBytecode".
var runtimeBytecodeFieldNames = []string{"deployedBytecode", "runtimeBytecode"}

// deploymentBytecodeFieldNames are the equivalent field names for deployment (creation) bytecode.
var deploymentBytecodeFieldNames = []string{"bytecode", "deploymentBytecode"}

// FileReader reads compiled artifacts from JSON files on disk.
type FileReader struct{}

// NewFileReader creates a FileReader.
func NewFileReader() *FileReader {
	return &FileReader{}
}

// Read parses the artifact JSON at the given path, descending into the dot-separated key if one is provided, and
// resolves the toolchain-specific bytecode field variants into a CompiledArtifact. The artifact's dialect is not
// known to the file reader (it derives from the contract source path) and is left at its zero value for the caller
// to assign.
func (r *FileReader) Read(path string, key string) (*CompiledArtifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrNoArtifact, "%s: %v", path, err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrapf(ErrNoArtifact, "%s: %v", path, err)
	}

	// Descend into the sub-path, one object level per dot-separated segment.
	if key != "" {
		for _, segment := range strings.Split(key, ".") {
			nested, ok := raw[segment]
			if !ok {
				return nil, errors.Wrapf(ErrNoArtifact, "%s: no object at key %q", path, key)
			}
			var nestedObject map[string]json.RawMessage
			if err := json.Unmarshal(nested, &nestedObject); err != nil {
				return nil, errors.Wrapf(ErrNoArtifact, "%s: key %q is not an object", path, key)
			}
			raw = nestedObject
		}
	}

	runtimeBytecode := resolveBytecodeField(raw, runtimeBytecodeFieldNames)
	if runtimeBytecode == "" {
		return nil, errors.Wrapf(ErrMissingBytecode, "%s: no runtime bytecode field", path)
	}
	deploymentBytecode := resolveBytecodeField(raw, deploymentBytecodeFieldNames)
	if deploymentBytecode == "" {
		return nil, errors.Wrapf(ErrMissingBytecode, "%s: no deployment bytecode field", path)
	}

	return &CompiledArtifact{
		RuntimeBytecode:    runtimeBytecode,
		DeploymentBytecode: deploymentBytecode,
	}, nil
}

// resolveBytecodeField tries each candidate field name and returns the first non-empty hex string found. A field may
// hold the hex string directly, or an object carrying it under "object" (solc standard JSON) or "bytecode"
// (hardhat-deploy style nesting).
func resolveBytecodeField(raw map[string]json.RawMessage, fieldNames []string) string {
	for _, fieldName := range fieldNames {
		fieldData, ok := raw[fieldName]
		if !ok {
			continue
		}

		// Plain hex string variant.
		var plain string
		if err := json.Unmarshal(fieldData, &plain); err == nil && plain != "" {
			return plain
		}

		// Nested object variants.
		var nested struct {
			Object   string `json:"object"`
			Bytecode string `json:"bytecode"`
		}
		if err := json.Unmarshal(fieldData, &nested); err == nil {
			if nested.Object != "" {
				return nested.Object
			}
			if nested.Bytecode != "" {
				return nested.Bytecode
			}
		}
	}
	return ""
}
