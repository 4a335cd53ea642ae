package artifacts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestArtifact writes the provided JSON to a temporary artifact file and returns its path.
func writeTestArtifact(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "artifact.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

// TestFileReaderPlainFields verifies the hardhat/truffle style artifact with plain string bytecode fields.
func TestFileReaderPlainFields(t *testing.T) {
	t.Parallel()

	path := writeTestArtifact(t, `{
		"contractName": "Token",
		"bytecode": "0x6080604052",
		"deployedBytecode": "0x60806000"
	}`)

	artifact, err := NewFileReader().Read(path, "")
	require.NoError(t, err)
	assert.Equal(t, "0x6080604052", artifact.DeploymentBytecode)
	assert.Equal(t, "0x60806000", artifact.RuntimeBytecode)
}

// TestFileReaderNestedFields verifies the solc standard JSON style with object-nested bytecode.
func TestFileReaderNestedFields(t *testing.T) {
	t.Parallel()

	path := writeTestArtifact(t, `{
		"bytecode": {"object": "6080604052"},
		"deployedBytecode": {"object": "60806000"}
	}`)

	artifact, err := NewFileReader().Read(path, "")
	require.NoError(t, err)
	assert.Equal(t, "6080604052", artifact.DeploymentBytecode)
	assert.Equal(t, "60806000", artifact.RuntimeBytecode)
}

// TestFileReaderAlternateFieldNames verifies the runtimeBytecode/deploymentBytecode nesting variant.
func TestFileReaderAlternateFieldNames(t *testing.T) {
	t.Parallel()

	path := writeTestArtifact(t, `{
		"deploymentBytecode": {"bytecode": "0x6080604052"},
		"runtimeBytecode": {"bytecode": "0x60806000"}
	}`)

	artifact, err := NewFileReader().Read(path, "")
	require.NoError(t, err)
	assert.Equal(t, "0x6080604052", artifact.DeploymentBytecode)
	assert.Equal(t, "0x60806000", artifact.RuntimeBytecode)
}

// TestFileReaderSubPath verifies descending into a dot-separated key within a combined artifact file.
func TestFileReaderSubPath(t *testing.T) {
	t.Parallel()

	path := writeTestArtifact(t, `{
		"contracts": {
			"Token": {
				"bytecode": "0x6080604052",
				"deployedBytecode": "0x60806000"
			}
		}
	}`)

	artifact, err := NewFileReader().Read(path, "contracts.Token")
	require.NoError(t, err)
	assert.Equal(t, "0x6080604052", artifact.DeploymentBytecode)

	_, err = NewFileReader().Read(path, "contracts.Missing")
	assert.True(t, errors.Is(err, ErrNoArtifact))
}

// TestFileReaderMissingBytecode verifies an artifact lacking either bytecode field is a hard precondition failure.
func TestFileReaderMissingBytecode(t *testing.T) {
	t.Parallel()

	path := writeTestArtifact(t, `{"bytecode": "0x6080604052"}`)
	_, err := NewFileReader().Read(path, "")
	assert.True(t, errors.Is(err, ErrMissingBytecode))

	path = writeTestArtifact(t, `{"deployedBytecode": "0x60806000"}`)
	_, err = NewFileReader().Read(path, "")
	assert.True(t, errors.Is(err, ErrMissingBytecode))
}

// TestFileReaderUnreadable verifies missing and malformed files report ErrNoArtifact.
func TestFileReaderUnreadable(t *testing.T) {
	t.Parallel()

	_, err := NewFileReader().Read(filepath.Join(t.TempDir(), "missing.json"), "")
	assert.True(t, errors.Is(err, ErrNoArtifact))

	path := writeTestArtifact(t, `not json at all`)
	_, err = NewFileReader().Read(path, "")
	assert.True(t, errors.Is(err, ErrNoArtifact))
}
