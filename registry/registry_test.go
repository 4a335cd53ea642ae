package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestRegistry writes registry file contents under the provided name and returns its path.
func writeTestRegistry(t *testing.T, name string, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

// TestReadRegistryJSON verifies a JSON registry parses into ordered descriptors with validated fields.
func TestReadRegistryJSON(t *testing.T) {
	t.Parallel()

	path := writeTestRegistry(t, "registry.json", `[
		{
			"artifact": "out/Token.json",
			"source": "contracts/Token.sol",
			"contract": "Token",
			"address": "0x5FbDB2315678afecb367f032d93F642f64180aa3",
			"deploymentTx": "0x71b9e2b44d40b6c45e62c982e35bfb9ce53ced9b6c844bc0a4e7dfef9a2e9a27"
		},
		{
			"artifact": "out/combined.json",
			"key": "contracts.Vault",
			"source": "contracts/Vault.vy",
			"contract": "Vault",
			"address": "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"
		}
	]`)

	descriptors, err := ReadRegistryFromFile(path)
	require.NoError(t, err)
	require.Len(t, descriptors, 2)

	assert.Equal(t, "Token", descriptors[0].ContractName)
	assert.Equal(t, common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"), descriptors[0].Address)
	require.NotNil(t, descriptors[0].DeploymentTxHash)
	assert.Equal(t, common.HexToHash("0x71b9e2b44d40b6c45e62c982e35bfb9ce53ced9b6c844bc0a4e7dfef9a2e9a27"), *descriptors[0].DeploymentTxHash)

	assert.Equal(t, "contracts.Vault", descriptors[1].ArtifactKey)
	assert.Nil(t, descriptors[1].DeploymentTxHash)
}

// TestReadRegistryYAML verifies the YAML registry form parses equivalently.
func TestReadRegistryYAML(t *testing.T) {
	t.Parallel()

	path := writeTestRegistry(t, "registry.yaml", `
- artifact: out/Token.json
  source: contracts/Token.sol
  contract: Token
  address: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
`)

	descriptors, err := ReadRegistryFromFile(path)
	require.NoError(t, err)
	require.Len(t, descriptors, 1)
	assert.Equal(t, "out/Token.json", descriptors[0].ArtifactPath)
}

// TestReadRegistryInvalidEntries verifies malformed addresses and hashes are rejected up front.
func TestReadRegistryInvalidEntries(t *testing.T) {
	t.Parallel()

	path := writeTestRegistry(t, "registry.json", `[
		{"artifact": "out/Token.json", "contract": "Token", "address": "not-an-address"}
	]`)
	_, err := ReadRegistryFromFile(path)
	assert.Error(t, err)

	path = writeTestRegistry(t, "registry2.json", `[
		{"artifact": "out/Token.json", "contract": "Token",
		 "address": "0x5FbDB2315678afecb367f032d93F642f64180aa3", "deploymentTx": "0x1234"}
	]`)
	_, err = ReadRegistryFromFile(path)
	assert.Error(t, err)

	path = writeTestRegistry(t, "registry3.json", `[
		{"contract": "Token", "address": "0x5FbDB2315678afecb367f032d93F642f64180aa3"}
	]`)
	_, err = ReadRegistryFromFile(path)
	assert.Error(t, err)
}

// TestDescriptorName verifies reporting identity formatting.
func TestDescriptorName(t *testing.T) {
	t.Parallel()

	descriptor := Descriptor{
		ContractName: "Token",
		Address:      common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
	}
	assert.Equal(t, "Token (0x5FbDB2315678afecb367f032d93F642f64180aa3)", descriptor.Name())

	descriptor.ContractName = ""
	assert.Equal(t, "0x5FbDB2315678afecb367f032d93F642f64180aa3", descriptor.Name())
}
