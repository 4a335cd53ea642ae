package registry

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Descriptor identifies one verification unit: a compiled artifact on disk paired with the address its bytecode is
// expected to live at. Descriptors are immutable once read; each one is verified independently.
type Descriptor struct {
	// ArtifactPath is the location of the compiled artifact JSON file.
	ArtifactPath string

	// ArtifactKey optionally identifies a dot-separated object path within the artifact file under which this
	// contract's fields live (combined artifact files hold several contracts).
	ArtifactKey string

	// SourcePath is the contract source file location; its extension determines the compiler dialect.
	SourcePath string

	// ContractName is the display name of the contract.
	ContractName string

	// Address is the on-chain address the artifact is expected to be deployed at.
	Address common.Address

	// DeploymentTxHash is the hash of the transaction that created the contract, if known. Required only when the
	// deployed-code comparison is inconclusive and the creation-code fallback is needed.
	DeploymentTxHash *common.Hash
}

// Name returns the display identity of the descriptor for reporting.
func (d *Descriptor) Name() string {
	if d.ContractName != "" {
		return fmt.Sprintf("%s (%s)", d.ContractName, d.Address.Hex())
	}
	return d.Address.Hex()
}

// entry is the on-disk form of a descriptor within a registry file.
type entry struct {
	Artifact     string `json:"artifact" yaml:"artifact"`
	Key          string `json:"key,omitempty" yaml:"key,omitempty"`
	Source       string `json:"source" yaml:"source"`
	Contract     string `json:"contract" yaml:"contract"`
	Address      string `json:"address" yaml:"address"`
	DeploymentTx string `json:"deploymentTx,omitempty" yaml:"deploymentTx,omitempty"`
}

// ReadRegistryFromFile reads an ordered sequence of descriptors from the registry file at the provided path. The
// file holds an array of entries and may be JSON or, by extension (.yaml/.yml), YAML.
func ReadRegistryFromFile(path string) ([]Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var entries []entry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &entries)
	default:
		err = json.Unmarshal(data, &entries)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse registry file %s", path)
	}

	descriptors := make([]Descriptor, 0, len(entries))
	for i, e := range entries {
		descriptor, err := e.toDescriptor()
		if err != nil {
			return nil, errors.Wrapf(err, "registry entry %d in %s", i, path)
		}
		descriptors = append(descriptors, *descriptor)
	}
	return descriptors, nil
}

// toDescriptor validates an on-disk entry and converts it into a Descriptor.
func (e *entry) toDescriptor() (*Descriptor, error) {
	if e.Artifact == "" {
		return nil, errors.New("no artifact path provided")
	}
	if !common.IsHexAddress(e.Address) {
		return nil, errors.Errorf("invalid contract address %q", e.Address)
	}

	descriptor := &Descriptor{
		ArtifactPath: e.Artifact,
		ArtifactKey:  e.Key,
		SourcePath:   e.Source,
		ContractName: e.Contract,
		Address:      common.HexToAddress(e.Address),
	}

	if e.DeploymentTx != "" {
		hashHex := strings.TrimPrefix(e.DeploymentTx, "0x")
		hashBytes, err := hex.DecodeString(hashHex)
		if err != nil || len(hashBytes) != common.HashLength {
			return nil, errors.Errorf("invalid deployment transaction hash %q", e.DeploymentTx)
		}
		hash := common.BytesToHash(hashBytes)
		descriptor.DeploymentTxHash = &hash
	}

	return descriptor, nil
}
