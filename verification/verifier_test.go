package verification

import (
	"context"
	"strings"
	"testing"

	"github.com/attestor-eth/attestor/artifacts"
	"github.com/attestor-eth/attestor/chain"
	"github.com/attestor-eth/attestor/registry"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubArtifactReader serves artifacts keyed by path, or a per-path error.
type stubArtifactReader struct {
	byPath map[string]*artifacts.CompiledArtifact
	errs   map[string]error
}

func (r *stubArtifactReader) Read(path string, key string) (*artifacts.CompiledArtifact, error) {
	if err, exists := r.errs[path]; exists {
		return nil, err
	}
	artifact, exists := r.byPath[path]
	if !exists {
		return nil, errors.Wrapf(artifacts.ErrNoArtifact, "%s", path)
	}
	// Return a copy so the verifier's dialect assignment never mutates shared fixtures.
	copied := *artifact
	return &copied, nil
}

// stubChainReader serves canned code and transactions.
type stubChainReader struct {
	code    map[common.Address]string
	txs     map[common.Hash]*chain.DeploymentTransaction
	codeErr error
}

func (r *stubChainReader) GetCode(_ context.Context, address common.Address) (string, error) {
	if r.codeErr != nil {
		return "", r.codeErr
	}
	return r.code[address], nil
}

func (r *stubChainReader) GetTransaction(_ context.Context, txHash common.Hash) (*chain.DeploymentTransaction, error) {
	return r.txs[txHash], nil
}

var (
	testAddress = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	testTxHash  = common.HexToHash("0x71b9e2b44d40b6c45e62c982e35bfb9ce53ced9b6c844bc0a4e7dfef9a2e9a27")
)

// testDescriptor builds a solidity descriptor against the shared test address.
func testDescriptor(withTxHash bool) registry.Descriptor {
	descriptor := registry.Descriptor{
		ArtifactPath: "out/Token.json",
		SourcePath:   "contracts/Token.sol",
		ContractName: "Token",
		Address:      testAddress,
	}
	if withTxHash {
		hash := testTxHash
		descriptor.DeploymentTxHash = &hash
	}
	return descriptor
}

// TestVerifyRuntimeMatch verifies the deployed-code route succeeds without touching the transaction.
func TestVerifyRuntimeMatch(t *testing.T) {
	t.Parallel()

	artifactReader := &stubArtifactReader{byPath: map[string]*artifacts.CompiledArtifact{
		"out/Token.json": {RuntimeBytecode: "0x6080604052", DeploymentBytecode: "0x606060"},
	}}
	chainReader := &stubChainReader{code: map[common.Address]string{testAddress: "0x6080604052"}}

	outcome := NewVerifier(artifactReader, chainReader, 1).Verify(context.Background(), testDescriptor(false))
	assert.Equal(t, StatusMatched, outcome.Status)
	assert.Equal(t, RouteRuntime, outcome.Route)
}

// TestVerifyCreationFallbackMatch verifies the creation route matches when the runtime comparison cannot.
func TestVerifyCreationFallbackMatch(t *testing.T) {
	t.Parallel()

	deployment := "60806040523480156100115760006000fd5b50"
	constructorArgs := strings.Repeat("00", 31) + "2a"

	artifactReader := &stubArtifactReader{byPath: map[string]*artifacts.CompiledArtifact{
		"out/Token.json": {RuntimeBytecode: "0x60806001", DeploymentBytecode: "0x" + deployment},
	}}
	chainReader := &stubChainReader{
		code: map[common.Address]string{testAddress: "0x60806000"},
		txs: map[common.Hash]*chain.DeploymentTransaction{
			testTxHash: {InputData: "0x" + deployment + constructorArgs, CreatedAddress: testAddress},
		},
	}

	outcome := NewVerifier(artifactReader, chainReader, 1).Verify(context.Background(), testDescriptor(true))
	assert.Equal(t, StatusMatched, outcome.Status)
	assert.Equal(t, RouteCreation, outcome.Route)
}

// TestVerifyMissingTxHash verifies a descriptor with no deployed-code match and no transaction hash yields an
// errored outcome, never a mismatch.
func TestVerifyMissingTxHash(t *testing.T) {
	t.Parallel()

	artifactReader := &stubArtifactReader{byPath: map[string]*artifacts.CompiledArtifact{
		"out/Token.json": {RuntimeBytecode: "0x60806001", DeploymentBytecode: "0x606060"},
	}}
	chainReader := &stubChainReader{code: map[common.Address]string{testAddress: "0x60806000"}}

	outcome := NewVerifier(artifactReader, chainReader, 1).Verify(context.Background(), testDescriptor(false))
	require.Equal(t, StatusErrored, outcome.Status)
	assert.Equal(t, ErrorKindMissingTxHash, outcome.ErrKind)
}

// TestVerifyTransactionPreconditions verifies the creation-route precondition failures each map to their own
// error kind.
func TestVerifyTransactionPreconditions(t *testing.T) {
	t.Parallel()

	artifactReader := &stubArtifactReader{byPath: map[string]*artifacts.CompiledArtifact{
		"out/Token.json": {RuntimeBytecode: "0x60806001", DeploymentBytecode: "0x606060"},
	}}

	// Transaction not found.
	chainReader := &stubChainReader{code: map[common.Address]string{testAddress: "0x60806000"}}
	outcome := NewVerifier(artifactReader, chainReader, 1).Verify(context.Background(), testDescriptor(true))
	require.Equal(t, StatusErrored, outcome.Status)
	assert.Equal(t, ErrorKindTransactionNotFound, outcome.ErrKind)

	// Transaction created a different contract.
	chainReader.txs = map[common.Hash]*chain.DeploymentTransaction{
		testTxHash: {InputData: "0x606060", CreatedAddress: common.HexToAddress("0x1")},
	}
	outcome = NewVerifier(artifactReader, chainReader, 1).Verify(context.Background(), testDescriptor(true))
	require.Equal(t, StatusErrored, outcome.Status)
	assert.Equal(t, ErrorKindWrongDeploymentTransaction, outcome.ErrKind)

	// Transaction has no input data.
	chainReader.txs = map[common.Hash]*chain.DeploymentTransaction{
		testTxHash: {InputData: "0x", CreatedAddress: testAddress},
	}
	outcome = NewVerifier(artifactReader, chainReader, 1).Verify(context.Background(), testDescriptor(true))
	require.Equal(t, StatusErrored, outcome.Status)
	assert.Equal(t, ErrorKindEmptyCreationData, outcome.ErrKind)
}

// TestVerifyMissingBytecode verifies artifacts lacking bytecode fields report their dedicated kind.
func TestVerifyMissingBytecode(t *testing.T) {
	t.Parallel()

	artifactReader := &stubArtifactReader{errs: map[string]error{
		"out/Token.json": errors.Wrap(artifacts.ErrMissingBytecode, "out/Token.json"),
	}}
	chainReader := &stubChainReader{}

	outcome := NewVerifier(artifactReader, chainReader, 1).Verify(context.Background(), testDescriptor(false))
	require.Equal(t, StatusErrored, outcome.Status)
	assert.Equal(t, ErrorKindMissingBytecode, outcome.ErrKind)
}

// TestVerifyMismatchOperands verifies a definitive mismatch preserves the compared creation operands for
// diagnostics.
func TestVerifyMismatchOperands(t *testing.T) {
	t.Parallel()

	artifactReader := &stubArtifactReader{byPath: map[string]*artifacts.CompiledArtifact{
		"out/Token.json": {RuntimeBytecode: "0x60806001", DeploymentBytecode: "0x60fe60ff"},
	}}
	chainReader := &stubChainReader{
		code: map[common.Address]string{testAddress: "0x60806000"},
		txs: map[common.Hash]*chain.DeploymentTransaction{
			testTxHash: {InputData: "0x60aa60bb", CreatedAddress: testAddress},
		},
	}

	outcome := NewVerifier(artifactReader, chainReader, 1).Verify(context.Background(), testDescriptor(true))
	require.Equal(t, StatusMismatched, outcome.Status)
	assert.Equal(t, "60aa60bb", outcome.CreationInput)
	assert.Equal(t, "60fe60ff", outcome.CreationCompiled)
}

// TestVerifyAllBatch verifies a mixed batch produces exactly one outcome per descriptor, in registry order, with
// no descriptor silently dropped.
func TestVerifyAllBatch(t *testing.T) {
	t.Parallel()

	matchAddress := common.HexToAddress("0x1000000000000000000000000000000000000001")
	mismatchAddress := common.HexToAddress("0x2000000000000000000000000000000000000002")
	errorAddress := common.HexToAddress("0x3000000000000000000000000000000000000003")
	mismatchTx := common.HexToHash("0x00000000000000000000000000000000000000000000000000000000000000aa")

	artifactReader := &stubArtifactReader{
		byPath: map[string]*artifacts.CompiledArtifact{
			"out/Match.json":    {RuntimeBytecode: "0x6001", DeploymentBytecode: "0x6001"},
			"out/Mismatch.json": {RuntimeBytecode: "0x6002", DeploymentBytecode: "0x6002"},
			"out/Error.json":    {RuntimeBytecode: "0x6003", DeploymentBytecode: "0x6003"},
		},
	}
	chainReader := &stubChainReader{
		code: map[common.Address]string{
			matchAddress:    "0x6001",
			mismatchAddress: "0xdead",
			errorAddress:    "0xbeef",
		},
		txs: map[common.Hash]*chain.DeploymentTransaction{
			mismatchTx: {InputData: "0xdead", CreatedAddress: mismatchAddress},
		},
	}

	descriptors := []registry.Descriptor{
		{ArtifactPath: "out/Match.json", SourcePath: "a.sol", ContractName: "Match", Address: matchAddress},
		{ArtifactPath: "out/Mismatch.json", SourcePath: "b.sol", ContractName: "Mismatch", Address: mismatchAddress, DeploymentTxHash: &mismatchTx},
		{ArtifactPath: "out/Error.json", SourcePath: "c.sol", ContractName: "Error", Address: errorAddress},
	}

	outcomes := NewVerifier(artifactReader, chainReader, 4).VerifyAll(context.Background(), descriptors)
	require.Len(t, outcomes, len(descriptors))
	assert.Equal(t, StatusMatched, outcomes[0].Status)
	assert.Equal(t, StatusMismatched, outcomes[1].Status)
	assert.Equal(t, StatusErrored, outcomes[2].Status)
	assert.Equal(t, ErrorKindMissingTxHash, outcomes[2].ErrKind)
}

// TestVerifyMalformedHex verifies malformed artifact bytecode surfaces as an input error.
func TestVerifyMalformedHex(t *testing.T) {
	t.Parallel()

	artifactReader := &stubArtifactReader{byPath: map[string]*artifacts.CompiledArtifact{
		"out/Token.json": {RuntimeBytecode: "0x608", DeploymentBytecode: "0x606060"},
	}}
	chainReader := &stubChainReader{code: map[common.Address]string{testAddress: "0x60806000"}}

	outcome := NewVerifier(artifactReader, chainReader, 1).Verify(context.Background(), testDescriptor(false))
	require.Equal(t, StatusErrored, outcome.Status)
	assert.Equal(t, ErrorKindMalformedHex, outcome.ErrKind)
}
