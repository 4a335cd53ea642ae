package verification

import (
	"context"
	"sync"

	"github.com/attestor-eth/attestor/artifacts"
	"github.com/attestor-eth/attestor/chain"
	"github.com/attestor-eth/attestor/logging"
	"github.com/attestor-eth/attestor/registry"
	"github.com/attestor-eth/attestor/verification/matching"
	"github.com/pkg/errors"
)

// Verifier checks descriptors from a registry against on-chain evidence. Descriptors are independent: they are
// verified concurrently against a shared chain reader, and one descriptor's failure never affects another's verdict.
type Verifier struct {
	// artifactReader resolves compiled artifacts from descriptor locations.
	artifactReader artifacts.Reader

	// chainReader supplies deployed bytecode and deployment transactions.
	chainReader chain.Reader

	// workers bounds how many descriptors are verified concurrently.
	workers int

	// logger describes the Verifier's log object that can be used to log important events
	logger *logging.Logger
}

// NewVerifier creates a Verifier over the provided collaborators. A non-positive worker count falls back to
// verifying descriptors one at a time.
func NewVerifier(artifactReader artifacts.Reader, chainReader chain.Reader, workers int) *Verifier {
	if workers <= 0 {
		workers = 1
	}
	return &Verifier{
		artifactReader: artifactReader,
		chainReader:    chainReader,
		workers:        workers,
		logger:         logging.GlobalLogger.NewSubLogger("module", "verification"),
	}
}

// VerifyAll verifies every descriptor and returns exactly one outcome per descriptor, in registry order. The batch
// never short-circuits: errored and mismatched descriptors are collected alongside matches so a caller reviewing a
// batch sees every contract's verdict.
func (v *Verifier) VerifyAll(ctx context.Context, descriptors []registry.Descriptor) []Outcome {
	outcomes := make([]Outcome, len(descriptors))

	// Feed descriptor indices to a bounded set of workers. Each worker writes only its own outcome slots, so no
	// locking is needed beyond the channel.
	indexes := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < v.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range indexes {
				outcomes[index] = v.Verify(ctx, descriptors[index])
			}
		}()
	}
	for i := range descriptors {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return outcomes
}

// Verify runs the two comparisons for a single descriptor: the deployed-code comparison first, then the
// creation-code fallback whenever the first reports no match, regardless of why it did not match. Any missing
// precondition yields an errored outcome with a descriptive kind, never a silent mismatch.
func (v *Verifier) Verify(ctx context.Context, descriptor registry.Descriptor) Outcome {
	v.logger.Debug("Verifying ", descriptor.Name())

	// Resolve the compiled artifact.
	artifact, err := v.artifactReader.Read(descriptor.ArtifactPath, descriptor.ArtifactKey)
	if err != nil {
		kind := ErrorKindArtifactUnreadable
		if errors.Is(err, artifacts.ErrMissingBytecode) {
			kind = ErrorKindMissingBytecode
		}
		return erroredOutcome(descriptor, kind, err)
	}
	artifact.Dialect = matching.DialectFromSourcePath(descriptor.SourcePath)

	// Fetch the bytecode stored at the target address.
	deployedCode, err := v.chainReader.GetCode(ctx, descriptor.Address)
	if err != nil {
		return erroredOutcome(descriptor, ErrorKindChainUnavailable, err)
	}

	// Attempt the deployed-code comparison.
	runtimeKind, err := matching.MatchDeployedCode(deployedCode, artifact.RuntimeBytecode, artifact.Dialect)
	if err != nil {
		return erroredOutcome(descriptor, ErrorKindMalformedHex, err)
	}
	if runtimeKind.Matched() {
		return Outcome{
			Descriptor:  descriptor,
			Status:      StatusMatched,
			Route:       RouteRuntime,
			RuntimeKind: runtimeKind,
		}
	}

	// Fall back to the creation-code comparison, which requires a deployment transaction.
	if descriptor.DeploymentTxHash == nil {
		return erroredOutcome(descriptor, ErrorKindMissingTxHash,
			errors.New("deployed bytecode did not match and no deployment transaction hash was provided"))
	}
	tx, err := v.chainReader.GetTransaction(ctx, *descriptor.DeploymentTxHash)
	if err != nil {
		return erroredOutcome(descriptor, ErrorKindChainUnavailable, err)
	}
	if tx == nil {
		return erroredOutcome(descriptor, ErrorKindTransactionNotFound,
			errors.Errorf("transaction %s was not found on the chain", descriptor.DeploymentTxHash.Hex()))
	}
	if tx.CreatedAddress != descriptor.Address {
		return erroredOutcome(descriptor, ErrorKindWrongDeploymentTransaction,
			errors.Errorf("transaction %s created %s, not %s", descriptor.DeploymentTxHash.Hex(),
				tx.CreatedAddress.Hex(), descriptor.Address.Hex()))
	}
	if tx.InputData == "" || tx.InputData == "0x" {
		return erroredOutcome(descriptor, ErrorKindEmptyCreationData,
			errors.Errorf("transaction %s carries no input data", descriptor.DeploymentTxHash.Hex()))
	}

	creationMatched, err := matching.MatchCreationCode(tx.InputData, artifact.DeploymentBytecode, artifact.Dialect)
	if err != nil {
		return erroredOutcome(descriptor, ErrorKindMalformedHex, err)
	}
	if creationMatched {
		return Outcome{
			Descriptor: descriptor,
			Status:     StatusMatched,
			Route:      RouteCreation,
		}
	}

	// Preserve the compared operands so the reporting layer can produce a diagnostic diff.
	inputHex, compiledHex, err := matching.CreationComparands(tx.InputData, artifact.DeploymentBytecode, artifact.Dialect)
	if err != nil {
		return erroredOutcome(descriptor, ErrorKindMalformedHex, err)
	}
	return Outcome{
		Descriptor:       descriptor,
		Status:           StatusMismatched,
		CreationInput:    inputHex,
		CreationCompiled: compiledHex,
	}
}
