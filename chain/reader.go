package chain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// DeploymentTransaction describes the subset of a contract-creation transaction relevant to verification.
type DeploymentTransaction struct {
	// InputData is the hex-encoded transaction input: the deployment bytecode followed by any ABI-encoded
	// constructor arguments the deployer appended.
	InputData string

	// CreatedAddress is the address of the contract the transaction created, as recorded in its receipt.
	CreatedAddress common.Address
}

// Reader provides the on-chain evidence verification compares artifacts against. Implementations define their own
// timeout and pooling policy; callers perform no retries.
type Reader interface {
	// GetCode returns the hex-encoded bytecode stored at the given address.
	GetCode(ctx context.Context, address common.Address) (string, error)

	// GetTransaction returns the deployment transaction with the given hash, or (nil, nil) if no such transaction
	// exists on the chain.
	GetTransaction(ctx context.Context, txHash common.Hash) (*DeploymentTransaction, error)
}
