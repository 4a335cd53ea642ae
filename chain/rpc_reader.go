package chain

import (
	"context"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
)

// RPCReader is a Reader backed by a JSON-RPC connection to an execution-layer node.
type RPCReader struct {
	client    *ethclient.Client
	rpcClient *rpc.Client
}

// NewRPCReader dials the provided RPC endpoint and returns a Reader over it.
func NewRPCReader(endpoint string) (*RPCReader, error) {
	rpcClient, err := rpc.Dial(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "could not connect to RPC endpoint %s", endpoint)
	}
	return &RPCReader{
		client:    ethclient.NewClient(rpcClient),
		rpcClient: rpcClient,
	}, nil
}

// GetCode fetches the bytecode stored at the given address at the latest block.
func (r *RPCReader) GetCode(ctx context.Context, address common.Address) (string, error) {
	code, err := r.client.CodeAt(ctx, address, nil)
	if err != nil {
		return "", errors.Wrapf(err, "could not fetch code at %s", address.Hex())
	}
	return hexutil.Encode(code), nil
}

// GetTransaction fetches the transaction with the given hash along with its receipt, which records the address of
// the contract the transaction created. Returns (nil, nil) if the chain has no such transaction.
func (r *RPCReader) GetTransaction(ctx context.Context, txHash common.Hash) (*DeploymentTransaction, error) {
	tx, _, err := r.client.TransactionByHash(ctx, txHash)
	if errors.Is(err, ethereum.NotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not fetch transaction %s", txHash.Hex())
	}

	receipt, err := r.client.TransactionReceipt(ctx, txHash)
	if errors.Is(err, ethereum.NotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not fetch receipt for transaction %s", txHash.Hex())
	}

	return &DeploymentTransaction{
		InputData:      hexutil.Encode(tx.Data()),
		CreatedAddress: receipt.ContractAddress,
	}, nil
}

// Close tears down the underlying RPC connection.
func (r *RPCReader) Close() {
	r.rpcClient.Close()
}
