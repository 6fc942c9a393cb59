package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Client is the subset of *ethclient.Client the validators need.
type Client interface {
	ChainID(ctx context.Context) (*big.Int, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	CallContract(ctx context.Context, call ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

// ErrChainMismatch is returned by Dial when the endpoint serves another chain.
var ErrChainMismatch = errors.New("chain: rpc endpoint reports unexpected chain id")

// Dial connects to rpcURL. When expectedChainID is non-nil the endpoint's
// chain id must match it.
func Dial(ctx context.Context, rpcURL string, expectedChainID *big.Int) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", rpcURL, err)
	}
	if expectedChainID == nil {
		return client, nil
	}
	if err := checkChainID(ctx, client, expectedChainID); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func checkChainID(ctx context.Context, c Client, expected *big.Int) error {
	got, err := c.ChainID(ctx)
	if err != nil {
		return fmt.Errorf("query chain id: %w", err)
	}
	if got.Cmp(expected) != 0 {
		return fmt.Errorf("%w: want %s, got %s", ErrChainMismatch, expected, got)
	}
	return nil
}
