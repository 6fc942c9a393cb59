package interfaces

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// PrimarySigner is the wallet that owns the primary identity. SignMessage may
// block on a human confirming the request and must honour ctx cancellation
// where it can.
type PrimarySigner interface {
	Address() common.Address
	SignMessage(ctx context.Context, text string) ([]byte, error)
}

// SignatureValidator decides whether sig over message was produced by addr.
// A mismatch is (false, nil); an error means the validator could not decide.
type SignatureValidator interface {
	IsValidSignature(ctx context.Context, addr common.Address, message string, sig []byte) (bool, error)
}
