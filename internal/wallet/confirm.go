package wallet

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"sessionkey/internal/domain"
)

// Prompt asks a human whether text may be signed by addr.
type Prompt func(ctx context.Context, addr common.Address, text string) (bool, error)

// ConfirmingSigner asks for confirmation before delegating to the inner signer.
type ConfirmingSigner struct {
	inner  domain.PrimarySigner
	prompt Prompt
}

// Confirming wraps inner so every SignMessage call goes through prompt first.
func Confirming(inner domain.PrimarySigner, prompt Prompt) *ConfirmingSigner {
	return &ConfirmingSigner{inner: inner, prompt: prompt}
}

// Address returns the inner signer's address.
func (c *ConfirmingSigner) Address() common.Address { return c.inner.Address() }

// SignMessage prompts and then signs. A refusal returns ErrDeclined.
func (c *ConfirmingSigner) SignMessage(ctx context.Context, text string) ([]byte, error) {
	ok, err := c.prompt(ctx, c.inner.Address(), text)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDeclined
	}
	return c.inner.SignMessage(ctx, text)
}

var _ domain.PrimarySigner = (*ConfirmingSigner)(nil)
