// Package chain validates primary identity signatures.
//
// RecoverValidator is a pure ecrecover check for externally owned accounts.
// ContractValidator consults a chain RPC: addresses without code fall back to
// ecrecover, addresses with code are asked via EIP-1271 isValidSignature.
// Transient RPC failures are retried and then surface as
// domain.ErrVerificationInfrastructureUnavailable; a contract that rejects or
// reverts is a plain mismatch.
package chain
