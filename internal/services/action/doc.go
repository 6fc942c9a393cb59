// Package action signs and verifies nonce-scoped session actions.
//
// The signer is the only place a nonce is incremented and it advances by one
// per attempt, successful or not. Verification is a pure local signer
// recovery and never touches the network.
package action
