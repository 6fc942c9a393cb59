// Package authorization ties the session key pipeline together.
//
// A State starts Unauthenticated, moves to Pending while the primary wallet is
// asked to sign the delegation, and to Authorized once that signature has been
// verified. While Authorized, SubmitAction signs and verifies one action per
// call and returns an ActionOutcome, the only way a consumer learns that an
// action was accepted.
package authorization
