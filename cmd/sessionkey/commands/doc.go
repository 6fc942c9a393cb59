// Package commands defines the sessionkey CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init                  Create or load the device session key
//   - identity              Print the session identity and fingerprint
//   - primary new           Create a primary account in a local keystore
//   - authorize             Ask the primary wallet to delegate to the session key
//   - verify-authorization  Check a primary signature over a delegation message
//   - sign-action           Sign one action with an explicit nonce
//   - verify-action         Check an action signature and, optionally, its nonce
//   - play                  Authorize, then play rock/paper/scissors with signed moves
//
// # Implementation
//
// The root command loads configuration from the environment (and .env), lets
// persistent flags override it, initialises the zap logger and builds the app
// context before any subcommand runs.
package commands
