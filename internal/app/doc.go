// Package app wires application dependencies for the CLI.
//
// It reads Config from the environment, builds the key store, signature
// validator and services through NewWire, and exposes them via App for
// commands to use.
package app
