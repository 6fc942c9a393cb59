// Package identity derives the public session identity from session key
// material and renders short fingerprints for display.
package identity
