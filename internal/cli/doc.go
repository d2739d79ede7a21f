// Package cli holds the pieces of the formcheck command that are worth
// testing without a terminal: engine wiring, document input and reports.
package cli
