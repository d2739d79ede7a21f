// Package registry keeps named schemas so that distant parts of a program can
// share them by name.
//
// Default is the process-wide table; New creates isolated ones for tests or
// dependency injection. Registering a name twice keeps the last schema.
package registry
