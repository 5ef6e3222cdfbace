// Package common holds contracts shared by the commitpulse packages.
//
// It has no dependencies on other internal packages so that any of them can
// accept a Logger without import cycles:
//
//	func NewPublisher(repo Repository, opts Options, logger common.Logger) (*Publisher, error)
//
// Production code passes a *logger.DefaultLogger; tests pass logger.NewNop()
// or a hand-written mock that records calls.
package common
