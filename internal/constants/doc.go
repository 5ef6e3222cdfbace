// Package constants provides application-wide constant values for commitpulse.
//
// This package centralizes the fixed values that define what a run looks like
// from the outside: the pool of commit messages, the default file names the
// mutation actions touch, and the name under which the next run is registered
// with the host scheduler.
//
// # Usage
//
// The constants in this package can be imported and used directly:
//
//	import "github.com/bashhack/commitpulse/internal/constants"
//
//	msg := constants.CommitMessages[0]
//
// # Maintenance
//
// When adding new constants to this package:
//
// - Group related constants together
// - Keep CommitMessages generic; a message must fit any of the mutation actions
package constants
