// Package git provides the version-control boundary for commitpulse.
//
// Client wraps the handful of git commands a run needs: reading and writing
// the authoring identity, staging everything, committing and pushing. Every
// command goes through a command.CommandExecutor so tests can substitute a
// recording mock instead of a real git binary.
//
// # Usage
//
//	client := git.NewClient("/path/to/repo")
//
//	if err := client.AddAll(ctx); err != nil {
//	    // Handle error
//	}
//
//	if err := client.Commit(ctx, "Routine update", false); err != nil {
//	    // Handle error
//	}
//
//	if err := client.Push(ctx, ""); err != nil {
//	    // Push failures carry git's stderr in errors.GitError.Output
//	}
//
// # Implementation Notes
//
// The package uses the command-line Git executable rather than a Go Git library.
// This ensures compatibility with credential helpers, hooks and whatever remote
// configuration the repository already has.
//
// Client implements identity.Source and identity.Sink, so it can be handed
// directly to the identity configurator.
package git
