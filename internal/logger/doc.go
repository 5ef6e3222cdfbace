// Package logger implements common.Logger for commitpulse.
//
// A DefaultLogger writes two streams. The debug stream is a log/slog text log
// in the file given to NewWithOutput, and is only written when debug logging is enabled.
// If that file cannot be opened the records go to stderr through a tint
// handler. The console stream carries the lines a person running commitpulse
// reads, each with a lipgloss-styled prefix:
//
//	ℹ️  InfoToUser     "Making 2 commit(s) this run"
//	✅ Success        "Committed: Fix typo"
//	⚠️  WarningToUser  "Error pushing to remote: ..."
//	❌ Error          written to stderr
//
// Warning only reaches the console in verbose mode. StatusMessage prints a
// plain line and is never recorded, which keeps the run summary out of the log.
//
// Styles are rendered for the writer they target, so redirected output and
// test buffers get plain text.
//
// Every debug record after WithRunID carries a run_id attribute, which ties
// together the lines of one scheduled invocation in a log shared by all runs
// against the same repository:
//
//	log := logger.NewWithOutput(cfg.Debug, cfg.LogFile, cfg.Verbose, os.Stdout, os.Stderr).WithRunID(uuid.NewString())
//	defer log.Close()
//
// DefaultLogger is safe for concurrent use.
package logger
