// Package main implements commitpulse, a daily commit activity generator
//
// Each run makes one to three small changes to a repository, commits every
// change with a message drawn from a fixed pool, pushes after each commit and
// pauses 30 to 180 seconds between commits. It then registers itself with the
// Windows Task Scheduler to run again at a random time of day. On other
// platforms it asks for a cron or launchd entry instead.
//
// # Basic Usage
//
//	commitpulse                        # Run against the current directory
//	commitpulse -repo ~/src/activity   # Run against another repository
//	commitpulse -no-schedule           # Do not register the next run
//	commitpulse -max-commits 1         # Exactly one commit
//	commitpulse -version               # Print version information
//
// # Files
//
// The run touches three files in the repository root:
//
//	number.txt   a counter, incremented by one action
//	config.txt   a marker whose modification time is refreshed
//	system.txt   a marker whose modification time is refreshed
//
// A corrupt counter stops the run with an error and is left as it is. Push and
// scheduling failures are reported and the run carries on.
//
// # Configuration
//
// Every flag can also be given as a COMMITPULSE_* environment variable or in
// <repo>/.commitpulse.yaml. See the config package for the full list.
//
// # Exit Codes
//
//	0  the run completed, whether or not pushes and scheduling succeeded
//	1  invalid configuration, git missing, not a repository, or a failed
//	   identity, counter, staging or commit step
package main
