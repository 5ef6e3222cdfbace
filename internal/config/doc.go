// Package config provides configuration handling for commitpulse.
//
// # Configuration Sources
//
// Configuration values are loaded with the following precedence:
//
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. The YAML config file
// 4. Default values (lowest priority)
//
// The config file is read from <repo>/.commitpulse.yaml unless -config names
// another one. A missing default file is ignored; a missing -config file is an
// error, as are unknown keys.
//
//	counter_file: number.txt
//	config_marker: config.txt
//	system_marker: system.txt
//	min_commits: 1
//	max_commits: 3
//	min_delay: 30
//	max_delay: 180
//	task_name: DailyNumberUpdate
//	remote: origin
//	allow_empty: false
//	no_schedule: false
//	fallback_identity:
//	  name: commitpulse
//	  email: commitpulse@users.noreply.github.com
//	messages:
//	  - Update documentation
//	  - Fix typo
//
// # Environment Variables
//
//	COMMITPULSE_REPO            Path to repository (default: current directory)
//	COMMITPULSE_CONFIG          Path to the YAML config file
//	COMMITPULSE_COUNTER_FILE    Counter file, relative to the repository
//	COMMITPULSE_CONFIG_MARKER   Configuration marker file
//	COMMITPULSE_SYSTEM_MARKER   System marker file
//	COMMITPULSE_MIN_COMMITS     Minimum commits per run (default: 1)
//	COMMITPULSE_MAX_COMMITS     Maximum commits per run (default: 3)
//	COMMITPULSE_MIN_DELAY       Minimum seconds between commits (default: 30)
//	COMMITPULSE_MAX_DELAY       Maximum seconds between commits (default: 180)
//	COMMITPULSE_TASK_NAME       Scheduled task name (default: DailyNumberUpdate)
//	COMMITPULSE_REMOTE          Remote to push to (default: upstream)
//	COMMITPULSE_FALLBACK_NAME   user.name written when none is configured
//	COMMITPULSE_FALLBACK_EMAIL  user.email written when none is configured
//	COMMITPULSE_ALLOW_EMPTY     Commit even when nothing changed
//	COMMITPULSE_NO_SCHEDULE     Skip registering the next run
//	COMMITPULSE_VERBOSE         Show informational messages (default: true)
//	COMMITPULSE_DEBUG           Enable debug logging (default: false)
//	COMMITPULSE_LOG_FILE        Path to log file (default: ~/.local/share/commitpulse/logs/commitpulse-<hash>.log)
//
// Every environment variable has a command-line flag of the same name in
// kebab case, except COMMITPULSE_VERBOSE whose flag is -quiet.
//
// # Usage
//
//	cfg := config.New()
//	cfg.LoadFromEnvironment()
//
//	if err := cfg.ParseFlags(); err != nil {
//	    // Handle error
//	}
//	if err := cfg.Finalize(); err != nil {
//	    // Handle error
//	}
//
// Config is loaded once at startup and read-only afterwards. It is not safe
// for concurrent modification.
package config
