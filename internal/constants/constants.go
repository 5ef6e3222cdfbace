package constants

const (
	// AppName is used for the log directory and the default config file
	AppName = "commitpulse"

	// DefaultCounterFile holds the persisted counter
	DefaultCounterFile = "number.txt"

	// DefaultConfigMarker is touched by the config-marker action
	DefaultConfigMarker = "config.txt"

	// DefaultSystemMarker is touched by the system-marker action
	DefaultSystemMarker = "system.txt"

	// DefaultTaskName is the scheduler task that re-invokes the program
	DefaultTaskName = "DailyNumberUpdate"

	// DefaultConfigFile is looked up in the repository root when -config is not given
	DefaultConfigFile = ".commitpulse.yaml"

	// DefaultFallbackName is written as the global user.name when none is configured
	DefaultFallbackName = "commitpulse"

	// DefaultFallbackEmail is written as the global user.email when none is configured
	DefaultFallbackEmail = "commitpulse@users.noreply.github.com"
)

// CommitMessages is the fixed pool commit messages are drawn from
var CommitMessages = []string{
	"Update documentation",
	"Fix typo",
	"Minor improvements",
	"Refactor code",
	"Update dependencies",
	"Add comments",
	"Clean up",
	"Optimize performance",
	"Update configuration",
	"Fix formatting",
	"Update readme",
	"Code cleanup",
	"Minor tweaks",
	"Update version",
	"Improve structure",
	"Fix indent",
	"Update settings",
	"Enhance readability",
	"Update resources",
	"Fix spacing",
	"Update templates",
	"Improve organization",
	"Update modules",
	"Fix alignment",
	"Update packages",
	"General maintenance",
	"Routine update",
	"System maintenance",
	"Regular update",
	"Daily backup",
}
