package config

import (
	"bytes"
	"crypto/sha256"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bashhack/commitpulse/internal/constants"
	"github.com/bashhack/commitpulse/internal/errors"
	"github.com/bashhack/commitpulse/internal/policy"
)

// EnvPrefix is prepended to every environment variable the program reads
const EnvPrefix = "COMMITPULSE_"

// Config holds all commitpulse settings
type Config struct {
	// Repository and files, relative to RepoPath
	RepoPath     string
	ConfigFile   string
	CounterFile  string
	ConfigMarker string
	SystemMarker string

	// Pacing ranges, inclusive
	MinCommits      int
	MaxCommits      int
	MinDelaySeconds int
	MaxDelaySeconds int

	// Publishing
	Remote     string
	AllowEmpty bool
	Messages   []string

	// Identity fallback
	FallbackName  string
	FallbackEmail string

	// Scheduling
	TaskName   string
	NoSchedule bool

	// User experience
	Verbose bool

	// Debugging
	Debug   bool
	LogFile string

	// Special flags
	Version bool

	// Build metadata
	VersionInfo VersionInfo

	// explicit records settings given by environment or flags; the
	// config file never overrides them
	explicit map[string]bool
}

// VersionInfo contains build-time version metadata
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// New creates a new Config with default values
func New() *Config {
	ranges := policy.DefaultRanges()
	return &Config{
		CounterFile:     constants.DefaultCounterFile,
		ConfigMarker:    constants.DefaultConfigMarker,
		SystemMarker:    constants.DefaultSystemMarker,
		MinCommits:      ranges.MinCommits,
		MaxCommits:      ranges.MaxCommits,
		MinDelaySeconds: ranges.MinDelaySeconds,
		MaxDelaySeconds: ranges.MaxDelaySeconds,
		FallbackName:    constants.DefaultFallbackName,
		FallbackEmail:   constants.DefaultFallbackEmail,
		TaskName:        constants.DefaultTaskName,
		Messages:        constants.CommitMessages,
		Verbose:         true,

		// Default version info, will be overridden if provided
		VersionInfo: VersionInfo{
			Version: "dev",
			Commit:  "unknown",
			Date:    "unknown",
		},
		explicit: make(map[string]bool),
	}
}

// LoadFromEnvironment updates config from COMMITPULSE_* environment variables
func (c *Config) LoadFromEnvironment() {
	c.RepoPath = c.envString("repo", "REPO", c.RepoPath)
	c.ConfigFile = c.envString("config", "CONFIG", c.ConfigFile)
	c.CounterFile = c.envString("counter-file", "COUNTER_FILE", c.CounterFile)
	c.ConfigMarker = c.envString("config-marker", "CONFIG_MARKER", c.ConfigMarker)
	c.SystemMarker = c.envString("system-marker", "SYSTEM_MARKER", c.SystemMarker)
	c.MinCommits = c.envInt("min-commits", "MIN_COMMITS", c.MinCommits)
	c.MaxCommits = c.envInt("max-commits", "MAX_COMMITS", c.MaxCommits)
	c.MinDelaySeconds = c.envInt("min-delay", "MIN_DELAY", c.MinDelaySeconds)
	c.MaxDelaySeconds = c.envInt("max-delay", "MAX_DELAY", c.MaxDelaySeconds)
	c.TaskName = c.envString("task-name", "TASK_NAME", c.TaskName)
	c.Remote = c.envString("remote", "REMOTE", c.Remote)
	c.FallbackName = c.envString("fallback-name", "FALLBACK_NAME", c.FallbackName)
	c.FallbackEmail = c.envString("fallback-email", "FALLBACK_EMAIL", c.FallbackEmail)
	c.AllowEmpty = c.envBool("allow-empty", "ALLOW_EMPTY", c.AllowEmpty)
	c.NoSchedule = c.envBool("no-schedule", "NO_SCHEDULE", c.NoSchedule)
	c.Verbose = c.envBool("quiet", "VERBOSE", c.Verbose)
	c.Debug = c.envBool("debug", "DEBUG", c.Debug)
	c.LogFile = c.envString("log-file", "LOG_FILE", c.LogFile)
}

// SetupFlags sets up command-line flags to override config values
func (c *Config) SetupFlags(fs *flag.FlagSet) {
	// -quiet is the inverse of Verbose; it is flipped back after parsing
	origVerbose := c.Verbose

	fs.StringVar(&c.RepoPath, "repo", c.RepoPath, "Path to repository (default: current directory)")
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "Path to YAML config file (default: <repo>/"+constants.DefaultConfigFile+")")
	fs.StringVar(&c.CounterFile, "counter-file", c.CounterFile, "Counter file, relative to the repository")
	fs.StringVar(&c.ConfigMarker, "config-marker", c.ConfigMarker, "Configuration marker file, relative to the repository")
	fs.StringVar(&c.SystemMarker, "system-marker", c.SystemMarker, "System marker file, relative to the repository")
	fs.IntVar(&c.MinCommits, "min-commits", c.MinCommits, "Minimum commits per run")
	fs.IntVar(&c.MaxCommits, "max-commits", c.MaxCommits, "Maximum commits per run")
	fs.IntVar(&c.MinDelaySeconds, "min-delay", c.MinDelaySeconds, "Minimum seconds between commits")
	fs.IntVar(&c.MaxDelaySeconds, "max-delay", c.MaxDelaySeconds, "Maximum seconds between commits")
	fs.StringVar(&c.TaskName, "task-name", c.TaskName, "Name of the scheduled task")
	fs.StringVar(&c.Remote, "remote", c.Remote, "Remote to push to (default: the branch's upstream)")
	fs.StringVar(&c.FallbackName, "fallback-name", c.FallbackName, "user.name to configure when none is set")
	fs.StringVar(&c.FallbackEmail, "fallback-email", c.FallbackEmail, "user.email to configure when none is set")
	fs.BoolVar(&c.AllowEmpty, "allow-empty", c.AllowEmpty, "Commit even when nothing changed")
	fs.BoolVar(&c.NoSchedule, "no-schedule", c.NoSchedule, "Do not register the next run")
	fs.BoolVar(&c.Verbose, "quiet", !origVerbose, "Hide informational messages")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Enable debug logging")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "Path to log file (default: ~/.local/share/commitpulse/logs/commitpulse-{repo-hash}.log)")
	fs.BoolVar(&c.Version, "version", c.Version, "Print version information and exit")
}

// ParseFlags parses the program's command-line arguments and updates the config
func (c *Config) ParseFlags() error {
	var appArgs []string
	if len(os.Args) > 1 {
		appArgs = os.Args[1:]
	}
	return c.ParseArgs(os.Args[0], appArgs, os.Stderr)
}

// ParseArgs parses args with a fresh flag set. Usage and parse errors are
// written to output.
func (c *Config) ParseArgs(name string, args []string, output io.Writer) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	c.SetupFlags(fs)

	if err := fs.Parse(args); err != nil {
		return errors.NewConfigError("flags", nil, errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to parse command-line arguments: %v", err)))
	}
	if fs.NArg() > 0 {
		return errors.NewConfigError("flags", fs.Args(), errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("unexpected arguments: %s", strings.Join(fs.Args(), " "))))
	}

	// -quiet means Verbose=false
	c.Verbose = !c.Verbose

	fs.Visit(func(f *flag.Flag) {
		c.markExplicit(f.Name)
	})

	return nil
}

// Finalize resolves paths, applies the config file and validates the result
func (c *Config) Finalize() error {
	if c.RepoPath == "" {
		var err error
		c.RepoPath, err = os.Getwd()
		if err != nil {
			return errors.NewConfigError("repoPath", "", errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to get current directory: %v", err)))
		}
	}

	absRepoPath, err := filepath.Abs(c.RepoPath)
	if err != nil {
		return errors.NewConfigError("repoPath", c.RepoPath, errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to resolve absolute path: %v", err)))
	}
	c.RepoPath = absRepoPath

	if err := c.loadFile(); err != nil {
		return err
	}

	if err := c.validate(); err != nil {
		return err
	}

	if c.LogFile == "" {
		c.LogFile = defaultLogFile(c.RepoPath)
	}

	return nil
}

// Ranges returns the pacing ranges for the policy package
func (c *Config) Ranges() policy.Ranges {
	return policy.Ranges{
		MinCommits:      c.MinCommits,
		MaxCommits:      c.MaxCommits,
		MinDelaySeconds: c.MinDelaySeconds,
		MaxDelaySeconds: c.MaxDelaySeconds,
	}
}

// CounterPath returns the absolute location of the counter file
func (c *Config) CounterPath() string {
	return filepath.Join(c.RepoPath, c.CounterFile)
}

// IsExplicit reports whether a setting came from the environment or a flag.
// Settings are named after their flag.
func (c *Config) IsExplicit(name string) bool {
	return c.explicit[name]
}

func (c *Config) validate() error {
	if c.MinCommits < 1 {
		return invalid("minCommits", c.MinCommits, "invalid min-commits: %d (must be at least 1)", c.MinCommits)
	}
	if c.MaxCommits < c.MinCommits {
		return invalid("maxCommits", c.MaxCommits, "invalid max-commits: %d (must not be below min-commits %d)", c.MaxCommits, c.MinCommits)
	}
	if c.MinDelaySeconds < 0 {
		return invalid("minDelay", c.MinDelaySeconds, "invalid min-delay: %d (must not be negative)", c.MinDelaySeconds)
	}
	if c.MaxDelaySeconds < c.MinDelaySeconds {
		return invalid("maxDelay", c.MaxDelaySeconds, "invalid max-delay: %d (must not be below min-delay %d)", c.MaxDelaySeconds, c.MinDelaySeconds)
	}

	files := []struct {
		field string
		value string
	}{
		{"counterFile", c.CounterFile},
		{"configMarker", c.ConfigMarker},
		{"systemMarker", c.SystemMarker},
	}
	for _, f := range files {
		if f.value == "" {
			return invalid(f.field, f.value, "%s must not be empty", f.field)
		}
		if filepath.IsAbs(f.value) {
			return invalid(f.field, f.value, "%s must be relative to the repository: %s", f.field, f.value)
		}
	}

	if strings.TrimSpace(c.TaskName) == "" {
		return invalid("taskName", c.TaskName, "task name must not be empty")
	}
	if strings.TrimSpace(c.FallbackName) == "" || strings.TrimSpace(c.FallbackEmail) == "" {
		return invalid("fallbackIdentity", c.FallbackName+" <"+c.FallbackEmail+">", "fallback name and email must both be set")
	}

	if len(c.Messages) == 0 {
		return invalid("messages", c.Messages, "commit message pool must not be empty")
	}
	for i, m := range c.Messages {
		if strings.TrimSpace(m) == "" {
			return invalid("messages", i, "commit message %d is empty", i)
		}
	}

	return nil
}

func invalid(field string, value interface{}, format string, args ...interface{}) error {
	return errors.NewConfigError(field, value, errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf(format, args...)))
}

// fileConfig is the YAML file layout. Pointers distinguish absent keys from
// zero values.
type fileConfig struct {
	CounterFile     *string  `yaml:"counter_file"`
	ConfigMarker    *string  `yaml:"config_marker"`
	SystemMarker    *string  `yaml:"system_marker"`
	MinCommits      *int     `yaml:"min_commits"`
	MaxCommits      *int     `yaml:"max_commits"`
	MinDelaySeconds *int     `yaml:"min_delay"`
	MaxDelaySeconds *int     `yaml:"max_delay"`
	TaskName        *string  `yaml:"task_name"`
	Remote          *string  `yaml:"remote"`
	AllowEmpty      *bool    `yaml:"allow_empty"`
	NoSchedule      *bool    `yaml:"no_schedule"`
	Messages        []string `yaml:"messages"`
	Fallback        struct {
		Name  *string `yaml:"name"`
		Email *string `yaml:"email"`
	} `yaml:"fallback_identity"`
}

// loadFile applies the YAML config file. A missing default file is not an
// error; a missing file named with -config is.
func (c *Config) loadFile() error {
	path := c.ConfigFile
	required := path != ""
	if !required {
		path = filepath.Join(c.RepoPath, constants.DefaultConfigFile)
	} else if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err == nil {
			path = abs
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return errors.NewConfigError("configFile", path, errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to read config file: %v", err)))
	}
	c.ConfigFile = path

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && err != io.EOF {
		return errors.NewConfigError("configFile", path, errors.Wrap(errors.ErrInvalidConfiguration, fmt.Sprintf("failed to parse config file: %v", err)))
	}

	c.applyString("counter-file", &c.CounterFile, fc.CounterFile)
	c.applyString("config-marker", &c.ConfigMarker, fc.ConfigMarker)
	c.applyString("system-marker", &c.SystemMarker, fc.SystemMarker)
	c.applyInt("min-commits", &c.MinCommits, fc.MinCommits)
	c.applyInt("max-commits", &c.MaxCommits, fc.MaxCommits)
	c.applyInt("min-delay", &c.MinDelaySeconds, fc.MinDelaySeconds)
	c.applyInt("max-delay", &c.MaxDelaySeconds, fc.MaxDelaySeconds)
	c.applyString("task-name", &c.TaskName, fc.TaskName)
	c.applyString("remote", &c.Remote, fc.Remote)
	c.applyString("fallback-name", &c.FallbackName, fc.Fallback.Name)
	c.applyString("fallback-email", &c.FallbackEmail, fc.Fallback.Email)
	c.applyBool("allow-empty", &c.AllowEmpty, fc.AllowEmpty)
	c.applyBool("no-schedule", &c.NoSchedule, fc.NoSchedule)
	if len(fc.Messages) > 0 {
		c.Messages = fc.Messages
	}

	return nil
}

func (c *Config) applyString(name string, dst *string, v *string) {
	if v != nil && !c.explicit[name] {
		*dst = *v
	}
}

func (c *Config) applyInt(name string, dst *int, v *int) {
	if v != nil && !c.explicit[name] {
		*dst = *v
	}
}

func (c *Config) applyBool(name string, dst *bool, v *bool) {
	if v != nil && !c.explicit[name] {
		*dst = *v
	}
}

func (c *Config) markExplicit(name string) {
	if c.explicit == nil {
		c.explicit = make(map[string]bool)
	}
	c.explicit[name] = true
}

// defaultLogFile follows the XDG Base Directory Specification, with one log
// per repository
func defaultLogFile(repoPath string) string {
	logDir := os.Getenv("XDG_DATA_HOME")
	if logDir == "" {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			logDir = filepath.Join(homeDir, ".local", "share")
		} else {
			logDir = os.TempDir()
		}
	}

	repoHash := fmt.Sprintf("%x", sha256OfString(repoPath)[:8])
	return filepath.Join(logDir, constants.AppName, "logs", fmt.Sprintf("%s-%s.log", constants.AppName, repoHash))
}

// envString returns COMMITPULSE_<key> or a default value
func (c *Config) envString(name, key, defaultValue string) string {
	if value, exists := os.LookupEnv(EnvPrefix + key); exists {
		c.markExplicit(name)
		return value
	}
	return defaultValue
}

// envInt returns COMMITPULSE_<key> as int or a default value
func (c *Config) envInt(name, key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(EnvPrefix + key); exists {
		if value, err := strconv.Atoi(strings.TrimSpace(valueStr)); err == nil {
			c.markExplicit(name)
			return value
		}
	}
	return defaultValue
}

// envBool returns COMMITPULSE_<key> as bool or a default value
func (c *Config) envBool(name, key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(EnvPrefix + key); exists {
		valueLower := strings.ToLower(valueStr)
		if valueLower == "true" || valueLower == "1" || valueLower == "yes" {
			c.markExplicit(name)
			return true
		}
		if valueLower == "false" || valueLower == "0" || valueLower == "no" {
			c.markExplicit(name)
			return false
		}
		// For any other value, fall back to default
	}
	return defaultValue
}

// sha256OfString returns the SHA256 hash of a string
func sha256OfString(input string) []byte {
	hash := sha256.Sum256([]byte(input))
	return hash[:]
}
