package common

// Logger is the logging contract every commitpulse component receives.
//
// Info, Warning and Error feed the debug stream. The remaining methods print
// a console line; all of them except StatusMessage also record it.
type Logger interface {
	Info(format string, args ...interface{})
	Warning(format string, args ...interface{})
	Error(format string, args ...interface{})

	// InfoToUser reports progress, such as the number of commits planned
	InfoToUser(format string, args ...interface{})

	// WarningToUser reports a failure the run survives, such as a rejected push
	WarningToUser(format string, args ...interface{})

	// Success reports a completed commit, push or registration
	Success(format string, args ...interface{})

	// StatusMessage prints an unprefixed line, used for summaries
	StatusMessage(format string, args ...interface{})
}
