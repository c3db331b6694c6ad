// Package dasplog provides the small leveled logger used throughout the
// dasp core. It is adapted from the teacher's logging package: the same
// Level enum and string round trip, backed by zap instead of a custom
// net-appender/registry stack, since the core has no network layer to
// forward logs over.
package dasplog

import (
	"strings"

	"github.com/pkg/errors"
)

// Level is a logging severity, ordered DEBUG < INFO < WARN < ERROR.
type Level int

const (
	// DEBUG is for verbose, per-iteration diagnostics (edge connectivity
	// ranges, blue-noise convergence).
	DEBUG Level = iota
	// INFO is for once-per-run milestones.
	INFO
	// WARN is for recoverable anomalies (isolated cluster regularization).
	WARN
	// ERROR is for failures the caller must react to.
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "Debug"
	case INFO:
		return "Info"
	case WARN:
		return "Warn"
	case ERROR:
		return "Error"
	default:
		return "Unknown"
	}
}

// LevelFromString parses a level name case-insensitively; "warning" is
// accepted as an alias for WARN.
func LevelFromString(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return DEBUG, nil
	case "info":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "error":
		return ERROR, nil
	default:
		return 0, errors.Errorf("unknown log level %q", s)
	}
}
