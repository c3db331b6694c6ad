package dasplog

import (
	"testing"

	"go.viam.com/test"
)

func TestLevelStrings(t *testing.T) {
	for _, level := range []Level{DEBUG, INFO, WARN, ERROR} {
		serialized := level.String()
		parsed, err := LevelFromString(serialized)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsed, test.ShouldEqual, level)
	}

	parsed, err := LevelFromString("warning")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, parsed, test.ShouldEqual, WARN)
}

func TestLevelFromStringUnknown(t *testing.T) {
	_, err := LevelFromString("not a level")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestLoggerNilSafe(t *testing.T) {
	var l *Logger
	// a nil *Logger must be safe to call, matching the convention that
	// callers may skip logger construction in tests.
	l.Debugw("noop")
	l.Infow("noop")
	l.Warnw("noop")
	l.Errorw("noop")
	test.That(t, l.Sync(), test.ShouldBeNil)
}
