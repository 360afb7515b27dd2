// Package logging provides the leveled diagnostic logger used across the
// decode pipeline. It mirrors the original tool's debug-level gated printf
// calls (ALWAYS/MINIMAL/VERBOSE/VERYVERBOSE) as a small wrapper around the
// standard log package instead of a global mutable debug int.
package logging

import (
	"log"
	"os"
)

// Level selects how much diagnostic detail is emitted.
type Level int

const (
	Always Level = iota
	Minimal
	Verbose
	VeryVerbose
)

// Logger gates messages by level, same shape as the original logger(level, fmt, ...).
type Logger struct {
	level  Level
	target string
	*log.Logger
}

// New returns a Logger that only emits messages at or below level.
// target labels the source being decoded (stream file, track, ...), mirroring
// curFile in the original tool's error/logger output.
func New(level Level, target string) *Logger {
	return &Logger{
		level:  level,
		target: target,
		Logger: log.New(os.Stderr, "", log.LstdFlags),
	}
}

// WithTarget returns a copy of l scoped to a different target label, used when
// moving to a new stream file or track without touching the verbosity level.
func (l *Logger) WithTarget(target string) *Logger {
	cp := *l
	cp.target = target
	return &cp
}

// Log emits msg (and args, in Printf style) if level is enabled.
func (l *Logger) Log(level Level, format string, args ...any) {
	if l == nil || level > l.level {
		return
	}
	l.Printf(l.target+" - "+format, args...)
}

func (l *Logger) Minimal(format string, args ...any)     { l.Log(Minimal, format, args...) }
func (l *Logger) Verbose(format string, args ...any)     { l.Log(Verbose, format, args...) }
func (l *Logger) VeryVerbose(format string, args ...any) { l.Log(VeryVerbose, format, args...) }

// Errorf mirrors error(fmt, ...): always reported, never fatal here (the
// caller decides whether to abort, unlike the original's hard exit(1)).
func (l *Logger) Errorf(format string, args ...any) {
	l.Log(Always, format, args...)
}
