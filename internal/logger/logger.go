// Package logger wraps zerolog for the command-line front end. Report output
// goes to stdout, so logs default to stderr.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ethanolivertroy/dep-check/internal/models"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
}

// Logger is a thin structured logger. A nil *Logger discards everything.
type Logger struct {
	base zerolog.Logger
}

// New creates a configured Logger instance based on Options.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	var output io.Writer = writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.RFC3339
		output = console
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &Logger{base: logger}, nil
}

// WithFields returns a derived logger that always writes the supplied fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{base: l.base.With().Fields(fields).Logger()}
}

// Verdict writes one dependency verdict at debug level. Unsatisfied verdicts
// carry the failure kind and reason.
func (l *Logger) Verdict(v models.Verdict) {
	if l == nil {
		return
	}

	event := l.base.Debug().
		Str("ecosystem", string(v.Ecosystem)).
		Str("dependency", v.Name).
		Str("required", v.Specifier.Raw).
		Str("kind", string(v.Specifier.Kind)).
		Str("installed", v.Installed.VersionOrAbsent()).
		Bool("satisfied", v.Satisfied)
	if !v.Satisfied {
		event = event.Str("failure", string(v.Failure)).Str("reason", v.Reason)
	}
	if v.SourceFile != "" {
		event = event.Str("manifest", v.SourceFile)
	}
	event.Msg("dependency checked")
}

// Summary writes the outcome of a sweep at info level, or warn level when
// anything is unsatisfied.
func (l *Logger) Summary(verdicts []models.Verdict) {
	if l == nil {
		return
	}

	unsatisfied := 0
	for _, v := range verdicts {
		l.Verdict(v)
		if !v.Satisfied {
			unsatisfied++
		}
	}

	event := l.base.Info()
	if unsatisfied > 0 {
		event = l.base.Warn()
	}
	event.Int("checked", len(verdicts)).Int("unsatisfied", unsatisfied).Msg("dependency check complete")
}

// Debug writes a debug-level log entry if enabled.
func (l *Logger) Debug(msg string) {
	if l == nil {
		return
	}
	l.base.Debug().Msg(msg)
}

// Info writes an informational log entry.
func (l *Logger) Info(msg string) {
	if l == nil {
		return
	}
	l.base.Info().Msg(msg)
}

// Warn writes a warning level log entry.
func (l *Logger) Warn(msg string) {
	if l == nil {
		return
	}
	l.base.Warn().Msg(msg)
}

// Error writes an error log entry including the supplied error context.
func (l *Logger) Error(err error, msg string) {
	if l == nil {
		return
	}
	event := l.base.Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}
