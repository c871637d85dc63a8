// Package logging provides the leveled console logger shared by all
// commands, backed by zerolog, with an optional JSON file sink.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/backmassage/reviewtool/internal/config"
	"github.com/backmassage/reviewtool/internal/term"
)

const timeFormat = "2006-01-02 15:04:05"

// Logger provides leveled, optionally colored logging. Info, Success, Warn
// and Debug go to stdout, Error to stderr; every record is also appended
// as JSON to the log file when one is configured. Safe for concurrent use.
type Logger struct {
	zl      zerolog.Logger
	verbose bool
	file    *os.File // owned by the root logger only
}

// NewLogger configures colors from cfg and optionally opens cfg.LogFile.
// Call Close() when done if LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)

	var file *os.File
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		file = f
	}

	l := build(os.Stdout, os.Stderr, file, cfg.Verbose)
	l.file = file
	return l, nil
}

// New returns a logger writing to the given console streams without a
// file sink. Colors follow the current [term] mode.
func New(stdout, stderr io.Writer, verbose bool) *Logger {
	return build(stdout, stderr, nil, verbose)
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func build(stdout, stderr io.Writer, file io.Writer, verbose bool) *Logger {
	var w io.Writer = splitWriter{
		out: consoleWriter(stdout),
		err: consoleWriter(stderr),
	}
	if file != nil {
		w = zerolog.MultiLevelWriter(w, file)
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zl := zerolog.New(zerolog.SyncWriter(w)).Level(level).With().Timestamp().Logger()
	return &Logger{zl: zl, verbose: verbose}
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:         out,
		NoColor:     !term.Enabled(),
		TimeFormat:  timeFormat,
		FormatLevel: formatLevel,
		PartsOrder: []string{
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			zerolog.MessageFieldName,
		},
	}
}

// formatLevel renders "[INFO]", "[SUCCESS]", ... in the level's color.
func formatLevel(i interface{}) string {
	name, _ := i.(string)
	label := "[" + strings.ToUpper(name) + "]"
	switch name {
	case "info":
		return term.Blue.Sprint(label)
	case levelSuccess:
		return term.Green.Sprint(label)
	case "warn":
		return term.Yellow.Sprint(label)
	case "error", "fatal", "panic":
		return term.Red.Sprint(label)
	case "debug":
		return term.Cyan.Sprint(label)
	}
	return label
}

// splitWriter sends error records to err and everything else to out.
type splitWriter struct {
	out io.Writer
	err io.Writer
}

func (w splitWriter) Write(p []byte) (int, error) { return w.out.Write(p) }

func (w splitWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level >= zerolog.ErrorLevel && level <= zerolog.PanicLevel {
		return w.err.Write(p)
	}
	return w.out.Write(p)
}

const levelSuccess = "success"

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// With returns a child logger that adds key=value to every record.
func (l *Logger) With(key string, value interface{}) *Logger {
	return &Logger{
		zl:      l.zl.With().Interface(key, value).Logger(),
		verbose: l.verbose,
	}
}

// Verbose reports whether debug records are emitted.
func (l *Logger) Verbose() bool { return l.verbose }

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.zl.Info().Msg(fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.zl.Log().Str(zerolog.LevelFieldName, levelSuccess).Msg(fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.zl.Warn().Msg(fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red), to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.zl.Error().Msg(fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when verbose.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.zl.Debug().Msg(fmt.Sprintf(format, args...))
}
