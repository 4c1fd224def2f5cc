package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger provides component-scoped logging for the shell.
// All components of one process write to a single session file in
// <user config dir>/LLMMixer/logs/.
type Logger struct {
	sessionID string
	component string
	file      *os.File
	out       io.Writer
	base      *zap.Logger
	sugared   *zap.SugaredLogger
	logPath   string
	closeOnce sync.Once
}

var (
	// Global session ID for the current execution
	sessionID     string
	sessionIDOnce sync.Once

	// level is shared by every logger of the process
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	dirMu    sync.Mutex
	logDir   string
	fallback io.Writer = os.Stderr
)

func getSessionID() string {
	sessionIDOnce.Do(func() {
		sessionID = uuid.New().String()
	})
	return sessionID
}

// SetDirectory overrides where log files are written. It must be called
// before the first NewLogger to take effect for that logger.
func SetDirectory(dir string) {
	dirMu.Lock()
	defer dirMu.Unlock()
	logDir = dir
}

// GetLogDirectory returns the directory where logs are stored, creating it
// if needed.
func GetLogDirectory() (string, error) {
	dirMu.Lock()
	defer dirMu.Unlock()

	if logDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user config directory: %w", err)
		}
		logDir = filepath.Join(base, "LLMMixer", "logs")
	}
	if err := os.MkdirAll(logDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}
	return logDir, nil
}

// SetLevel changes the minimum level for all loggers. Accepts debug, info,
// warn and error; anything else is rejected.
func SetLevel(name string) error {
	var l zapcore.Level
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		l = zapcore.DebugLevel
	case "info", "":
		l = zapcore.InfoLevel
	case "warn", "warning":
		l = zapcore.WarnLevel
	case "error":
		l = zapcore.ErrorLevel
	default:
		return fmt.Errorf("unknown log level %q", name)
	}
	level.SetLevel(l)
	return nil
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

func newZap(w io.Writer, component string) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core).Named(component)
}

// NewLogger creates a new logger for a specific component.
// The logger writes to <log dir>/<session-id>-llmmixer.log.
//
// If the log directory cannot be created or the log file cannot be opened,
// it returns a fallback logger along with the error. The fallback writes to
// stderr unless SetFallbackOutput chose another destination.
func NewLogger(component string) (*Logger, error) {
	dir, err := GetLogDirectory()
	if err != nil {
		return newFallbackLogger(component, err), err
	}

	sessID := getSessionID()
	logPath := filepath.Join(dir, fmt.Sprintf("%s-llmmixer.log", sessID))

	// Append mode: every component shares the session file
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		err = fmt.Errorf("failed to open log file: %w", err)
		return newFallbackLogger(component, err), err
	}

	base := newZap(file, component)
	return &Logger{
		sessionID: sessID,
		component: component,
		file:      file,
		base:      base,
		sugared:   base.Sugar(),
		logPath:   logPath,
	}, nil
}

// SetFallbackOutput sets where loggers write when the log file cannot be
// opened. The full-screen shell passes io.Discard so nothing draws over it.
// A nil w restores stderr.
func SetFallbackOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	dirMu.Lock()
	defer dirMu.Unlock()
	fallback = w
}

func newFallbackLogger(component string, err error) *Logger {
	dirMu.Lock()
	w := fallback
	dirMu.Unlock()

	base := newZap(w, component)
	l := &Logger{
		sessionID: getSessionID(),
		component: component,
		out:       w,
		base:      base,
		sugared:   base.Sugar(),
	}
	l.Warnf("failed to initialize file logging: %v", err)
	return l
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	base := zap.NewNop()
	return &Logger{
		sessionID: getSessionID(),
		component: "nop",
		base:      base,
		sugared:   base.Sugar(),
	}
}

// Named returns a logger for a sub-component sharing the same output.
func (l *Logger) Named(component string) *Logger {
	base := l.base.Named(component)
	return &Logger{
		sessionID: l.sessionID,
		component: l.component + "." + component,
		out:       l.out,
		base:      base,
		sugared:   base.Sugar(),
		logPath:   l.logPath,
	}
}

// With returns a logger that attaches a structured field to every entry.
func (l *Logger) With(key string, value interface{}) *Logger {
	base := l.base.With(zap.Any(key, value))
	return &Logger{
		sessionID: l.sessionID,
		component: l.component,
		out:       l.out,
		base:      base,
		sugared:   base.Sugar(),
		logPath:   l.logPath,
	}
}

// Debugf logs a debug-level message
func (l *Logger) Debugf(format string, v ...interface{}) { l.sugared.Debugf(format, v...) }

// Infof logs an info-level message
func (l *Logger) Infof(format string, v ...interface{}) { l.sugared.Infof(format, v...) }

// Warnf logs a warning-level message
func (l *Logger) Warnf(format string, v ...interface{}) { l.sugared.Warnf(format, v...) }

// Errorf logs an error-level message
func (l *Logger) Errorf(format string, v ...interface{}) { l.sugared.Errorf(format, v...) }

// Writer returns an io.Writer that writes to this logger's destination.
func (l *Logger) Writer() io.Writer {
	if l.file != nil {
		return l.file
	}
	if l.out != nil {
		return l.out
	}
	return os.Stderr
}

// SessionID returns the current session ID
func (l *Logger) SessionID() string {
	return l.sessionID
}

// LogPath returns the path to the log file, or "" for stderr and nop loggers.
func (l *Logger) LogPath() string {
	return l.logPath
}

// Close flushes and closes the log file. Safe to call multiple times.
// Loggers derived with Named or With share the file and must not be used
// after the parent is closed.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		_ = l.base.Sync()
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}

// GetSessionID returns the current global session ID
func GetSessionID() string {
	return getSessionID()
}
