// Package logger writes categorized log lines: colored text for the
// terminal and, optionally, one JSON object per line to a log file.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "INFO"
	}
}

type Entry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Category  string `json:"category"`
	Message   string `json:"message"`
	File      string `json:"file,omitempty"`
	Line      int    `json:"line,omitempty"`
}

type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	file     *os.File
	minLevel Level
	colored  bool
}

// New returns a logger writing to out.  When filePath is non-empty the
// file is opened in append mode and receives JSON entries as well.
func New(out io.Writer, filePath string) (*Logger, error) {
	l := &Logger{out: out, minLevel: INFO, colored: !color.NoColor}
	if filePath != "" {
		if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
			return nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		l.file = f
	}
	return l, nil
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *Logger {
	return &Logger{out: io.Discard, minLevel: ERROR + 1}
}

func (l *Logger) SetLevel(level Level) { l.minLevel = level }

// SetColor toggles ANSI colors on the terminal output.
func (l *Logger) SetColor(on bool) { l.colored = on }

func (l *Logger) log(level Level, category, message string) {
	if level < l.minLevel {
		return
	}
	_, file, line, ok := runtime.Caller(2)
	if ok {
		file = filepath.Base(file)
	}
	entry := Entry{
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Level:     level.String(),
		Category:  strings.ToUpper(category),
		Message:   message,
		File:      file,
		Line:      line,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.out, l.formatTerminal(entry))
	if l.file != nil {
		if b, err := json.Marshal(entry); err == nil {
			_, _ = l.file.Write(append(b, '\n'))
		}
	}
}

func (l *Logger) formatTerminal(e Entry) string {
	ts := e.Timestamp[11:19]
	loc := ""
	if e.File != "" && e.Line > 0 {
		loc = fmt.Sprintf(" (%s:%d)", e.File, e.Line)
	}
	if !l.colored {
		return fmt.Sprintf("%s %-5s [%-8s] %s%s\n", ts, e.Level, e.Category, e.Message, loc)
	}

	var lc *color.Color
	switch e.Level {
	case "DEBUG":
		lc = color.New(color.FgCyan)
	case "WARN":
		lc = color.New(color.FgYellow)
	case "ERROR":
		lc = color.New(color.FgRed)
	default:
		lc = color.New(color.FgGreen)
	}
	lc.EnableColor()
	return fmt.Sprintf("%s %s %s %s%s\n",
		color.New(color.FgBlue).Sprint(ts),
		lc.Sprintf("%-5s", e.Level),
		lc.Add(color.Bold).Sprintf("[%-8s]", e.Category),
		e.Message,
		color.New(color.FgMagenta).Sprint(loc),
	)
}

func (l *Logger) Debug(category, message string) { l.log(DEBUG, category, message) }
func (l *Logger) Info(category, message string)  { l.log(INFO, category, message) }
func (l *Logger) Warn(category, message string)  { l.log(WARN, category, message) }
func (l *Logger) Error(category, message string) { l.log(ERROR, category, message) }

func (l *Logger) Infof(category, format string, args ...any) {
	l.log(INFO, category, fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(category, format string, args ...any) {
	l.log(ERROR, category, fmt.Sprintf(format, args...))
}

// Component helpers.

func (l *Logger) LogAPI(method, path string, status int, d time.Duration) {
	l.log(INFO, "API", fmt.Sprintf("%s %s - %d (%s)", method, path, status, d.Round(time.Microsecond)))
}

func (l *Logger) LogDatabase(operation, table, message string) {
	l.log(INFO, "DATABASE", fmt.Sprintf("[%s] %s - %s", operation, table, message))
}

func (l *Logger) LogBooking(action string, sessionID uint64, row, place uint32, message string) {
	l.log(INFO, "BOOKING", fmt.Sprintf("[%s] session=%d row=%d place=%d - %s", action, sessionID, row, place, message))
}

func (l *Logger) LogQueue(action, queue, message string) {
	l.log(INFO, "QUEUE", fmt.Sprintf("[%s] %s - %s", action, queue, message))
}

func (l *Logger) LogSecurity(event, message string) {
	l.log(WARN, "SECURITY", fmt.Sprintf("[%s] %s", event, message))
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
