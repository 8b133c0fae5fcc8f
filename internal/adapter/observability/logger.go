package observability

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mwestbrook/genstudio/internal/genai"
)

// LogLevel defines the logging verbosity level.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelError
)

// ParseLogLevel maps a config string to a level, defaulting to info.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug":
		return LogLevelDebug
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// LogFormat defines the output format for logs.
type LogFormat int

const (
	LogFormatHuman LogFormat = iota
	LogFormatJSON
)

// ParseLogFormat maps a config string to a format, defaulting to human.
func ParseLogFormat(s string) LogFormat {
	if s == "json" {
		return LogFormatJSON
	}
	return LogFormatHuman
}

// CallLogger writes structured records for model call attempts. All writes
// go through one mutex, so a single logger may be shared by concurrent
// calls.
type CallLogger struct {
	mu     sync.Mutex
	out    io.Writer
	level  LogLevel
	format LogFormat
}

// NewCallLogger creates a logger writing to out. A nil writer defaults to
// stderr.
func NewCallLogger(out io.Writer, level LogLevel, format LogFormat) *CallLogger {
	if out == nil {
		out = os.Stderr
	}
	return &CallLogger{out: out, level: level, format: format}
}

// LogAttempt records one envelope attempt, success or failure.
func (l *CallLogger) LogAttempt(obs genai.Observation) {
	failed := obs.Err != nil
	if failed {
		if l.level > LogLevelError {
			return
		}
	} else if l.level > LogLevelInfo {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.format == LogFormatJSON {
		errText := ""
		if obs.Err != nil {
			errText = obs.Err.Error()
		}
		fmt.Fprintf(l.out,
			`{"level":%q,"type":"attempt","model":%q,"task":%q,"attempt":%d,"timestamp":%q,"elapsed_ms":%d,"outcome":%q,"error":%q}`+"\n",
			levelName(failed), obs.Model, obs.Task, obs.Attempt,
			obs.Started.Format(time.RFC3339), obs.Elapsed.Milliseconds(), obs.Outcome, errText)
		return
	}

	if failed {
		fmt.Fprintf(l.out, "[ERROR] %s/%s: attempt %d %s after %.1fs: %v\n",
			obs.Model, obs.Task, obs.Attempt, obs.Outcome, obs.Elapsed.Seconds(), obs.Err)
		return
	}
	fmt.Fprintf(l.out, "[INFO] %s/%s: attempt %d succeeded in %.1fs\n",
		obs.Model, obs.Task, obs.Attempt, obs.Elapsed.Seconds())
}

// LogInfo writes a free-form informational line.
func (l *CallLogger) LogInfo(message string) {
	if l.level > LogLevelInfo {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.format == LogFormatJSON {
		fmt.Fprintf(l.out, `{"level":"info","message":%q}`+"\n", message)
		return
	}
	fmt.Fprintf(l.out, "[INFO] %s\n", message)
}

// LogWarning writes a warning line. Warnings are emitted at every level so a
// dropped record is never silent.
func (l *CallLogger) LogWarning(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.format == LogFormatJSON {
		fmt.Fprintf(l.out, `{"level":"warning","message":%q}`+"\n", message)
		return
	}
	fmt.Fprintf(l.out, "[WARN] %s\n", message)
}

func levelName(failed bool) string {
	if failed {
		return "error"
	}
	return "info"
}

// RedactAPIKey shows only the last 4 characters of an API key.
func RedactAPIKey(key string) string {
	if len(key) <= 4 {
		return "[REDACTED]"
	}
	return fmt.Sprintf("[REDACTED-%s]", key[len(key)-4:])
}

// MaxLoggedTextLength caps how much model output makes it into a log line.
const MaxLoggedTextLength = 200

// TruncateForLogging caps response text for log lines, keeping enough for
// debugging without shipping whole responses to log aggregators.
func TruncateForLogging(text string) string {
	if len(text) <= MaxLoggedTextLength {
		return text
	}
	return text[:MaxLoggedTextLength] + fmt.Sprintf("... [truncated, total length=%d bytes]", len(text))
}
