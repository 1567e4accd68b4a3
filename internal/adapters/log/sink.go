package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const (
	dirLayout  = "2006-01-02"
	fileLayout = "2006-01-02_15-04-05"

	// lineTimeFormat matches the timestamp written at the head of every log line.
	lineTimeFormat = "2006-01-02 15:04:05"
)

// Sink is the append-only log file for one run. It is created once and never
// rotated; every line is written through as soon as it is logged.
type Sink struct {
	file *os.File
	path string
}

// SinkPath returns the file a run started at now would log to:
// <root>/logs_YYYY-MM-DD/log_YYYY-MM-DD_HH-MM-SS.log.
func SinkPath(root string, now time.Time) string {
	dir := filepath.Join(root, "logs_"+now.Format(dirLayout))
	return filepath.Join(dir, "log_"+now.Format(fileLayout)+".log")
}

// OpenSink creates the dated directory under root and opens the run's log file
// for appending.
func OpenSink(root string, now time.Time) (*Sink, error) {
	path := SinkPath(root, now)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &Sink{file: f, path: path}, nil
}

// Path returns the log file path.
func (s *Sink) Path() string {
	return s.path
}

// Write appends p to the log file.
func (s *Sink) Write(p []byte) (int, error) {
	return s.file.Write(p)
}

// Close flushes and closes the log file.
func (s *Sink) Close() error {
	if err := s.file.Sync(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}

// NewLogger builds the run logger. Lines go to the sink without color and,
// when console is non-nil, are mirrored there for the operator.
func NewLogger(sink io.Writer, console io.Writer, runID string) zerolog.Logger {
	writers := []io.Writer{
		zerolog.ConsoleWriter{Out: sink, NoColor: true, TimeFormat: lineTimeFormat},
	}
	if console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339})
	}
	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(zerolog.InfoLevel).With().Timestamp()
	if runID != "" {
		ctx = ctx.Str("run_id", runID)
	}
	return ctx.Logger()
}
