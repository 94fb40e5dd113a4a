package telemetry

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pthm-cable/wildloop/events"
)

// LatestLogName is the file every run writes its event lines to.
const LatestLogName = "latest.log"

// EventLog writes one line per event to <dir>/latest.log and archives a copy on Close.
// Write is meant to be subscribed to a world's event bus.
type EventLog struct {
	dir     string
	worldID string
	f       *os.File
	w       *bufio.Writer
	err     error
	archive string
	now     func() time.Time
}

// OpenEventLog truncates <dir>/latest.log and starts a log for the given world.
func OpenEventLog(dir, worldID string) (*EventLog, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, LatestLogName))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", LatestLogName, err)
	}
	return &EventLog{
		dir:     dir,
		worldID: worldID,
		f:       f,
		w:       bufio.NewWriter(f),
		now:     time.Now,
	}, nil
}

// Write appends the event's line and flushes it. The first write error is kept
// and reported once; later events are dropped.
func (l *EventLog) Write(e events.Event) {
	if l == nil || l.w == nil || l.err != nil {
		return
	}
	if _, err := l.w.WriteString(e.String() + "\n"); err != nil {
		l.fail(err)
		return
	}
	if err := l.w.Flush(); err != nil {
		l.fail(err)
	}
}

func (l *EventLog) fail(err error) {
	l.err = err
	slog.Warn("event log write failed", "dir", l.dir, "error", err)
}

// Err returns the first write error, if any.
func (l *EventLog) Err() error {
	if l == nil {
		return nil
	}
	return l.err
}

// ArchivePath returns the archived copy's path once Close has run.
func (l *EventLog) ArchivePath() string {
	if l == nil {
		return ""
	}
	return l.archive
}

// Close closes latest.log and copies it to <yyyyMMdd>T<HHmmss>_world<id>.log.
func (l *EventLog) Close() error {
	if l == nil || l.f == nil {
		return nil
	}
	flushErr := l.w.Flush()
	closeErr := l.f.Close()
	l.f, l.w = nil, nil
	if flushErr != nil {
		return fmt.Errorf("flushing event log: %w", flushErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing event log: %w", closeErr)
	}

	name := l.now().Format("20060102T150405") + "_world" + l.worldID + ".log"
	dst := filepath.Join(l.dir, name)
	if err := copyFile(filepath.Join(l.dir, LatestLogName), dst); err != nil {
		return fmt.Errorf("archiving event log: %w", err)
	}
	l.archive = dst
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
