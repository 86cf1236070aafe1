// Package notify raises transient user-facing messages, the client-side
// equivalent of a toast.
package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/foster-client-go/pkg/utilities"
)

type Level string

const (
	LevelError   Level = "error"
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
)

// Notification is a single transient message.
type Notification struct {
	ID      int64
	Level   Level
	Message string
	At      time.Time
}

// Notifier shows notifications to the user.
type Notifier interface {
	Notify(n Notification)
}

// New builds a notification stamped with a snowflake id.
func New(level Level, message string) Notification {
	return Notification{ID: utilities.NewSnowflakeID(), Level: level, Message: message, At: time.Now()}
}

// Error is shorthand for New(LevelError, message).
func Error(message string) Notification { return New(LevelError, message) }

// Success is shorthand for New(LevelSuccess, message).
func Success(message string) Notification { return New(LevelSuccess, message) }

// Writer prints notifications as single lines, e.g. to stderr in the CLI.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

func (n *Writer) Notify(note Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "[%s] %s\n", note.Level, note.Message)
}

// Logger forwards notifications to a zap logger before handing them to the
// next notifier, so every toast also leaves a log line.
type Logger struct {
	logger *zap.SugaredLogger
	next   Notifier
}

func NewLogger(logger *zap.SugaredLogger, next Notifier) *Logger {
	return &Logger{logger: logger, next: next}
}

func (l *Logger) Notify(note Notification) {
	if note.Level == LevelError {
		l.logger.Warnw("notification", "id", note.ID, "level", note.Level, "message", note.Message)
	} else {
		l.logger.Debugw("notification", "id", note.ID, "level", note.Level, "message", note.Message)
	}
	if l.next != nil {
		l.next.Notify(note)
	}
}

// Recorder keeps every notification in memory.
type Recorder struct {
	mu    sync.Mutex
	notes []Notification
}

func (r *Recorder) Notify(note Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, note)
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.notes))
	copy(out, r.notes)
	return out
}

// Messages returns the recorded messages in order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.notes))
	for _, n := range r.notes {
		out = append(out, n.Message)
	}
	return out
}

// Discard drops everything.
type Discard struct{}

func (Discard) Notify(Notification) {}
