// Package notify buffers user-facing notifications for an edit session.
package notify

import (
	"sync"

	"go.uber.org/zap"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is one message for the user, already translated.
type Notification struct {
	Level   Level  `json:"level"`
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}

// Notifier receives localized messages.
type Notifier interface {
	Success(content string)
	Warning(content string)
	Error(title, content string)
}

// Recorder keeps notifications until they are drained by the API.
type Recorder struct {
	mu      sync.Mutex
	entries []Notification
	logger  *zap.Logger
}

func NewRecorder(logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{logger: logger}
}

func (r *Recorder) Success(content string) {
	r.add(Notification{Level: LevelSuccess, Content: content})
}

func (r *Recorder) Warning(content string) {
	r.logger.Warn("notification", zap.String("content", content))
	r.add(Notification{Level: LevelWarning, Content: content})
}

func (r *Recorder) Error(title, content string) {
	r.logger.Info("error notification", zap.String("title", title), zap.String("content", content))
	r.add(Notification{Level: LevelError, Title: title, Content: content})
}

// Drain returns and clears the buffered notifications.
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.entries
	r.entries = nil
	return out
}

func (r *Recorder) add(n Notification) {
	r.mu.Lock()
	r.entries = append(r.entries, n)
	r.mu.Unlock()
}
