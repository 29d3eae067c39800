// Package notify implements the in-process notification center. It replaces
// the original lazily-created on-screen container with an explicitly
// constructed object owning its notification lifecycle.
package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Severity categorizes a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// DefaultDuration returns how long a notification of the severity stays
// visible when the caller does not choose a duration.
func DefaultDuration(severity Severity) time.Duration {
	switch severity {
	case SeverityError:
		return 5 * time.Second
	case SeverityWarning:
		return 4 * time.Second
	default:
		return 3 * time.Second
	}
}

// Notification is a transient message. Duration <= 0 means it persists
// until dismissed.
type Notification struct {
	ID        int64
	Message   string
	Severity  Severity
	Duration  time.Duration
	CreatedAt time.Time
}

// Sink observes notifications as they are shown and dismissed.
type Sink interface {
	Shown(n Notification)
	Dismissed(n Notification)
}

type entry struct {
	notification Notification
	timer        *time.Timer
}

// Center holds the active notifications. Each auto-expiring notification
// owns its timer handle; manual dismissal stops the timer so an expired
// handle never fires against a reused slot.
type Center struct {
	mu     sync.Mutex
	logger *zap.Logger
	sink   Sink
	nextID int64
	active map[int64]*entry
}

// NewCenter constructs an empty center. sink may be nil.
func NewCenter(logger *zap.Logger, sink Sink) *Center {
	return &Center{
		logger: logger,
		sink:   sink,
		nextID: 1,
		active: make(map[int64]*entry),
	}
}

// Success shows a success notification with the default duration.
func (c *Center) Success(message string) int64 {
	return c.Show(message, SeveritySuccess, DefaultDuration(SeveritySuccess))
}

// Error shows an error notification with the default duration.
func (c *Center) Error(message string) int64 {
	return c.Show(message, SeverityError, DefaultDuration(SeverityError))
}

// Warning shows a warning notification with the default duration.
func (c *Center) Warning(message string) int64 {
	return c.Show(message, SeverityWarning, DefaultDuration(SeverityWarning))
}

// Info shows an info notification with the default duration.
func (c *Center) Info(message string) int64 {
	return c.Show(message, SeverityInfo, DefaultDuration(SeverityInfo))
}

// Show displays a notification and returns its id. A positive duration
// schedules auto-dismissal; zero or negative keeps it until Dismiss/Clear.
func (c *Center) Show(message string, severity Severity, duration time.Duration) int64 {
	c.mu.Lock()
	id := c.nextID
	c.nextID++

	n := Notification{
		ID:        id,
		Message:   message,
		Severity:  severity,
		Duration:  duration,
		CreatedAt: time.Now(),
	}
	e := &entry{notification: n}
	if duration > 0 {
		e.timer = time.AfterFunc(duration, func() {
			c.Dismiss(id)
		})
	}
	c.active[id] = e
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Info("notification shown",
			zap.Int64("id", id),
			zap.String("severity", string(severity)),
			zap.String("message", message))
	}
	if c.sink != nil {
		c.sink.Shown(n)
	}
	return id
}

// Dismiss removes a notification. Timer expiry and manual dismissal share
// this path; whichever runs first wins and the other becomes a no-op.
func (c *Center) Dismiss(id int64) bool {
	c.mu.Lock()
	e, ok := c.active[id]
	if !ok {
		c.mu.Unlock()
		return false
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	delete(c.active, id)
	c.mu.Unlock()

	if c.sink != nil {
		c.sink.Dismissed(e.notification)
	}
	return true
}

// Clear removes all notifications immediately, bypassing per-item expiry.
func (c *Center) Clear() {
	c.mu.Lock()
	entries := make([]*entry, 0, len(c.active))
	for id, e := range c.active {
		if e.timer != nil {
			e.timer.Stop()
		}
		delete(c.active, id)
		entries = append(entries, e)
	}
	c.mu.Unlock()

	if c.sink != nil {
		for _, e := range entries {
			c.sink.Dismissed(e.notification)
		}
	}
}

// Active returns a snapshot of currently displayed notifications.
// Ordering is not guaranteed.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, 0, len(c.active))
	for _, e := range c.active {
		out = append(out, e.notification)
	}
	return out
}

// Close tears the center down, releasing all timer handles.
func (c *Center) Close() {
	c.Clear()
}
