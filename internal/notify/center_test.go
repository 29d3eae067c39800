package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingSink struct {
	mu        sync.Mutex
	shown     []Notification
	dismissed []Notification
}

func (s *recordingSink) Shown(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = append(s.shown, n)
}

func (s *recordingSink) Dismissed(n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dismissed = append(s.dismissed, n)
}

func (s *recordingSink) dismissedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.dismissed)
}

func TestDefaultDurations(t *testing.T) {
	assert.Equal(t, 3*time.Second, DefaultDuration(SeveritySuccess))
	assert.Equal(t, 3*time.Second, DefaultDuration(SeverityInfo))
	assert.Equal(t, 4*time.Second, DefaultDuration(SeverityWarning))
	assert.Equal(t, 5*time.Second, DefaultDuration(SeverityError))
}

func TestShowAndDismiss(t *testing.T) {
	sink := &recordingSink{}
	center := NewCenter(zap.NewNop(), sink)
	defer center.Close()

	id := center.Show("saved", SeveritySuccess, 0)
	require.Len(t, center.Active(), 1)
	assert.Equal(t, SeveritySuccess, sink.shown[0].Severity)

	assert.True(t, center.Dismiss(id))
	assert.Empty(t, center.Active())
	assert.Equal(t, 1, sink.dismissedCount())

	// second dismissal is a no-op
	assert.False(t, center.Dismiss(id))
	assert.Equal(t, 1, sink.dismissedCount())
}

func TestSeverityHelpers(t *testing.T) {
	center := NewCenter(zap.NewNop(), nil)
	defer center.Close()

	center.Success("a")
	center.Error("b")
	center.Warning("c")
	center.Info("d")

	active := center.Active()
	require.Len(t, active, 4)
	severities := map[Severity]bool{}
	for _, n := range active {
		severities[n.Severity] = true
	}
	assert.Len(t, severities, 4)
}

func TestAutoExpiry(t *testing.T) {
	sink := &recordingSink{}
	center := NewCenter(zap.NewNop(), sink)
	defer center.Close()

	center.Show("transient", SeverityInfo, 20*time.Millisecond)
	require.Eventually(t, func() bool {
		return len(center.Active()) == 0
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, sink.dismissedCount())
}

func TestManualDismissStopsTimer(t *testing.T) {
	sink := &recordingSink{}
	center := NewCenter(zap.NewNop(), sink)
	defer center.Close()

	id := center.Show("transient", SeverityInfo, 30*time.Millisecond)
	require.True(t, center.Dismiss(id))

	// wait past the original expiry; the stopped timer must not fire again
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, sink.dismissedCount())
}

func TestZeroDurationPersists(t *testing.T) {
	center := NewCenter(zap.NewNop(), nil)
	defer center.Close()

	center.Show("sticky", SeverityError, 0)
	time.Sleep(30 * time.Millisecond)
	assert.Len(t, center.Active(), 1)
}

func TestClear(t *testing.T) {
	sink := &recordingSink{}
	center := NewCenter(zap.NewNop(), sink)

	center.Success("a")
	center.Show("b", SeverityInfo, time.Hour)
	center.Clear()

	assert.Empty(t, center.Active())
	assert.Equal(t, 2, sink.dismissedCount())
}
