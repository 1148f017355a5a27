package notify

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Intent records that a user should be notified about a reminder.
// Delivery itself is out of scope; intents go to the log.
type Intent struct {
	UserID      string
	Description string
}

// Sink receives notification intents. Publishing must never block or fail the
// caller; a sink observes its own problems via telemetry only.
type Sink interface {
	Publish(intent Intent)
}

// LogSink writes intents to the application log from a background consumer.
// Publish is non-blocking; intents that do not fit the buffer, or arrive
// after Close, are dropped and counted in the log.
type LogSink struct {
	log  *logrus.Logger
	ch   chan Intent
	done chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewLogSink starts a log-backed sink with the given buffer size.
func NewLogSink(log *logrus.Logger, buffer int) *LogSink {
	s := &LogSink{
		log:  log,
		ch:   make(chan Intent, buffer),
		done: make(chan struct{}),
	}
	go s.consume()
	return s
}

func (s *LogSink) Publish(intent Intent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		s.log.WithField("user_id", intent.UserID).Warn("notification sink closed, intent dropped")
		return
	}
	select {
	case s.ch <- intent:
	default:
		s.log.WithField("user_id", intent.UserID).Warn("notification buffer full, intent dropped")
	}
}

func (s *LogSink) consume() {
	defer close(s.done)
	for intent := range s.ch {
		s.log.Infof("Sending reminder notification for user %s: %s", intent.UserID, intent.Description)
	}
}

// Close drains pending intents and stops the consumer. Later Publish calls
// are dropped, not panics.
func (s *LogSink) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.ch)
	s.mu.Unlock()
	<-s.done
}
