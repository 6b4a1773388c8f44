package api

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alexivanou/weather-widget/internal/service"
	"github.com/alexivanou/weather-widget/internal/stats"
	"github.com/alexivanou/weather-widget/internal/widget"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxReapInterval = time.Minute

var ErrSessionNotFound = errors.New("session not found")

type session struct {
	controller *widget.Controller
	// lastSeen is the time of the last request, in unix nanoseconds.
	lastSeen atomic.Int64
}

func (s *session) touch() {
	s.lastSeen.Store(time.Now().UnixNano())
}

func (s *session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastSeen.Load()))
}

// SessionStore keeps the live widget controllers, keyed by session id.
// Sessions without requests for longer than the idle timeout are closed, as a
// page that navigated away never sends DELETE.
type SessionStore struct {
	svc         service.ServiceInterface
	opts        widget.Options
	idleTimeout time.Duration
	collector   *stats.Collector
	logger      *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*session

	stop       chan struct{}
	stopOnce   sync.Once
	reaperDone chan struct{}
}

// NewSessionStore creates a store whose sessions are built from opts.
// idleTimeout <= 0 disables expiry. collector may be nil.
func NewSessionStore(svc service.ServiceInterface, opts widget.Options, idleTimeout time.Duration, collector *stats.Collector, logger *zap.Logger) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts.OnChange = nil
	if opts.Logger == nil {
		opts.Logger = logger
	}
	s := &SessionStore{
		svc:         svc,
		opts:        opts,
		idleTimeout: idleTimeout,
		collector:   collector,
		logger:      logger,
		sessions:    make(map[string]*session),
		stop:        make(chan struct{}),
		reaperDone:  make(chan struct{}),
	}

	if idleTimeout > 0 {
		go s.reapLoop()
	} else {
		close(s.reaperDone)
	}
	return s
}

// Create starts a new widget session. Its mount-time lookup has been started
// when Create returns.
func (s *SessionStore) Create() (string, *widget.Controller) {
	id := uuid.New().String()
	sess := &session{controller: widget.NewController(s.svc, s.opts)}
	sess.touch()

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	if s.collector != nil {
		s.collector.SessionOpened()
	}
	s.logger.Info("Session created", zap.String("session_id", id))
	return id, sess.controller
}

// Get returns the session's controller and marks the session as active
func (s *SessionStore) Get(id string) (*widget.Controller, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.touch()
	return sess.controller, nil
}

// Delete tears the session down
func (s *SessionStore) Delete(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.closeSession(sess)
	s.logger.Info("Session closed", zap.String("session_id", id))
	return nil
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// CloseAll stops expiry and tears down every session, used on shutdown
func (s *SessionStore) CloseAll() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.reaperDone

	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*session)
	s.mu.Unlock()

	for _, sess := range sessions {
		s.closeSession(sess)
	}
	s.logger.Info("Closed all sessions", zap.Int("count", len(sessions)))
}

func (s *SessionStore) reapLoop() {
	defer close(s.reaperDone)

	interval := s.idleTimeout / 2
	if interval > maxReapInterval {
		interval = maxReapInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.reapIdle(now)
		}
	}
}

// reapIdle closes every session idle for longer than the timeout
func (s *SessionStore) reapIdle(now time.Time) {
	expired := make(map[string]*session)

	s.mu.Lock()
	for id, sess := range s.sessions {
		if sess.idleSince(now) > s.idleTimeout {
			expired[id] = sess
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for id, sess := range expired {
		s.closeSession(sess)
		s.logger.Info("Session expired", zap.String("session_id", id))
	}
}

func (s *SessionStore) closeSession(sess *session) {
	sess.controller.Close()
	if s.collector != nil {
		s.collector.SessionClosed()
	}
}
