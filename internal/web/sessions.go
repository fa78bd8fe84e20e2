package web

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"lheq-stats/internal/grid"
	"lheq-stats/internal/standings"
)

// Session is one visitor's view state: the tournament toggle, the division
// filter and the tables currently shown to them.
type Session struct {
	ID          string
	Coordinator *standings.Coordinator
	Dashboard   *DashboardPresenter
	Listing     *ListingPresenter
	Grids       *grid.Scope

	startOnce sync.Once
	startErr  error
	lastSeen  time.Time
}

// Start performs the initial load once. The load is detached from the
// request so a dropped connection does not fail the session.
func (s *Session) Start(ctx context.Context) error {
	s.startOnce.Do(func() {
		s.startErr = s.Coordinator.Start(context.WithoutCancel(ctx))
	})
	return s.startErr
}

type SessionFactory func(id string) *Session

type Sessions struct {
	mu        sync.Mutex
	items     map[string]*Session
	ttl       time.Duration
	lastSweep time.Time
	factory   SessionFactory
	logger    *logrus.Logger
	now       func() time.Time
}

func NewSessions(ttl time.Duration, factory SessionFactory, logger *logrus.Logger) *Sessions {
	return &Sessions{
		items:   make(map[string]*Session),
		ttl:     ttl,
		factory: factory,
		logger:  logger,
		now:     time.Now,
	}
}

// Get returns the live session for id and refreshes its expiry.
func (s *Sessions) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)
	sess, ok := s.items[id]
	if !ok {
		return nil, false
	}
	sess.lastSeen = now
	return sess, true
}

func (s *Sessions) Create() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)
	sess := s.factory(uuid.NewString())
	sess.lastSeen = now
	s.items[sess.ID] = sess
	s.logger.WithField("session", sess.ID).Debug("Session created")
	return sess
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Sessions) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < s.ttl/2 {
		return
	}
	s.lastSweep = now
	for id, sess := range s.items {
		if now.Sub(sess.lastSeen) < s.ttl {
			continue
		}
		sess.Grids.Close()
		delete(s.items, id)
		s.logger.WithField("session", id).Debug("Session expired")
	}
}
