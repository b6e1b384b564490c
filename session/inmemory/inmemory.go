package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/proposalarchitect/speakerscout/models"
	"github.com/proposalarchitect/speakerscout/session"
)

const sweepInterval = 10 * time.Minute

type entry struct {
	sess      *session.Session
	expiresAt time.Time
}

// Store keeps sessions in process memory. A background sweeper evicts
// expired entries; Get also refuses entries past their deadline so eviction
// lag is never observable.
type Store struct {
	sessions map[string]entry
	ttl      time.Duration
	mu       sync.RWMutex
	done     chan struct{}
	once     sync.Once
}

func New(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]entry),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go s.sweep()
	return s
}

func (s *Store) Create(ctx context.Context) (*session.Session, error) {
	sess := &session.Session{
		ID:            uuid.NewString(),
		Opportunities: []models.Opportunity{},
		Proposals:     []models.Proposal{},
		CreatedAt:     time.Now().UTC(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = entry{sess: sess, expiresAt: time.Now().Add(s.ttl)}
	return sess, nil
}

func (s *Store) Get(ctx context.Context, id string) (*session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[id]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, models.ErrSessionNotFound
	}
	return e.sess, nil
}

// Put stores the session and resets its TTL.
func (s *Store) Put(ctx context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = entry{sess: sess, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *Store) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

func (s *Store) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, e := range s.sessions {
				if now.After(e.expiresAt) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
