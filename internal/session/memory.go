package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Sessions older than the
// configured TTL are dropped by Sweep, which the server runs on a schedule.
type MemoryStore struct {
	mutex    sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewMemoryStore creates an in-memory session store. A zero ttl disables
// expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Init creates the session if it does not exist, or updates the nickname
// when one is supplied for an existing session.
func (s *MemoryStore) Init(ctx context.Context, id, nickname string) (*Session, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{ID: id, Nickname: nickname}
		s.sessions[id] = sess
	} else if nickname != "" {
		sess.Nickname = nickname
	}
	sess.UpdatedAt = time.Now()
	return copySession(sess), nil
}

// Put records an answer, replacing any earlier answer for the same question.
func (s *MemoryStore) Put(ctx context.Context, id string, answer Answer) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	sess.Answers = upsertAnswer(sess.Answers, answer)
	sess.UpdatedAt = time.Now()
	return nil
}

// Get returns the session or ErrNotFound.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copySession(sess), nil
}

// Answers returns the recorded answers for a session, or an empty slice for
// an unknown session.
func (s *MemoryStore) Answers(ctx context.Context, id string) ([]Answer, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return []Answer{}, nil
	}
	answers := make([]Answer, len(sess.Answers))
	copy(answers, sess.Answers)
	return answers, nil
}

// Delete removes a session. Deleting an unknown session is a no-op.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.sessions, id)
	return nil
}

// Sweep removes sessions that have been idle longer than the TTL and
// returns how many were dropped.
func (s *MemoryStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	cutoff := time.Now().Add(-s.ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.sessions)
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}

func copySession(sess *Session) *Session {
	out := *sess
	out.Answers = make([]Answer, len(sess.Answers))
	copy(out.Answers, sess.Answers)
	return &out
}
