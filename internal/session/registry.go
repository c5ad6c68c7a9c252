package session

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrSessionExists = errors.New("session with this id already exists")

// Factory builds a session for a resolved identifier. The registry stays
// ignorant of chatter/extractor wiring.
type Factory func(id string) *Session

// Registry is the process-wide mapping from session id to session. It is an
// injectable instance owned by the hosting process, so tests can run
// isolated registries. All state is lost on restart by design.
type Registry struct {
	factory Factory

	mu       sync.RWMutex
	sessions map[string]*Session
	created  int64
}

func NewRegistry(factory Factory) *Registry {
	return &Registry{
		factory:  factory,
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session. An empty id gets a generated uuid-based
// identifier; an explicit id that is already taken is a collision the
// caller must handle.
func (r *Registry) Create(id string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == "" {
		id = "chat_" + uuid.NewString()
	} else if _, taken := r.sessions[id]; taken {
		return nil, ErrSessionExists
	}

	sess := r.factory(id)
	r.sessions[id] = sess
	r.created++
	log.Printf("created session %s (%d active)", id, len(r.sessions))
	return sess, nil
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[id]
	return sess, ok
}

func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// SweepExpired removes every session inactive longer than timeout and
// returns how many were removed. Expiry is re-evaluated while holding the
// registry write lock, so a session renewed by an in-flight operation after
// the scan is not removed.
func (r *Registry) SweepExpired(timeout time.Duration) int {
	r.mu.RLock()
	candidates := make([]string, 0)
	for id, sess := range r.sessions {
		if sess.Expired(timeout) {
			candidates = append(candidates, id)
		}
	}
	r.mu.RUnlock()

	removed := 0
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range candidates {
		sess, ok := r.sessions[id]
		if !ok || !sess.Expired(timeout) {
			continue
		}
		delete(r.sessions, id)
		removed++
		log.Printf("cleaned up expired session %s", id)
	}
	return removed
}

// All returns a snapshot slice of the current sessions, never the live map.
func (r *Registry) All() []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Session, 0, len(r.sessions))
	for _, sess := range r.sessions {
		out = append(out, sess)
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CreatedCount reports how many sessions this registry has created over the
// process lifetime, for health reporting.
func (r *Registry) CreatedCount() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.created
}
