package memory

import (
	"context"
	"sync"

	"advisor/internal/domain/session"
	"advisor/pkg/errors"
)

// SessionRepository implements session.Repository with an in-process map.
// Sessions live for the lifetime of the process; there is no eviction.
type SessionRepository struct {
	sessions map[string]*session.Session
	mu       sync.RWMutex
}

// NewSessionRepository creates an empty in-memory session repository
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		sessions: make(map[string]*session.Session),
	}
}

// Create stores a new session under its ID
func (r *SessionRepository) Create(ctx context.Context, sess *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sess.ID] = clone(sess)
	return nil
}

// Get retrieves a session by ID
func (r *SessionRepository) Get(ctx context.Context, id string) (*session.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.sessions[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrSessionNotFound, "session_id=%s", id)
	}
	return clone(sess), nil
}

// Update replaces the stored session state
func (r *SessionRepository) Update(ctx context.Context, sess *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[sess.ID]; !ok {
		return errors.Wrapf(errors.ErrSessionNotFound, "session_id=%s", sess.ID)
	}
	r.sessions[sess.ID] = clone(sess)
	return nil
}

// clone copies the session so callers cannot mutate stored state in place.
func clone(sess *session.Session) *session.Session {
	cp := *sess

	cp.SelectedPlans = append([]string(nil), sess.SelectedPlans...)
	cp.ChatHistory = append([]session.ChatTurn(nil), sess.ChatHistory...)

	cp.PlanSummaries = make(map[string]string, len(sess.PlanSummaries))
	for k, v := range sess.PlanSummaries {
		cp.PlanSummaries[k] = v
	}

	return &cp
}
