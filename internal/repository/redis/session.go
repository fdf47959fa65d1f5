package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"advisor/internal/domain/session"
	"advisor/pkg/errors"
)

// SessionRepository implements session.Repository using Redis.
// Sessions are stored without expiry; lifecycle matches the memory backend.
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed session repository
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{
		client: client,
	}
}

// Create stores a new session under its ID
func (r *SessionRepository) Create(ctx context.Context, sess *session.Session) error {
	return r.save(ctx, sess)
}

// Get retrieves a session by ID
func (r *SessionRepository) Get(ctx context.Context, id string) (*session.Session, error) {
	data, err := r.client.Get(ctx, r.key(id)).Result()
	if err == redis.Nil {
		return nil, errors.Wrapf(errors.ErrSessionNotFound, "session_id=%s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get session from redis: session_id=%s", id)
	}

	var sess session.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal session: session_id=%s", id)
	}

	return &sess, nil
}

// Update replaces the stored session state
func (r *SessionRepository) Update(ctx context.Context, sess *session.Session) error {
	exists, err := r.client.Exists(ctx, r.key(sess.ID)).Result()
	if err != nil {
		return errors.Wrapf(err, "failed to check session existence: session_id=%s", sess.ID)
	}
	if exists == 0 {
		return errors.Wrapf(errors.ErrSessionNotFound, "session_id=%s", sess.ID)
	}

	return r.save(ctx, sess)
}

func (r *SessionRepository) save(ctx context.Context, sess *session.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal session: session_id=%s", sess.ID)
	}

	if err := r.client.Set(ctx, r.key(sess.ID), data, 0).Err(); err != nil {
		return errors.Wrapf(err, "failed to save session to redis: session_id=%s", sess.ID)
	}

	return nil
}

func (r *SessionRepository) key(id string) string {
	return fmt.Sprintf("planning_session:%s", id)
}
