package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	DefaultSessionTTL = time.Hour
	sessionKeyPrefix  = "coachdesk-wizard||"
)

var ErrSessionNotFound = errors.New("wizard session not found")

// Session is the stored snapshot of an open wizard.
type Session struct {
	ID        string          `json:"id"`
	Kind      Kind            `json:"kind"`
	AthleteID string          `json:"athleteId"`
	Step      int             `json:"step"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// SessionStore keeps open wizard sessions in redis; they expire after ttl of inactivity.
type SessionStore struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewSessionStore(redisClient *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

func (s *SessionStore) Save(ctx context.Context, session *Session) error {
	sessionJson, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.redisClient.Set(ctx, sessionKeyPrefix+session.ID, string(sessionJson), s.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", session.ID, err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*Session, error) {
	sessionJson, err := s.redisClient.Get(ctx, sessionKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}

	session := &Session{}
	if err := json.Unmarshal([]byte(sessionJson), session); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	return session, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	deleted, err := s.redisClient.Del(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	if deleted == 0 {
		return ErrSessionNotFound
	}
	return nil
}
