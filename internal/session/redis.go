package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "session:"

// RedisStore keeps sessions in Redis so that answers survive restarts and
// can be shared across server instances. Expiry is delegated to Redis key
// TTLs.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisOptions configures the Redis-backed session store.
type RedisOptions struct {
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, opts RedisOptions) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Address,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &RedisStore{client: client, ttl: opts.TTL}, nil
}

// Init creates the session if it does not exist, or updates the nickname
// when one is supplied for an existing session.
func (s *RedisStore) Init(ctx context.Context, id, nickname string) (*Session, error) {
	sess, err := s.load(ctx, id)
	if errors.Is(err, ErrNotFound) {
		sess = &Session{ID: id, Nickname: nickname}
	} else if err != nil {
		return nil, err
	} else if nickname != "" {
		sess.Nickname = nickname
	}

	sess.UpdatedAt = time.Now()
	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Put records an answer, replacing any earlier answer for the same question.
func (s *RedisStore) Put(ctx context.Context, id string, answer Answer) error {
	sess, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	sess.Answers = upsertAnswer(sess.Answers, answer)
	sess.UpdatedAt = time.Now()
	return s.save(ctx, sess)
}

// Get returns the session or ErrNotFound.
func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	return s.load(ctx, id)
}

// Answers returns the recorded answers for a session, or an empty slice for
// an unknown session.
func (s *RedisStore) Answers(ctx context.Context, id string) ([]Answer, error) {
	sess, err := s.load(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return []Answer{}, nil
	}
	if err != nil {
		return nil, err
	}
	return sess.Answers, nil
}

// Delete removes a session.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// Close closes the underlying Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) load(ctx context.Context, id string) (*Session, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshaling session: %w", err)
	}
	if sess.Answers == nil {
		sess.Answers = []Answer{}
	}
	return &sess, nil
}

func (s *RedisStore) save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+sess.ID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}
