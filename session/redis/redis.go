package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/proposalarchitect/speakerscout/models"
	"github.com/proposalarchitect/speakerscout/session"
)

const keyPrefix = "speakerscout:session:"

// Store persists sessions as JSON blobs in redis, leaning on redis key
// expiry for the TTL instead of a sweeper.
type Store struct {
	client *goredis.Client
	ttl    time.Duration
}

type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func New(ctx context.Context, opts Options) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Store{client: client, ttl: opts.TTL}, nil
}

func (s *Store) Create(ctx context.Context) (*session.Session, error) {
	sess := &session.Session{
		ID:            uuid.NewString(),
		Opportunities: []models.Opportunity{},
		Proposals:     []models.Proposal{},
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *Store) Get(ctx context.Context, id string) (*session.Session, error) {
	b, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, models.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var sess session.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &sess, nil
}

// Put stores the session and resets its TTL.
func (s *Store) Put(ctx context.Context, sess *session.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sess.ID, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
