package session

import (
	"context"
	"time"

	"github.com/proposalarchitect/speakerscout/models"
)

// Session holds everything accumulated for one caller across pipeline
// actions: the parsed profile, the normalized opportunities, the latest
// ranking and any generated proposals.
type Session struct {
	ID            string                `json:"id"`
	Profile       *models.Profile       `json:"profile,omitempty"`
	Opportunities []models.Opportunity  `json:"opportunities"`
	Ranking       *models.RankingResult `json:"ranking,omitempty"`
	Proposals     []models.Proposal     `json:"proposals"`
	CreatedAt     time.Time             `json:"created_at"`
}

// Store persists sessions with a TTL. Implementations return
// models.ErrSessionNotFound for unknown or expired ids.
type Store interface {
	Create(ctx context.Context) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Put(ctx context.Context, sess *Session) error
	Delete(ctx context.Context, id string) error
	Close() error
}

type StoreType string

const (
	InMemoryStore StoreType = "inmemory"
	RedisStore    StoreType = "redis"
)
