package redis_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/proposalarchitect/speakerscout/models"
	sessredis "github.com/proposalarchitect/speakerscout/session/redis"
)

func startRedis(t *testing.T, ctx context.Context) (testcontainers.Container, string) {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
	}
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Skipf("could not start redis container: %v", err)
	}
	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		t.Fatalf("failed to get host: %v", err)
	}
	port, err := c.MappedPort(ctx, "6379")
	if err != nil {
		_ = c.Terminate(ctx)
		t.Fatalf("failed to get mapped port: %v", err)
	}
	return c, host + ":" + port.Port()
}

func TestRedisStore_Lifecycle(t *testing.T) {
	if os.Getenv("SPEAKERSCOUT_INTEGRATION") == "" {
		t.Skip("set SPEAKERSCOUT_INTEGRATION=1 to run container tests")
	}
	ctx := context.Background()
	c, addr := startRedis(t, ctx)
	defer func() { _ = c.Terminate(ctx) }()

	store, err := sessredis.New(ctx, sessredis.Options{Addr: addr, TTL: time.Hour})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer store.Close()

	sess, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	sess.Profile = &models.Profile{Name: "Dana"}
	sess.Opportunities = append(sess.Opportunities, models.Opportunity{ID: "opp_1", EventName: "CloudConf"})
	if err := store.Put(ctx, sess); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Profile == nil || got.Profile.Name != "Dana" {
		t.Errorf("profile did not round-trip: %+v", got.Profile)
	}
	if len(got.Opportunities) != 1 || got.Opportunities[0].EventName != "CloudConf" {
		t.Errorf("opportunities did not round-trip: %+v", got.Opportunities)
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("deleted session must be not found, got %v", err)
	}
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	if os.Getenv("SPEAKERSCOUT_INTEGRATION") == "" {
		t.Skip("set SPEAKERSCOUT_INTEGRATION=1 to run container tests")
	}
	ctx := context.Background()
	c, addr := startRedis(t, ctx)
	defer func() { _ = c.Terminate(ctx) }()

	store, err := sessredis.New(ctx, sessredis.Options{Addr: addr, TTL: time.Second})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer store.Close()

	sess, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	time.Sleep(1500 * time.Millisecond)
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, models.ErrSessionNotFound) {
		t.Errorf("expired session must be not found, got %v", err)
	}
}
