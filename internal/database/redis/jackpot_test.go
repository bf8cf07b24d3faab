package redis

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/repository"
	"github.com/wrecklessracks/racks/internal/repository/repotest"
)

var testAddr string

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testAddr, terminate = setupContainer(context.Background())
	}

	code := m.Run()

	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func setupContainer(ctx context.Context) (string, func()) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		fmt.Printf("WARNING: Failed to start redis container: %v\n", err)
		return "", nil
	}
	terminate := func() {
		if err := container.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		fmt.Printf("WARNING: Failed to get redis endpoint: %v\n", err)
		terminate()
		return "", nil
	}
	return endpoint, terminate
}

func newTestStore(t *testing.T) *JackpotStore {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testAddr == "" {
		t.Skip("Skipping integration test: redis not available")
	}

	ctx := context.Background()
	store, err := NewJackpotStore(ctx, Options{Addr: testAddr})
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	if err := store.client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("failed to flush: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestJackpotStore(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	repotest.RunJackpotSuite(t, func(t *testing.T) repository.Jackpot {
		return newTestStore(t)
	})
}

func TestJackpotStore_KeyLayout(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.NoError(t, store.EnsurePool(ctx, "mega", 100, 50))
	fields, err := store.client.HGetAll(ctx, KeyPrefix+"mega").Result()
	assert.NoError(t, err)
	assert.Equal(t, map[string]string{"amount": "100", "seed": "50"}, fields)
}

func TestNewJackpotStore_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewJackpotStore(ctx, Options{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}

func TestPoolErr_MapsNil(t *testing.T) {
	assert.ErrorIs(t, poolErr(redis.Nil, "p"), domain.ErrJackpotPoolNotFound)
	assert.NotErrorIs(t, poolErr(context.DeadlineExceeded, "p"), domain.ErrJackpotPoolNotFound)
}
