package bootstrap

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrecklessracks/racks/internal/config"
	"github.com/wrecklessracks/racks/internal/domain"
	"github.com/wrecklessracks/racks/internal/event"
	"github.com/wrecklessracks/racks/internal/logger"
)

func testConfig(t *testing.T, storage string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		LogLevel:            "error",
		LogFormat:           config.DefaultLogFormat,
		ServiceName:         config.DefaultServiceName,
		Version:             config.DefaultVersion,
		Environment:         "test",
		StorageBackend:      storage,
		SQLitePath:          filepath.Join(dir, "racks.db"),
		JackpotBackend:      config.JackpotBackendStore,
		EventDeadLetterPath: filepath.Join(dir, "events", "deadletter.jsonl"),
		EventMaxRetries:     1,
		EventRetryDelay:     time.Millisecond,
		StartingBalance:     1_000,
		Timezone:            "UTC",
		JackpotSeed:         5_000,
		JackpotInitial:      7_500,
		JackpotIncrement:    10,
	}
}

func TestInitializeRepositories_Backends(t *testing.T) {
	tests := []struct {
		storage    string
		wantHealth []string
	}{
		{storage: config.StorageMemory},
		{storage: config.StorageSQLite, wantHealth: []string{HealthCheckDatabase}},
	}

	for _, tt := range tests {
		t.Run(tt.storage, func(t *testing.T) {
			ctx := context.Background()
			repos, err := InitializeRepositories(ctx, testConfig(t, tt.storage))
			require.NoError(t, err)
			defer repos.Close()

			assert.NotNil(t, repos.Account)
			assert.NotNil(t, repos.Jackpot)
			assert.Len(t, repos.Health, len(tt.wantHealth))
			for _, name := range tt.wantHealth {
				require.Contains(t, repos.Health, name)
				assert.NoError(t, repos.Health[name].Ping(ctx))
			}
		})
	}
}

func TestInitializeRepositories_UnknownBackend(t *testing.T) {
	_, err := InitializeRepositories(context.Background(), testConfig(t, "cassandra"))
	assert.Error(t, err)
}

func TestInitializeServices_EndToEnd(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.StorageMemory)

	repos, err := InitializeRepositories(ctx, cfg)
	require.NoError(t, err)
	services, err := InitializeServices(ctx, cfg, repos, nil)
	require.NoError(t, err)

	pool, err := services.Jackpot.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.JackpotPoolMegaSlots, pool.PoolID)
	assert.Equal(t, int64(7_500), pool.Amount)
	assert.Equal(t, int64(5_000), pool.Seed)

	acct, err := services.Account.Register(ctx, "alice", cfg.StartingBalance)
	require.NoError(t, err)
	assert.Equal(t, int64(1_000), acct.Balance)

	result, err := services.Casino.SpinSlots(ctx, "alice", 10)
	require.NoError(t, err)
	assert.Equal(t, int64(990)+result.PayoutAmount+rewards(result.ChallengesCompleted), result.NewBalance)

	names := make([]string, 0, 4)
	for _, s := range services.ShutdownOrder() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{ServiceNameCasino, ServiceNameProgression, ServiceNameBilling, ServiceNameTournament, ServiceNameAccount}, names)

	GracefulShutdown(ctx, ShutdownComponents{Services: services.ShutdownOrder(), Repositories: repos})
}

func rewards(completed []domain.ChallengeCompletion) int64 {
	var total int64
	for _, c := range completed {
		total += c.Reward
	}
	return total
}

func TestInitializeServices_SQLitePersistsAcrossRestarts(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.StorageSQLite)

	repos, err := InitializeRepositories(ctx, cfg)
	require.NoError(t, err)
	services, err := InitializeServices(ctx, cfg, repos, nil)
	require.NoError(t, err)
	_, err = services.Account.Register(ctx, "bob", 2_500)
	require.NoError(t, err)
	GracefulShutdown(ctx, ShutdownComponents{Services: services.ShutdownOrder(), Repositories: repos})

	// A second Init must not reset the pool or lose the account
	repos, err = InitializeRepositories(ctx, cfg)
	require.NoError(t, err)
	defer repos.Close()
	services, err = InitializeServices(ctx, cfg, repos, nil)
	require.NoError(t, err)

	balance, err := services.Account.GetBalance(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(2_500), balance)
}

func TestInitializeEventSystem(t *testing.T) {
	cfg := testConfig(t, config.StorageMemory)

	sys, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	assert.Nil(t, sys.Kafka, "no brokers configured")
	require.NotNil(t, sys.Hub)
	defer sys.Hub.Stop()
	assert.DirExists(t, filepath.Dir(cfg.EventDeadLetterPath))

	var got []event.Type
	sys.Bus.Subscribe(event.AccountRegistered, func(_ context.Context, e event.Event) error {
		got = append(got, e.Type)
		return nil
	})
	sys.Publisher.PublishWithRetry(context.Background(), event.NewAccountRegisteredEvent(domain.NewAccount("carol", 10, time.Now())))
	assert.Equal(t, []event.Type{event.AccountRegistered}, got)

	require.NoError(t, sys.Publisher.Shutdown(context.Background()))
}

func TestGracefulShutdown_StopsEventFeed(t *testing.T) {
	sys, err := InitializeEventSystem(testConfig(t, config.StorageMemory))
	require.NoError(t, err)

	feed := sys.Hub.Register(nil, "")
	require.Eventually(t, func() bool { return sys.Hub.ClientCount() == 1 }, time.Second, time.Millisecond)

	GracefulShutdown(context.Background(), ShutdownComponents{Events: sys})

	_, open := <-feed.Events
	assert.False(t, open)
}

func TestSetupLogger_WritesRotatedFile(t *testing.T) {
	cfg := testConfig(t, config.StorageMemory)
	cfg.LogLevel = "info"
	cfg.LogDir = filepath.Join(t.TempDir(), "logs")

	closer, err := SetupLogger(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { logger.InitLoggerWithWriter(logger.DefaultConfig(), io.Discard) })
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(cfg.LogDir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), LogMsgLoggingInitialized)
}
