package mongodb

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/immerse/sponsor-tracker/internal/domain"
)

// startMongo запускает MongoDB в контейнере и возвращает строку подключения
func startMongo(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := tcmongo.Run(ctx, "mongo:7")
	require.NoError(t, err, "Failed to start MongoDB container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get connection string")
	return uri
}

// setupStore возвращает Store поверх MongoDB в контейнере
func setupStore(t *testing.T, clock clockwork.Clock) *Store {
	t.Helper()

	store := NewStore(startMongo(t), "sponsors_test", "sponsors", 30*time.Second, clock)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	return store
}

func TestSponsorRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	clock := clockwork.NewFakeClockAt(time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC))
	store := setupStore(t, clock)
	repo := store.Sponsors()
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))
	assert.True(t, store.connector.Connected())

	first := &domain.Sponsor{Name: "Dominos", Amount: 1000, BusinessType: "Food", Location: "Downtown", AssignedTeam: "Team B", Package: "Silver Sponsor"}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, clock.Now().UTC(), first.CreatedAt)

	clock.Advance(time.Minute)

	second := &domain.Sponsor{Name: "Acme", Amount: 5000, BusinessType: "Retail", Location: "City", AssignedTeam: "Team A", Package: "Gold Sponsor"}
	require.NoError(t, repo.Create(ctx, second))

	t.Run("List newest first", func(t *testing.T) {
		sponsors, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, sponsors, 2)
		assert.Equal(t, second.ID, sponsors[0].ID)
		assert.Equal(t, first.ID, sponsors[1].ID)
		assert.Equal(t, "Gold Sponsor", sponsors[0].Package)
	})

	t.Run("Count", func(t *testing.T) {
		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
	})

	t.Run("Delete and delete again", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, first.ID))
		assert.ErrorIs(t, repo.Delete(ctx, first.ID), domain.ErrSponsorNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, first.ID), domain.ErrSponsorNotFound)

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("Delete unknown id", func(t *testing.T) {
		err := repo.Delete(ctx, domain.NewSponsorID().Hex())
		assert.ErrorIs(t, err, domain.ErrSponsorNotFound)
	})
}

func TestConnector_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	uri := startMongo(t)
	ctx := context.Background()

	t.Run("Reuses one client", func(t *testing.T) {
		var connects atomic.Int32
		c := NewConnector(uri, 30*time.Second, func(ctx context.Context, client *mongo.Client) error {
			connects.Add(1)
			return nil
		})
		t.Cleanup(func() { _ = c.Disconnect(context.Background()) })

		first, err := c.Client(ctx)
		require.NoError(t, err)
		second, err := c.Client(ctx)
		require.NoError(t, err)
		assert.Same(t, first, second)

		var wg sync.WaitGroup
		clients := make([]*mongo.Client, 8)
		for i := range clients {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				clients[i], _ = c.Client(ctx)
			}(i)
		}
		wg.Wait()
		for _, client := range clients {
			assert.Same(t, first, client)
		}
		assert.Equal(t, int32(1), connects.Load())
	})

	t.Run("Retries after failed connect", func(t *testing.T) {
		c := NewConnector("mongodb://127.0.0.1:1", 200*time.Millisecond, nil)
		t.Cleanup(func() { _ = c.Disconnect(context.Background()) })

		_, err := c.Client(ctx)
		require.Error(t, err)
		assert.False(t, c.Connected())

		c.uri = uri
		c.timeout = 30 * time.Second

		client, err := c.Client(ctx)
		require.NoError(t, err)
		assert.True(t, c.Connected())

		again, err := c.Client(ctx)
		require.NoError(t, err)
		assert.Same(t, client, again)
	})
}
