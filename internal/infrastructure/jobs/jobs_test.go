package jobs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/salay-pos/internal/domain/entity"
	"github.com/sangkips/salay-pos/internal/infrastructure/jobs"
	"github.com/sangkips/salay-pos/internal/infrastructure/repository"
	"github.com/sangkips/salay-pos/internal/testutil"
)

func TestPurgeExpiredKeys(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := repository.NewIdempotencyRepository(testutil.NewDB(t))

	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "old", Scope: "ip:1", Endpoint: "POST /api/transactions", ResponseCode: 201,
		ExpiresAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &entity.IdempotencyKey{
		Key: "fresh", Scope: "ip:1", Endpoint: "POST /api/transactions", ResponseCode: 201,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	n, err := jobs.PurgeExpiredKeys(ctx, repo, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := repo.GetByKey(ctx, "fresh", "ip:1")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestSchedulerRegister(t *testing.T) {
	t.Parallel()

	repo := repository.NewIdempotencyRepository(testutil.NewDB(t))
	s := jobs.NewScheduler(nil)

	require.NoError(t, s.RegisterIdempotencyCleanup("@hourly", repo))
	assert.Equal(t, 1, s.Entries())
	assert.Error(t, s.RegisterIdempotencyCleanup("not a spec", repo))

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
