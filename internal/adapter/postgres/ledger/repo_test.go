package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/citizenship-glossary/internal/adapter/postgres/ledger"
	"github.com/heartmarshall/citizenship-glossary/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/citizenship-glossary/internal/domain"
)

func newRepo(t *testing.T) *ledger.Repo {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	testhelper.Truncate(t, pool)
	return ledger.New(pool)
}

func TestRepo_LoadEmpty(t *testing.T) {
	repo := newRepo(t)

	l, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{}, l.ProcessedIDs)
	assert.True(t, l.LastUpdated.IsZero())
}

func TestRepo_SaveAppendsInOrder(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	l := &domain.Ledger{}
	l.Add(now, "q-1", "q-2")
	require.NoError(t, repo.Save(ctx, l))

	l.Add(now.Add(time.Hour), "doc:a.txt#0")
	require.NoError(t, repo.Save(ctx, l))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"q-1", "q-2", "doc:a.txt#0"}, got.ProcessedIDs)
	assert.True(t, got.LastUpdated.Equal(now.Add(time.Hour)))
	assert.True(t, got.Has("q-2"))
}

func TestRepo_SaveAfterReset(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	l := &domain.Ledger{}
	l.Add(now, "q-1", "q-2")
	require.NoError(t, repo.Save(ctx, l))

	l.Reset(now.Add(time.Minute))
	require.NoError(t, repo.Save(ctx, l))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.ProcessedIDs)
	assert.True(t, got.LastUpdated.Equal(now.Add(time.Minute)))
}
