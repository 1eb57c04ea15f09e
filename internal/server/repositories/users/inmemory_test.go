package users

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/userkeeper/internal/common"
	"github.com/dmitrijs2005/userkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T, n int) *InMemoryRepository {
	t.Helper()
	r := NewInMemoryRepository()
	for i := 1; i <= n; i++ {
		_, err := r.Create(context.Background(), &models.User{
			Name:         fmt.Sprintf("user%d", i),
			Email:        fmt.Sprintf("u%d@example.com", i),
			PasswordHash: fmt.Sprintf("hash%d", i),
		})
		require.NoError(t, err)
	}
	return r
}

func TestCreate_AssignsSequentialIDs(t *testing.T) {
	r := seeded(t, 3)

	list, err := r.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	for i, u := range list {
		assert.Equal(t, int64(i+1), u.ID)
	}
}

func TestCreate_DoesNotReuseIDsAfterDelete(t *testing.T) {
	ctx := context.Background()
	r := seeded(t, 1)

	require.NoError(t, r.Delete(ctx, 1))

	u, err := r.Create(ctx, &models.User{Name: "n", Email: "n@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), u.ID)
}

func TestCreate_DoesNotAliasInput(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	in := &models.User{Name: "a", Email: "a@example.com", PasswordHash: "h"}
	_, err := r.Create(ctx, in)
	require.NoError(t, err)

	in.Name = "changed"
	got, err := r.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)
	assert.Zero(t, in.ID)
}

func TestGetByID(t *testing.T) {
	r := seeded(t, 2)

	u, err := r.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "user2", u.Name)

	_, err = r.GetByID(context.Background(), 42)
	assert.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestGetByEmail_ReturnsEarliestMatch(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()
	_, _ = r.Create(ctx, &models.User{Name: "first", Email: "dup@example.com", PasswordHash: "h1"})
	_, _ = r.Create(ctx, &models.User{Name: "second", Email: "dup@example.com", PasswordHash: "h2"})

	u, err := r.GetByEmail(ctx, "dup@example.com")
	require.NoError(t, err)
	assert.Equal(t, "first", u.Name)

	_, err = r.GetByEmail(ctx, "DUP@example.com")
	assert.True(t, errors.Is(err, common.ErrorNotFound), "emails are compared exactly")
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps hash when none given", func(t *testing.T) {
		r := seeded(t, 1)
		u, err := r.Update(ctx, 1, "renamed", "new@example.com", "")
		require.NoError(t, err)
		assert.Equal(t, "renamed", u.Name)
		assert.Equal(t, "new@example.com", u.Email)
		assert.Equal(t, "hash1", u.PasswordHash)
	})

	t.Run("replaces hash when given", func(t *testing.T) {
		r := seeded(t, 1)
		u, err := r.Update(ctx, 1, "user1", "u1@example.com", "fresh")
		require.NoError(t, err)
		assert.Equal(t, "fresh", u.PasswordHash)

		stored, err := r.GetByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "fresh", stored.PasswordHash)
	})

	t.Run("empty name and email overwrite stored values", func(t *testing.T) {
		r := seeded(t, 1)
		u, err := r.Update(ctx, 1, "", "", "")
		require.NoError(t, err)
		assert.Empty(t, u.Name)
		assert.Empty(t, u.Email)
	})

	t.Run("unknown id", func(t *testing.T) {
		r := seeded(t, 1)
		_, err := r.Update(ctx, 9, "x", "y", "")
		assert.True(t, errors.Is(err, common.ErrorNotFound))
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	r := seeded(t, 3)

	require.NoError(t, r.Delete(ctx, 2))

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(1), list[0].ID)
	assert.Equal(t, int64(3), list[1].ID)

	assert.True(t, errors.Is(r.Delete(ctx, 2), common.ErrorNotFound))
}

func TestList_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	r := seeded(t, 1)

	list, err := r.List(ctx)
	require.NoError(t, err)
	list[0].PasswordHash = "tampered"

	u, err := r.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "hash1", u.PasswordHash)
}

func TestCount(t *testing.T) {
	r := seeded(t, 4)
	n, err := r.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestCancelledContext(t *testing.T) {
	r := seeded(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = r.Create(ctx, &models.User{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, r.Delete(ctx, 1), context.Canceled)
}

func TestConcurrentCreateDelete(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRepository()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := r.Create(ctx, &models.User{Name: "c", Email: fmt.Sprintf("c%d@example.com", i), PasswordHash: "h"})
			if err != nil {
				t.Error(err)
				return
			}
			if i%2 == 0 {
				if err := r.Delete(ctx, u.ID); err != nil {
					t.Error(err)
				}
			}
		}(i)
	}
	wg.Wait()

	list, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, n/2)

	seen := make(map[int64]bool)
	for _, u := range list {
		assert.False(t, seen[u.ID], "duplicate id %d", u.ID)
		seen[u.ID] = true
	}
}
