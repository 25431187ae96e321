package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SilvertipSoftware/factorygirl/pkg/factory"
	"github.com/SilvertipSoftware/factorygirl/pkg/store"
)

func TestMemory_Save_AssignsIDsPerTable(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	ctx := context.Background()

	u1 := factory.NewRecord("User")
	u2 := factory.NewRecord("User")
	p1 := factory.NewRecord("Post")
	require.NoError(t, s.Save(ctx, u1))
	require.NoError(t, s.Save(ctx, u2))
	require.NoError(t, s.Save(ctx, p1))

	assert.Equal(t, int64(1), u1.ID())
	assert.Equal(t, int64(2), u2.ID())
	assert.Equal(t, int64(1), p1.ID())
	assert.Equal(t, 2, s.Count("users"))
	assert.Equal(t, 1, s.Count("posts"))
}

func TestMemory_Save_KeepsExplicitID(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	ctx := context.Background()

	fixed := factory.NewRecord("User")
	fixed.Set("id", int64(10))
	require.NoError(t, s.Save(ctx, fixed))

	next := factory.NewRecord("User")
	require.NoError(t, s.Save(ctx, next))

	assert.Equal(t, int64(10), fixed.ID())
	assert.Equal(t, int64(11), next.ID())
}

func TestMemory_Find(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	rec := factory.NewRecord("User")
	rec.Set("name", "Alice")
	require.NoError(t, s.Save(context.Background(), rec))

	row, err := s.Find("users", rec.ID())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"id": int64(1), "name": "Alice"}, row)

	row["name"] = "mutated"
	again, _ := s.Find("users", rec.ID())
	assert.Equal(t, "Alice", again["name"])

	_, err = s.Find("users", int64(99))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemory_Rows_InSaveOrder(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	for _, name := range []string{"a", "b", "c"} {
		rec := factory.NewRecord("Tag")
		rec.Set("name", name)
		require.NoError(t, s.Save(context.Background(), rec))
	}

	rows := s.Rows("tags")
	require.Len(t, rows, 3)
	assert.Equal(t, "a", rows[0]["name"])
	assert.Equal(t, "c", rows[2]["name"])
	assert.Empty(t, s.Rows("missing"))
}

func TestMemory_Save_UnsupportedModel(t *testing.T) {
	t.Parallel()

	err := store.NewMemory().Save(context.Background(), bareModel{})
	assert.ErrorIs(t, err, store.ErrUnsupportedModel)
}

func TestMemory_Save_Concurrent(t *testing.T) {
	t.Parallel()

	s := store.NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Save(context.Background(), factory.NewRecord("User"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Count("users"))
}

// bareModel implements factory.Model only.
type bareModel struct{}

func (bareModel) Set(string, any) {}

func (bareModel) ID() any { return nil }
