package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SilvertipSoftware/factorygirl/internal/database"
	"github.com/SilvertipSoftware/factorygirl/internal/testing/fixtures"
	"github.com/SilvertipSoftware/factorygirl/internal/testing/testdb"
	"github.com/SilvertipSoftware/factorygirl/pkg/factory"
	"github.com/SilvertipSoftware/factorygirl/pkg/store"
)

// fakeDB records queries and answers QueryOne with a canned record.
type fakeDB struct {
	queries []string
	vars    []map[string]interface{}
	result  interface{}
	err     error
}

func (d *fakeDB) Connect(context.Context) error { return nil }

func (d *fakeDB) Close() error { return nil }

func (d *fakeDB) Ping(context.Context) error { return nil }

func (d *fakeDB) Query(_ context.Context, q string, vars map[string]interface{}) ([]interface{}, error) {
	d.queries = append(d.queries, q)
	d.vars = append(d.vars, vars)
	return nil, d.err
}

func (d *fakeDB) QueryOne(ctx context.Context, q string, vars map[string]interface{}) (interface{}, error) {
	if _, err := d.Query(ctx, q, vars); err != nil {
		return nil, err
	}
	return d.result, nil
}

func (d *fakeDB) Execute(ctx context.Context, q string, vars map[string]interface{}) error {
	_, err := d.Query(ctx, q, vars)
	return err
}

var _ database.Database = (*fakeDB)(nil)

func TestSurreal_Save_CreatesInTable(t *testing.T) {
	t.Parallel()

	db := &fakeDB{result: map[string]interface{}{"id": "users:abc", "name": "Alice"}}
	s := store.NewSurreal(db)

	rec := factory.NewRecord("User")
	rec.Set("name", "Alice")
	require.NoError(t, s.Save(context.Background(), rec))

	assert.Equal(t, "users:abc", rec.ID())
	require.Len(t, db.queries, 1)
	assert.Equal(t, "CREATE type::table($table) CONTENT $content", db.queries[0])
	assert.Equal(t, "users", db.vars[0]["table"])
	assert.Equal(t, map[string]any{"name": "Alice"}, db.vars[0]["content"])
}

func TestSurreal_Save_ExplicitKey(t *testing.T) {
	t.Parallel()

	db := &fakeDB{result: map[string]interface{}{"id": map[string]interface{}{"tb": "users", "id": "alice"}}}
	s := store.NewSurreal(db)

	rec := factory.NewRecord("User")
	rec.Set("id", "alice")
	require.NoError(t, s.Save(context.Background(), rec))

	assert.Equal(t, "users:alice", rec.ID())
	assert.Equal(t, "CREATE type::record($table, $key) CONTENT $content", db.queries[0])
	assert.Equal(t, "alice", db.vars[0]["key"])
}

func TestSurreal_Save_QueryError(t *testing.T) {
	t.Parallel()

	db := &fakeDB{err: database.ErrQuery}
	s := store.NewSurreal(db)

	rec := factory.NewRecord("User")
	err := s.Save(context.Background(), rec)

	require.ErrorIs(t, err, database.ErrQuery)
	assert.Contains(t, err.Error(), "create users")
	assert.Len(t, rec.Errors(), 1)
}

func TestSurreal_Save_ResultWithoutID(t *testing.T) {
	t.Parallel()

	s := store.NewSurreal(&fakeDB{result: map[string]interface{}{"name": "x"}})
	err := s.Save(context.Background(), factory.NewRecord("User"))
	assert.ErrorContains(t, err, "result has no id")

	s = store.NewSurreal(&fakeDB{result: "scalar"})
	err = s.Save(context.Background(), factory.NewRecord("User"))
	assert.ErrorContains(t, err, "unexpected result")
}

func TestSurreal_AssociationsUseRecordIDs(t *testing.T) {
	t.Parallel()

	n := 0
	db := &fakeDB{}
	s := store.NewSurreal(db)
	f := fixtures.New(factory.WithStore(factory.StoreFunc(func(ctx context.Context, m factory.Model) error {
		n++
		db.result = map[string]interface{}{"id": store.TableName(m.(store.Row)) + ":" + string(rune('a'+n-1))}
		return s.Save(ctx, m)
	})))

	m, err := f.Create(context.Background(), "post", nil)
	require.NoError(t, err)

	post := m.(*factory.Record)
	assert.Equal(t, "posts:b", post.ID())
	assert.Equal(t, "users:a", post.Get("author_id"))
}

func TestSurreal_Integration(t *testing.T) {
	tdb := testdb.NewSurreal(t)
	f := fixtures.New(factory.WithStore(tdb.Store))

	m, err := f.Create(tdb.Ctx(), "comment", nil)
	require.NoError(t, err)
	comment := m.(*factory.Record)

	id, ok := comment.ID().(string)
	require.True(t, ok)
	row := tdb.MustSelectOne(id)
	assert.Equal(t, "Nice post", row["body"])
	assert.Equal(t, comment.Get("post_id"), database.RecordID(row["post_id"]))
}

func TestOpenSurreal_Unreachable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.OpenSurreal(ctx, store.SurrealConfig{Host: "127.0.0.1", Port: "1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, database.ErrConnection))
}
