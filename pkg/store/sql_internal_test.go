package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSQL_Insert_Placeholders(t *testing.T) {
	t.Parallel()

	fields := map[string]any{"title": "t", "author_id": int64(1)}

	q, args := (&SQL{dialect: SQLite}).insert("posts", fields)
	assert.Equal(t, `INSERT INTO "posts" ("author_id", "title") VALUES (?, ?)`, q)
	assert.Equal(t, []any{int64(1), "t"}, args)

	q, _ = (&SQL{dialect: Postgres}).insert("posts", fields)
	assert.Equal(t, `INSERT INTO "posts" ("author_id", "title") VALUES ($1, $2)`, q)
}

func TestSQL_Insert_Empty(t *testing.T) {
	t.Parallel()

	q, args := (&SQL{dialect: SQLite}).insert("users", map[string]any{})
	assert.Equal(t, `INSERT INTO "users" DEFAULT VALUES`, q)
	assert.Nil(t, args)
}

func TestQuoteIdent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"users"`, quoteIdent("users"))
	assert.Equal(t, `"we""ird"`, quoteIdent(`we"ird`))
}
