package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequence_Next_StartsAtOne(t *testing.T) {
	t.Parallel()

	f := New()
	f.Sequence("n", func(n int) any { return n })

	var got []any
	for i := 0; i < 5; i++ {
		v, err := f.Next("n")
		require.NoError(t, err)
		got = append(got, v)
	}
	assert.Equal(t, []any{1, 2, 3, 4, 5}, got)
}

func TestSequence_Format(t *testing.T) {
	t.Parallel()

	f := New()
	seq := f.Sequence("email", Format("user%d@x.com"))

	first, _ := f.Next("email")
	second, _ := f.Next("email")
	assert.Equal(t, "user1@x.com", first)
	assert.Equal(t, "user2@x.com", second)
	assert.Equal(t, 2, seq.Count())
	assert.Equal(t, "email", seq.Name())
}

func TestSequence_IndependentCounters(t *testing.T) {
	t.Parallel()

	f := New()
	f.Sequence("a", func(n int) any { return n })
	f.Sequence("b", func(n int) any { return n * 10 })

	_, _ = f.Next("a")
	_, _ = f.Next("a")
	b, _ := f.Next("b")
	a, _ := f.Next("a")

	assert.Equal(t, 10, b)
	assert.Equal(t, 3, a)
}

func TestSequence_RedefineRestartsCounter(t *testing.T) {
	t.Parallel()

	f := New()
	f.Sequence("n", func(n int) any { return n })
	_, _ = f.Next("n")
	_, _ = f.Next("n")

	f.Sequence("n", func(n int) any { return -n })
	v, err := f.Next("n")
	require.NoError(t, err)
	assert.Equal(t, -1, v)
}

func TestFactory_Next_UnknownSequence(t *testing.T) {
	t.Parallel()

	f := New()
	_, err := f.Next("missing")

	require.ErrorIs(t, err, ErrUnknownSequence)
	assert.Contains(t, err.Error(), "missing")
}

func TestSeq_DrawsOnEachEvaluation(t *testing.T) {
	t.Parallel()

	f := New()
	f.Sequence("n", func(n int) any { return n })
	gen := Seq("n")

	first, err := gen(context.Background(), NewAttributes(), f)
	require.NoError(t, err)
	second, err := gen(context.Background(), NewAttributes(), f)
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestSeq_UnknownSequenceFailsBuild(t *testing.T) {
	t.Parallel()

	f := New()
	f.Define("user", Static(Fields("email", Seq("email"))), nil)

	_, err := f.Build(context.Background(), "user", nil)
	require.ErrorIs(t, err, ErrUnknownSequence)
	assert.Contains(t, err.Error(), "evaluate user.email")
}
