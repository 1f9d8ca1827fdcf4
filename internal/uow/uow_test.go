package uow

import (
	"context"
	"errors"
	"testing"

	"github.com/kirinyoku/shootplan/internal/repository"
	"github.com/kirinyoku/shootplan/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_RunsHooksAfterCommit(t *testing.T) {
	u := NewUoW(memory.NewStore())

	var calls []string
	err := u.Do(context.Background(), func(ctx context.Context, tx repository.Tx, after func(AfterCommit)) error {
		after(func(context.Context) { calls = append(calls, "first") })
		after(func(context.Context) { calls = append(calls, "second") })
		assert.Empty(t, calls)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestDo_SkipsHooksOnError(t *testing.T) {
	u := NewUoW(memory.NewStore())
	boom := errors.New("boom")

	called := false
	err := u.Do(context.Background(), func(ctx context.Context, tx repository.Tx, after func(AfterCommit)) error {
		after(func(context.Context) { called = true })
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}

type replayStore struct {
	repository.Store
	attempts int
}

func (s *replayStore) RunTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	var err error
	for i := 0; i < s.attempts; i++ {
		err = fn(ctx, s.Store)
	}
	return err
}

func TestDo_ReplayKeepsLastAttemptHooks(t *testing.T) {
	u := NewUoW(&replayStore{Store: memory.NewStore(), attempts: 3})

	n := 0
	err := u.Do(context.Background(), func(ctx context.Context, tx repository.Tx, after func(AfterCommit)) error {
		after(func(context.Context) { n++ })
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
