package ident

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func neverExists(ctx context.Context, code string) (bool, error) {
	return false, nil
}

func alwaysExists(ctx context.Context, code string) (bool, error) {
	return true, nil
}

func TestNewIDUnique(t *testing.T) {
	g := New(Config{})
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := g.NewID()
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestJoinCodeFormat(t *testing.T) {
	g := New(Config{})
	for i := 0; i < 100; i++ {
		code, err := g.JoinCode(context.Background(), neverExists)
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'),
				"code %q contains %q", code, r)
		}
	}
}

func TestJoinCodeRetriesOnCollision(t *testing.T) {
	g := New(Config{MaxAttempts: 5})

	calls := 0
	exists := func(ctx context.Context, code string) (bool, error) {
		calls++
		return calls < 3, nil // first two candidates taken
	}

	code, err := g.JoinCode(context.Background(), exists)
	require.NoError(t, err)
	assert.NotEmpty(t, code)
	assert.Equal(t, 3, calls)
}

func TestJoinCodeDegradePolicy(t *testing.T) {
	g := New(Config{MaxAttempts: 4, OnExhausted: PolicyDegrade})

	calls := 0
	exists := func(ctx context.Context, code string) (bool, error) {
		calls++
		return true, nil
	}

	code, err := g.JoinCode(context.Background(), exists)
	require.NoError(t, err)
	assert.Len(t, code, 6, "degrade policy returns the last candidate")
	assert.Equal(t, 4, calls, "attempt budget is honored")
}

func TestJoinCodeStrictPolicy(t *testing.T) {
	g := New(Config{MaxAttempts: 3, OnExhausted: PolicyStrict})

	_, err := g.JoinCode(context.Background(), alwaysExists)
	assert.ErrorIs(t, err, ErrCodeExhausted)
}

func TestJoinCodeVerifyErrorCountsAsAttempt(t *testing.T) {
	g := New(Config{MaxAttempts: 2, OnExhausted: PolicyStrict})

	exists := func(ctx context.Context, code string) (bool, error) {
		return false, errors.New("remote down")
	}

	_, err := g.JoinCode(context.Background(), exists)
	assert.ErrorIs(t, err, ErrCodeExhausted)
}

type brokenReader struct{}

func (brokenReader) Read(p []byte) (int, error) {
	return 0, errors.New("entropy source failed")
}

func TestJoinCodeEntropyFailure(t *testing.T) {
	g := New(Config{OnExhausted: PolicyDegrade})
	g.rand = brokenReader{}

	code, err := g.JoinCode(context.Background(), neverExists)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCodeExhausted)
	assert.Empty(t, code, "an unreadable entropy source never yields a code")
}

func TestJoinCodeCustomLength(t *testing.T) {
	g := New(Config{CodeLength: 8})
	code, err := g.JoinCode(context.Background(), neverExists)
	require.NoError(t, err)
	assert.Len(t, code, 8)
}
