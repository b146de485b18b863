package core

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *CredentialStore {
	t.Helper()
	return NewCredentialStore(filepath.Join(t.TempDir(), "accounts.txt"), time.Second)
}

func TestCredentialStore_RegisterUniqueness(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Register(ctx, "alice", "wonderland"))

	err := store.Register(ctx, "alice", "other")
	require.ErrorIs(t, err, ErrUsernameTaken)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	count := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, "alice,") {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, "alice,wonderland\n", string(data))
}

func TestCredentialStore_Verify(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Register(ctx, "alice", "wonderland"))
	require.NoError(t, store.Register(ctx, "bob", "pa,ss"))

	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{"exact match", "alice", "wonderland", true},
		{"password with comma", "bob", "pa,ss", true},
		{"wrong password", "alice", "Wonderland", false},
		{"unknown user", "carol", "wonderland", false},
		{"prefix is not a match", "ali", "wonderland", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := store.Verify(tt.username, tt.password)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestCredentialStore_VerifyMissingFile(t *testing.T) {
	store := newTestStore(t)

	ok, err := store.Verify("alice", "wonderland")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCredentialStore_VerifyEarliestLineWins(t *testing.T) {
	store := newTestStore(t)
	content := "garbage-without-comma\r\nalice,first\r\nalice,second\r\n"
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0o600))

	ok, err := store.Verify("alice", "first")
	require.NoError(t, err)
	assert.True(t, ok)

	// A later duplicate still verifies; the scan just reaches it later
	ok, err = store.Verify("alice", "second")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Verify("garbage-without-comma", "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCredentialStore_SaveCredentialAppendsUnconditionally(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SaveCredential(ctx, "alice", "one"))
	require.NoError(t, store.SaveCredential(ctx, "alice", "one"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "alice,one\nalice,one\n", string(data))
}

func TestCredentialStore_RejectsCorruptingValues(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, tc := range []struct{ user, pass string }{
		{"", "x"},
		{"a,b", "x"},
		{"alice", "multi\nline"},
		{"bob\xff", "pw"},
		{"bob", "caf\xe9"},
	} {
		err := store.Register(ctx, tc.user, tc.pass)
		assert.ErrorIs(t, err, ErrMalformedRecord, "user=%q pass=%q", tc.user, tc.pass)
	}

	_, err := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err), "nothing should have been written")
}

func TestCredentialStore_UnwritableLocation(t *testing.T) {
	store := NewCredentialStore(filepath.Join(t.TempDir(), "missing-dir", "accounts.txt"), 100*time.Millisecond)

	err := store.Register(context.Background(), "alice", "x")
	assert.ErrorIs(t, err, ErrFileUnavailable)
}

func TestCredentialStore_InvalidUTF8NeverStored(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for i := 0; i < 2; i++ {
		err := store.Register(ctx, "bob\xff", "pw")
		require.ErrorIs(t, err, ErrMalformedRecord)
	}
	assert.ErrorIs(t, store.SaveCredential(ctx, "bob\xff", "pw"), ErrMalformedRecord)

	_, err := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err), "nothing should have been written")
}

func TestCredentialStore_RegisterWaitsForLock(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "accounts.txt")
	store := NewCredentialStore(path, 200*time.Millisecond)

	other := flock.New(path + ".lock")
	locked, err := other.TryLock()
	require.NoError(t, err)
	require.True(t, locked)

	start := time.Now()
	err = store.Register(ctx, "alice", "pw")
	require.ErrorIs(t, err, ErrFileUnavailable)
	assert.GreaterOrEqual(t, time.Since(start), 200*time.Millisecond)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "nothing should be written while the lock is held")

	require.NoError(t, other.Unlock())
	require.NoError(t, store.Register(ctx, "alice", "pw"))

	ok, err := store.Verify("alice", "pw")
	require.NoError(t, err)
	assert.True(t, ok)
}
