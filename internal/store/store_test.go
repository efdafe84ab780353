package store

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesCollections(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(context.Background(), dir)
	require.NoError(t, err)

	for _, name := range []string{"users.csv", "admins.csv", "movies_showings.csv", "bookings.csv"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		assert.Len(t, lines, 1, "%s should hold only a header", name)
	}
}

func TestOpenKeepsExistingData(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	s, err := Open(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, s.Users.WriteAll(ctx, [][]string{
		{"1", "alice", "h", "s", "alice@example.com", "active"},
	}))

	s2, err := Open(ctx, dir)
	require.NoError(t, err)
	rows, err := s2.Users.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "alice", rows[0][1])
}

func TestReadAllMissingFileIsEmpty(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	s, err := Open(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, "bookings.csv")))

	rows, err := s.Bookings.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadAllRejectsRaggedRows(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	s, err := Open(ctx, dir)
	require.NoError(t, err)

	raw := "user_id,username,password_hash,salt,email,status\n1,alice\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.csv"), []byte(raw), 0o644))

	_, err = s.Users.ReadAll(ctx)
	assert.ErrorIs(t, err, ErrPersistence)
}

func TestWriteAllRoundTripQuoting(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	s, err := Open(ctx, dir)
	require.NoError(t, err)

	row := []string{"1", "The Good, the Bad and the Ugly", "Western", "178", "1", "Fri 21:00", "40", "9.50"}
	require.NoError(t, s.Showings.WriteAll(ctx, [][]string{row}))

	rows, err := s.Showings.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, row, rows[0])
}

func TestWithLockSerializes(t *testing.T) {
	s := &Store{}
	counter := 0
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				_ = s.WithLock(func() error {
					counter++
					return nil
				})
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	assert.Equal(t, 800, counter)
}
