package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stefanodallapalma/java-starter/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestManager(t *testing.T) (*Manager, string) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "history.db")
	manager, err := NewManager(context.Background(), dsn)
	require.NoError(t, err)
	return manager, dsn
}

func TestRecordAndRecent(t *testing.T) {
	t.Parallel()

	manager, _ := openTestManager(t)
	defer func() { _ = manager.Close() }()
	ctx := context.Background()

	base := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	runs := []Run{
		{
			ProjectRoot: "/repo",
			StartedAt:   base,
			Duration:    1200 * time.Millisecond,
			Outcome:     "success",
			Formatter:   "./gradlew spotlessApply",
			Staged:      []string{"A.java", "B.java"},
		},
		{
			ProjectRoot: "/repo",
			StartedAt:   base.Add(time.Minute),
			Duration:    800 * time.Millisecond,
			Outcome:     "format-failed",
			Formatter:   "./gradlew spotlessApply",
			Error:       "./gradlew spotlessApply: exit status 1",
		},
		{
			ProjectRoot: "/other",
			StartedAt:   base.Add(2 * time.Minute),
			Outcome:     "success",
			Formatter:   "gradle spotlessApply",
			Staged:      []string{},
		},
	}
	for _, run := range runs {
		require.NoError(t, manager.Record(ctx, run))
	}

	got, err := manager.Recent(ctx, "/repo", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "format-failed", got[0].Outcome)
	assert.Equal(t, "./gradlew spotlessApply: exit status 1", got[0].Error)
	assert.Equal(t, base.Add(time.Minute), got[0].StartedAt)
	assert.Nil(t, got[0].Staged)

	assert.Equal(t, "success", got[1].Outcome)
	assert.Equal(t, []string{"A.java", "B.java"}, got[1].Staged)
	assert.Equal(t, 1200*time.Millisecond, got[1].Duration)
}

func TestRecent_Limit(t *testing.T) {
	t.Parallel()

	manager, _ := openTestManager(t)
	defer func() { _ = manager.Close() }()
	ctx := context.Background()

	base := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	for i := range 5 {
		require.NoError(t, manager.Record(ctx, Run{
			ProjectRoot: "/repo",
			StartedAt:   base.Add(time.Duration(i) * time.Second),
			Outcome:     "success",
		}))
	}

	got, err := manager.Recent(ctx, "/repo", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, base.Add(4*time.Second), got[0].StartedAt)
}

func TestRecent_EmptyJournal(t *testing.T) {
	t.Parallel()

	manager, _ := openTestManager(t)
	defer func() { _ = manager.Close() }()

	got, err := manager.Recent(context.Background(), "/repo", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNewManager_ReopenKeepsRuns(t *testing.T) {
	t.Parallel()

	manager, dsn := openTestManager(t)
	ctx := context.Background()
	require.NoError(t, manager.Record(ctx, Run{ProjectRoot: "/repo", StartedAt: time.Now(), Outcome: "success"}))
	require.NoError(t, manager.Close())

	reopened, err := NewManager(ctx, dsn)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	var version int
	require.NoError(t, reopened.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version))
	assert.Equal(t, len(migrations), version)

	got, err := reopened.Recent(ctx, "/repo", 5)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestNewManager_InvalidPath(t *testing.T) {
	t.Parallel()

	_, err := NewManager(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "history.db"))
	assert.Error(t, err)
}

func TestManagerClose_NoLeaks(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	manager, _ := openTestManager(t)
	require.NoError(t, manager.Record(context.Background(), Run{ProjectRoot: "/repo", StartedAt: time.Now(), Outcome: "success"}))
	require.NoError(t, manager.Close())
}
