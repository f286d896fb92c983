package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AkshitTiwarii/carbonx/internal/models"
)

func newTestFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rewards_db.json")
	return NewFileStore(path), path
}

func TestFileStoreEmptyOnMissingFile(t *testing.T) {
	st, _ := newTestFileStore(t)

	users, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)

	_, err = st.GetUser(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStoreSaveAndReload(t *testing.T) {
	st, _ := newTestFileStore(t)
	ctx := context.Background()

	rec := models.NewUserRecord(time.Now().UTC())
	rec.EcoPoints = 150
	rec.Rank = 1
	rec.Badges = []string{models.BadgeCarbonSaver}
	rec.AppendAction(models.ActionRecord{Type: "carbon_offset", Amount: 3.0, PointsEarned: 150, Timestamp: time.Now().UTC()})

	require.NoError(t, st.SaveUser(ctx, "alice", rec))

	got, err := st.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 150, got.EcoPoints)
	assert.Equal(t, []string{models.BadgeCarbonSaver}, got.Badges)
	require.Len(t, got.Actions, 1)
	assert.Equal(t, "carbon_offset", got.Actions[0].Type)
}

func TestFileStoreQuarantinesCorruptDocument(t *testing.T) {
	st, path := newTestFileStore(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	users, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)

	// The corrupt file must be moved aside, not deleted.
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	quarantined, err := filepath.Glob(path + ".corrupt.*")
	require.NoError(t, err)
	assert.Len(t, quarantined, 1)

	// The store keeps working afterwards.
	require.NoError(t, st.SaveUser(context.Background(), "alice", models.NewUserRecord(time.Now().UTC())))
	_, err = st.GetUser(context.Background(), "alice")
	assert.NoError(t, err)
}

func TestFileStoreResetsUndecodableRecord(t *testing.T) {
	st, path := newTestFileStore(t)
	doc := `{"alice": "not an object", "bob": {"ecoPoints": 50, "badges": [], "rank": 1, "actions": []}}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	users, err := st.Load(context.Background())
	require.NoError(t, err)
	require.Contains(t, users, "alice")
	require.Contains(t, users, "bob")

	assert.Equal(t, 0, users["alice"].EcoPoints)
	assert.Equal(t, 50, users["bob"].EcoPoints)
}

func TestFileStoreNormalizesLoadedRecords(t *testing.T) {
	st, path := newTestFileStore(t)
	doc := `{
		"alice": {
			"ecoPoints": -20,
			"rank": -3,
			"badges": ["carbon_saver", "carbon_saver", "", "bogus_badge", "water_warrior"],
			"actions": [
				{"type": "", "amount": 1, "points_earned": 10},
				{"type": "carbon_offset", "amount": -4, "points_earned": -7}
			]
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	users, err := st.Load(context.Background())
	require.NoError(t, err)
	alice := users["alice"]
	require.NotNil(t, alice)

	assert.Equal(t, 0, alice.EcoPoints)
	assert.Equal(t, 0, alice.Rank)
	assert.Equal(t, []string{models.BadgeCarbonSaver, models.BadgeWaterWarrior}, alice.Badges)

	// The untyped action is dropped, the malformed one is coerced.
	require.Len(t, alice.Actions, 1)
	assert.Equal(t, 1.0, alice.Actions[0].Amount)
	assert.Equal(t, 0, alice.Actions[0].PointsEarned)
	assert.False(t, alice.Actions[0].Timestamp.IsZero())
	assert.False(t, alice.CreatedAt.IsZero())
}

func TestFileStoreWritesBackupCopy(t *testing.T) {
	st, path := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveUser(ctx, "alice", models.NewUserRecord(time.Now().UTC())))
	require.NoError(t, st.SaveUser(ctx, "bob", models.NewUserRecord(time.Now().UTC())))

	// The second save keeps a .bak of the previous document.
	prev, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Contains(t, string(prev), "alice")
	assert.NotContains(t, string(prev), "bob")
}

func TestFileStoreBackup(t *testing.T) {
	st, path := newTestFileStore(t)
	ctx := context.Background()

	// Backing up a missing file is a no-op.
	require.NoError(t, st.Backup(ctx))

	require.NoError(t, st.SaveUser(ctx, "alice", models.NewUserRecord(time.Now().UTC())))
	require.NoError(t, st.Backup(ctx))

	backups, err := filepath.Glob(path + ".backup.*")
	require.NoError(t, err)
	assert.Len(t, backups, 1)
}

func TestFileStoreUpdateCreatesFreshRecord(t *testing.T) {
	st, _ := newTestFileStore(t)
	ctx := context.Background()

	err := st.Update(ctx, "alice", func(rec *models.UserRecord) error {
		rec.EcoPoints = 40
		return nil
	})
	require.NoError(t, err)

	got, err := st.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 40, got.EcoPoints)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestFileStoreUpdatePersistsNothingOnError(t *testing.T) {
	st, _ := newTestFileStore(t)
	ctx := context.Background()

	rec := models.NewUserRecord(time.Now().UTC())
	rec.EcoPoints = 10
	require.NoError(t, st.SaveUser(ctx, "alice", rec))

	wantErr := fmt.Errorf("modify failed")
	err := st.Update(ctx, "alice", func(rec *models.UserRecord) error {
		rec.EcoPoints = 999
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	got, err := st.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 10, got.EcoPoints)
}

func TestFileStoreUpdateSerializesWriters(t *testing.T) {
	st, _ := newTestFileStore(t)
	ctx := context.Background()

	const workers = 25
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := st.Update(ctx, "alice", func(rec *models.UserRecord) error {
				rec.EcoPoints += 10
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := st.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, workers*10, got.EcoPoints, "concurrent updates must not lose writes")
}

func TestFileStoreTrimsOversizedHistory(t *testing.T) {
	st, _ := newTestFileStore(t)
	ctx := context.Background()

	rec := models.NewUserRecord(time.Now().UTC())
	for i := 0; i < models.MaxActionHistory+20; i++ {
		rec.Actions = append(rec.Actions, models.ActionRecord{
			Type: "calculator_use", Amount: 1, Timestamp: time.Now().UTC(),
		})
	}
	require.NoError(t, st.SaveUser(ctx, "alice", rec))

	got, err := st.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, got.Actions, models.MaxActionHistory)
}
