package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weatherfav/internal/database/dbtest"
	"github.com/weatherfav/internal/models"
	"github.com/weatherfav/internal/repository"
	"gorm.io/gorm"
)

func setupFavorites(t *testing.T) (*repository.FavoriteRepository, uint) {
	t.Helper()
	_, repo, userID := setupFavoritesDB(t)
	return repo, userID
}

func setupFavoritesDB(t *testing.T) (*gorm.DB, *repository.FavoriteRepository, uint) {
	t.Helper()
	client := dbtest.New(t)
	user := newUser(t, repository.NewUserRepository(client.DB), "alice")
	return client.DB, repository.NewFavoriteRepository(client.DB), user.ID
}

func locations(favs []models.Favorite) []string {
	out := make([]string, 0, len(favs))
	for _, f := range favs {
		out = append(out, f.Location)
	}
	return out
}

func TestFavoriteRepository_CreateAndList(t *testing.T) {
	repo, userID := setupFavorites(t)
	ctx := context.Background()

	for _, loc := range []string{"Boston", "NYC", "LA"} {
		require.NoError(t, repo.Create(ctx, &models.Favorite{UserID: userID, Location: loc}))
	}

	favs, err := repo.ListByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Boston", "NYC", "LA"}, locations(favs))
	for _, f := range favs {
		assert.NotZero(t, f.ID)
		assert.False(t, f.CreatedAt.IsZero())
	}

	other, err := repo.ListByUserID(ctx, userID+1)
	require.NoError(t, err)
	assert.NotNil(t, other)
	assert.Empty(t, other)
}

func TestFavoriteRepository_Duplicate(t *testing.T) {
	repo, userID := setupFavorites(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Favorite{UserID: userID, Location: "Boston"}))
	err := repo.Create(ctx, &models.Favorite{UserID: userID, Location: "Boston"})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	favs, err := repo.ListByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, favs, 1)
}

func TestFavoriteRepository_UnknownOwner(t *testing.T) {
	repo, userID := setupFavorites(t)

	err := repo.Create(context.Background(), &models.Favorite{UserID: userID + 42, Location: "Boston"})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestFavoriteRepository_ConcurrentDuplicateInserts(t *testing.T) {
	repo, userID := setupFavorites(t)
	ctx := context.Background()

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		dupes     int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.Create(ctx, &models.Favorite{UserID: userID, Location: "Boston"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if assert.ErrorIs(t, err, repository.ErrDuplicateKey) {
				dupes++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, dupes)
}

func TestFavoriteRepository_UpdateLocation(t *testing.T) {
	db, repo, userID := setupFavoritesDB(t)
	ctx := context.Background()

	nyc := &models.Favorite{UserID: userID, Location: "NYC"}
	require.NoError(t, repo.Create(ctx, nyc))
	require.NoError(t, repo.Create(ctx, &models.Favorite{UserID: userID, Location: "Boston"}))

	// age the row so a refreshed updated_at is distinguishable from the original
	stale := time.Now().Add(-time.Hour).UTC()
	require.NoError(t, db.Model(&models.Favorite{}).Where("id = ?", nyc.ID).UpdateColumn("updated_at", stale).Error)

	require.NoError(t, repo.UpdateLocation(ctx, userID, "NYC", "LA"))

	after, err := repo.ListByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"LA", "Boston"}, locations(after))
	assert.Equal(t, nyc.ID, after[0].ID, "updated in place")
	assert.True(t, after[0].UpdatedAt.After(stale.Add(time.Minute)), "updated_at refreshed, got %v", after[0].UpdatedAt)
	assert.WithinDuration(t, nyc.CreatedAt, after[0].CreatedAt, time.Second, "created_at untouched")

	assert.ErrorIs(t, repo.UpdateLocation(ctx, userID, "Paris", "Rome"), repository.ErrFavoriteNotFound)
	assert.ErrorIs(t, repo.UpdateLocation(ctx, userID, "LA", "Boston"), repository.ErrDuplicateKey)
}

func TestFavoriteRepository_DeleteAndClear(t *testing.T) {
	repo, userID := setupFavorites(t)
	ctx := context.Background()

	n, err := repo.DeleteByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, n, "clearing nothing is fine")

	require.NoError(t, repo.Create(ctx, &models.Favorite{UserID: userID, Location: "NYC"}))
	require.NoError(t, repo.Create(ctx, &models.Favorite{UserID: userID, Location: "LA"}))

	require.NoError(t, repo.Delete(ctx, userID, "NYC"))
	assert.ErrorIs(t, repo.Delete(ctx, userID, "NYC"), repository.ErrFavoriteNotFound)

	n, err = repo.DeleteByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	favs, err := repo.ListByUserID(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestFavoriteRepository_CreateForActiveUser(t *testing.T) {
	client := dbtest.New(t)
	users := repository.NewUserRepository(client.DB)
	favorites := repository.NewFavoriteRepository(client.DB)
	ctx := context.Background()

	alice := newUser(t, users, "alice")

	fav := &models.Favorite{UserID: alice.ID, Location: "NYC"}
	require.NoError(t, favorites.CreateForActiveUser(ctx, fav))
	assert.NotZero(t, fav.ID)

	err := favorites.CreateForActiveUser(ctx, &models.Favorite{UserID: alice.ID, Location: "NYC"})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)

	require.NoError(t, users.SoftDelete(ctx, alice.ID))

	// the row still exists, so only the active-owner check can refuse this
	err = favorites.CreateForActiveUser(ctx, &models.Favorite{UserID: alice.ID, Location: "LA"})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	err = favorites.CreateForActiveUser(ctx, &models.Favorite{UserID: alice.ID + 50, Location: "LA"})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	left, err := favorites.ListByUserID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}
