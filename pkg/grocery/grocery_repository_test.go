package grocery

import (
	"context"
	"errors"
	"testing"
	"time"

	"freshtrack-backend/domain"
	"freshtrack-backend/entities"
	"freshtrack-backend/internal/testhelper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	now := time.Now().UTC()
	user := entities.User{
		ID:        uuid.New(),
		Email:     uuid.NewString() + "@example.com",
		IsActive:  true,
		Timestamp: entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func TestGroceryRepository_Postgres(t *testing.T) {
	db := testhelper.SetupTestDB(t)
	repo := NewGroceryRepository(db)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	owner := seedUser(t, db)
	other := seedUser(t, db)

	item := newItem(uuid.New(), owner, milk(nil), now)
	require.NoError(t, repo.Create(ctx, item))

	_, err := repo.GetByIDAndOwner(ctx, item.ID, other)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	got, err := repo.GetByIDAndOwner(ctx, item.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "gallon", got.Unit)

	list, err := repo.List(ctx, owner, domain.GroceryListFilter{Category: domain.CategoryDairy, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	n, err := repo.DeleteByIDs(ctx, other, []uuid.UUID{item.ID})
	require.NoError(t, err)
	assert.Zero(t, n)

	t.Run("transaction rolls back", func(t *testing.T) {
		boom := errors.New("boom")
		err := repo.RunInTx(ctx, func(tx GroceryRepository) error {
			if _, err := tx.DeleteByIDs(ctx, owner, []uuid.UUID{item.ID}); err != nil {
				return err
			}
			if err := tx.Create(ctx, newItem(uuid.New(), owner, milk(nil), now)); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		all, err := repo.ListAll(ctx, owner)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, item.ID, all[0].ID)
	})

	t.Run("sync against postgres", func(t *testing.T) {
		svc := NewGroceryService(repo, nil)
		update := milk(ptr(item.ID.String()))
		update.Quantity = ptr(0.25)

		res, err := svc.SyncGroceries(ctx, domain.GrocerySyncRequest{
			Items: []domain.GroceryItemRequest{update, milk(nil)},
		}, owner.String())
		require.NoError(t, err)
		require.Len(t, res.Items, 2)

		synced, err := repo.GetByIDAndOwner(ctx, item.ID, owner)
		require.NoError(t, err)
		assert.Equal(t, 0.25, synced.Quantity)
		assert.True(t, synced.CreatedAt.Equal(item.CreatedAt))
	})
}
