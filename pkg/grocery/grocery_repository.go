package grocery

import (
	"context"

	"freshtrack-backend/domain"
	"freshtrack-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	GroceryRepository interface {
		GetByIDAndOwner(ctx context.Context, id, userID uuid.UUID) (*entities.GroceryItem, error)
		GetByID(ctx context.Context, id uuid.UUID) (*entities.GroceryItem, error)
		List(ctx context.Context, userID uuid.UUID, filter domain.GroceryListFilter) ([]*entities.GroceryItem, error)
		ListAll(ctx context.Context, userID uuid.UUID) ([]*entities.GroceryItem, error)
		Create(ctx context.Context, item *entities.GroceryItem) error
		Save(ctx context.Context, item *entities.GroceryItem) error
		Delete(ctx context.Context, item *entities.GroceryItem) error
		DeleteByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error)

		// RunInTx runs fn against a repository bound to one transaction. The
		// transaction commits when fn returns nil and rolls back otherwise.
		RunInTx(ctx context.Context, fn func(tx GroceryRepository) error) error
	}

	groceryRepository struct {
		db *gorm.DB
	}
)

func NewGroceryRepository(db *gorm.DB) GroceryRepository {
	return &groceryRepository{db: db}
}

func (r *groceryRepository) GetByIDAndOwner(ctx context.Context, id, userID uuid.UUID) (*entities.GroceryItem, error) {
	var item entities.GroceryItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *groceryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.GroceryItem, error) {
	var item entities.GroceryItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *groceryRepository) List(ctx context.Context, userID uuid.UUID, filter domain.GroceryListFilter) ([]*entities.GroceryItem, error) {
	var items []*entities.GroceryItem

	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if !filter.IncludeConsumed {
		query = query.Where("is_consumed = ?", false)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.StorageLocation != "" {
		query = query.Where("storage_location = ?", filter.StorageLocation)
	}

	if err := query.
		Order("purchase_date desc").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (r *groceryRepository) ListAll(ctx context.Context, userID uuid.UUID) ([]*entities.GroceryItem, error) {
	var items []*entities.GroceryItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("purchase_date desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *groceryRepository) Create(ctx context.Context, item *entities.GroceryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *groceryRepository) Save(ctx context.Context, item *entities.GroceryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *groceryRepository) Delete(ctx context.Context, item *entities.GroceryItem) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", item.ID, item.UserID).
		Delete(&entities.GroceryItem{}).Error
}

func (r *groceryRepository) DeleteByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&entities.GroceryItem{})
	return res.RowsAffected, res.Error
}

func (r *groceryRepository) RunInTx(ctx context.Context, fn func(tx GroceryRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&groceryRepository{db: tx})
	})
}
