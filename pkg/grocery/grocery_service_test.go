package grocery

import (
	"context"
	"errors"
	"mime/multipart"
	"slices"
	"sort"
	"sync"
	"testing"
	"time"

	"freshtrack-backend/domain"
	"freshtrack-backend/entities"
	"freshtrack-backend/internal/utils/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryRepository keeps items in a map. RunInTx works on a copy that is
// only published when fn succeeds.
type memoryRepository struct {
	mu    *sync.Mutex
	items map[uuid.UUID]entities.GroceryItem

	failCreateAfter int
	creates         int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{mu: &sync.Mutex{}, items: map[uuid.UUID]entities.GroceryItem{}, failCreateAfter: -1}
}

func (r *memoryRepository) GetByIDAndOwner(_ context.Context, id, userID uuid.UUID) (*entities.GroceryItem, error) {
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*entities.GroceryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (r *memoryRepository) List(ctx context.Context, userID uuid.UUID, filter domain.GroceryListFilter) ([]*entities.GroceryItem, error) {
	all, _ := r.ListAll(ctx, userID)
	out := make([]*entities.GroceryItem, 0, len(all))
	for _, item := range all {
		if !filter.IncludeConsumed && item.IsConsumed {
			continue
		}
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		if filter.StorageLocation != "" && item.StorageLocation != filter.StorageLocation {
			continue
		}
		out = append(out, item)
	}
	if filter.Skip >= len(out) {
		return []*entities.GroceryItem{}, nil
	}
	out = out[filter.Skip:]
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *memoryRepository) ListAll(_ context.Context, userID uuid.UUID) ([]*entities.GroceryItem, error) {
	out := []*entities.GroceryItem{}
	for _, item := range r.items {
		if item.UserID == userID {
			cp := item
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PurchaseDate.After(out[j].PurchaseDate) })
	return out, nil
}

func (r *memoryRepository) Create(_ context.Context, item *entities.GroceryItem) error {
	if r.failCreateAfter >= 0 && r.creates >= r.failCreateAfter {
		return errors.New("insert failed")
	}
	r.creates++
	if _, exists := r.items[item.ID]; exists {
		return errors.New("duplicate key")
	}
	r.items[item.ID] = *item
	return nil
}

func (r *memoryRepository) Save(_ context.Context, item *entities.GroceryItem) error {
	r.items[item.ID] = *item
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, item *entities.GroceryItem) error {
	if existing, ok := r.items[item.ID]; ok && existing.UserID == item.UserID {
		delete(r.items, item.ID)
	}
	return nil
}

func (r *memoryRepository) DeleteByIDs(_ context.Context, userID uuid.UUID, ids []uuid.UUID) (int64, error) {
	var n int64
	for _, id := range ids {
		if item, ok := r.items[id]; ok && item.UserID == userID {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

func (r *memoryRepository) RunInTx(_ context.Context, fn func(tx GroceryRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &memoryRepository{
		mu:              r.mu,
		items:           make(map[uuid.UUID]entities.GroceryItem, len(r.items)),
		failCreateAfter: r.failCreateAfter,
		creates:         r.creates,
	}
	for k, v := range r.items {
		tx.items[k] = v
	}

	if err := fn(tx); err != nil {
		return err
	}
	r.items = tx.items
	r.creates = tx.creates
	return nil
}

type fakeS3 struct {
	uploaded []string
	deleted  []string
	err      error
}

func (f *fakeS3) UploadFile(_ context.Context, fileName string, _ *multipart.FileHeader, folder string, _ ...string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	key := folder + "/" + fileName + ".jpg"
	f.uploaded = append(f.uploaded, key)
	return key, nil
}

func (f *fakeS3) UpdateFile(_ context.Context, objectKey string, _ *multipart.FileHeader, _ ...string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.uploaded = append(f.uploaded, objectKey)
	return objectKey, nil
}

func (f *fakeS3) DeleteFile(_ context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeS3) GetObjectKeyFromLink(link string) string {
	return link[len("https://bucket.test/"):]
}

func (f *fakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.test/" + objectKey
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestService() (*groceryService, *memoryRepository, *fakeS3, *clock) {
	repo := newMemoryRepository()
	s3 := &fakeS3{}
	clk := &clock{t: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)}
	svc := NewGroceryService(repo, s3).(*groceryService)
	svc.now = clk.now
	return svc, repo, s3, clk
}

func ptr[T any](v T) *T { return &v }

var purchased = time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

func milk(id *string) domain.GroceryItemRequest {
	return domain.GroceryItemRequest{
		ID:              id,
		Name:            "Milk",
		Category:        domain.CategoryDairy,
		StorageLocation: domain.StorageRefrigerator,
		Quantity:        ptr(1.0),
		Unit:            ptr("gallon"),
		PurchaseDate:    purchased,
	}
}

func TestSyncGroceries_MilkEndToEnd(t *testing.T) {
	svc, _, _, _ := newTestService()
	userID := uuid.NewString()
	clientID := uuid.NewString()

	res, err := svc.SyncGroceries(context.Background(), domain.GrocerySyncRequest{
		Items:      []domain.GroceryItemRequest{milk(&clientID)},
		DeletedIDs: []string{},
	}, userID)
	require.NoError(t, err)

	require.Len(t, res.Items, 1)
	item := res.Items[0]
	assert.Equal(t, "Milk", item.Name)
	assert.Equal(t, domain.CategoryDairy, item.Category)
	assert.Equal(t, domain.StorageRefrigerator, item.StorageLocation)
	assert.Equal(t, 1.0, item.Quantity)
	assert.Equal(t, "gallon", item.Unit)
	assert.Equal(t, userID, item.UserID)
	assert.NotEqual(t, clientID, item.ID)
	assert.Equal(t, []string{}, res.DeletedIDs)
	assert.False(t, res.SyncTimestamp.IsZero())

	list, err := svc.ListGroceries(context.Background(), domain.GroceryListFilter{}, userID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSyncGroceries_LastWriteWinsKeepsCreatedAt(t *testing.T) {
	svc, _, _, clk := newTestService()
	userID := uuid.NewString()

	created, err := svc.CreateGrocery(context.Background(), milk(nil), userID)
	require.NoError(t, err)

	clk.advance(time.Hour)
	update := milk(&created.ID)
	update.Quantity = ptr(0.5)
	update.Notes = ptr("half left")

	res, err := svc.SyncGroceries(context.Background(), domain.GrocerySyncRequest{
		Items: []domain.GroceryItemRequest{update},
	}, userID)
	require.NoError(t, err)

	require.Len(t, res.Items, 1)
	got := res.Items[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 0.5, got.Quantity)
	assert.Equal(t, "half left", *got.Notes)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, res.SyncTimestamp, got.UpdatedAt)
}

func TestSyncGroceries_DeleteWinsOverUpdate(t *testing.T) {
	svc, _, _, _ := newTestService()
	userID := uuid.NewString()

	created, err := svc.CreateGrocery(context.Background(), milk(nil), userID)
	require.NoError(t, err)

	update := milk(&created.ID)
	update.Name = "Oat milk"

	res, err := svc.SyncGroceries(context.Background(), domain.GrocerySyncRequest{
		Items:      []domain.GroceryItemRequest{update},
		DeletedIDs: []string{created.ID},
	}, userID)
	require.NoError(t, err)
	assert.Empty(t, res.Items)

	_, err = svc.GetGrocery(context.Background(), created.ID, userID)
	assert.ErrorIs(t, err, domain.ErrGroceryItemNotFound)
}

func TestSyncGroceries_CrossUserIsolation(t *testing.T) {
	svc, _, _, _ := newTestService()
	owner := uuid.NewString()
	intruder := uuid.NewString()

	created, err := svc.CreateGrocery(context.Background(), milk(nil), owner)
	require.NoError(t, err)

	hijack := milk(&created.ID)
	hijack.Name = "Stolen"

	res, err := svc.SyncGroceries(context.Background(), domain.GrocerySyncRequest{
		Items:      []domain.GroceryItemRequest{hijack},
		DeletedIDs: []string{created.ID},
	}, intruder)
	require.NoError(t, err)

	require.Len(t, res.Items, 0, "an item whose id is in deleted_ids is skipped")

	res, err = svc.SyncGroceries(context.Background(), domain.GrocerySyncRequest{
		Items: []domain.GroceryItemRequest{hijack},
	}, intruder)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.NotEqual(t, created.ID, res.Items[0].ID)
	assert.Equal(t, intruder, res.Items[0].UserID)

	original, err := svc.GetGrocery(context.Background(), created.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "Milk", original.Name)
	assert.Equal(t, owner, original.UserID)
}

func TestSyncGroceries_InvalidItemWritesNothing(t *testing.T) {
	svc, repo, _, _ := newTestService()
	userID := uuid.NewString()

	created, err := svc.CreateGrocery(context.Background(), milk(nil), userID)
	require.NoError(t, err)

	bad := milk(nil)
	bad.Category = "Candy"

	_, err = svc.SyncGroceries(context.Background(), domain.GrocerySyncRequest{
		Items:      []domain.GroceryItemRequest{milk(nil), bad},
		DeletedIDs: []string{created.ID},
	}, userID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "items[1].category", verr.Errors[0].Field)

	assert.Len(t, repo.items, 1)
	_, err = svc.GetGrocery(context.Background(), created.ID, userID)
	assert.NoError(t, err)
}

func TestSyncGroceries_StoreFailureRollsBack(t *testing.T) {
	svc, repo, _, _ := newTestService()
	userID := uuid.NewString()

	created, err := svc.CreateGrocery(context.Background(), milk(nil), userID)
	require.NoError(t, err)
	repo.failCreateAfter = repo.creates + 1

	_, err = svc.SyncGroceries(context.Background(), domain.GrocerySyncRequest{
		Items:      []domain.GroceryItemRequest{milk(nil), milk(nil)},
		DeletedIDs: []string{created.ID},
	}, userID)
	require.Error(t, err)

	items, err := svc.ListGroceries(context.Background(), domain.GroceryListFilter{}, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, created.ID, items[0].ID)
}

func TestSyncGroceries_UnknownDeletedIDsAreIgnored(t *testing.T) {
	svc, _, _, _ := newTestService()
	userID := uuid.NewString()

	created, err := svc.CreateGrocery(context.Background(), milk(nil), userID)
	require.NoError(t, err)

	res, err := svc.SyncGroceries(context.Background(), domain.GrocerySyncRequest{
		DeletedIDs: []string{uuid.NewString(), "not-a-uuid"},
	}, userID)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, created.ID, res.Items[0].ID)
}

func TestSyncGroceries_DuplicateIDsLastWins(t *testing.T) {
	svc, _, _, _ := newTestService()
	userID := uuid.NewString()
	clientID := "local-1"

	first := milk(&clientID)
	second := milk(&clientID)
	second.Name = "Skim milk"

	res, err := svc.SyncGroceries(context.Background(), domain.GrocerySyncRequest{
		Items: []domain.GroceryItemRequest{first, second},
	}, userID)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Skim milk", res.Items[0].Name)
}

func TestSyncGroceries_EmptyBatchReturnsAllItems(t *testing.T) {
	svc, _, _, _ := newTestService()
	userID := uuid.NewString()

	consumed, err := svc.CreateGrocery(context.Background(), milk(nil), userID)
	require.NoError(t, err)
	_, err = svc.ConsumeGrocery(context.Background(), consumed.ID, userID)
	require.NoError(t, err)

	res, err := svc.SyncGroceries(context.Background(), domain.GrocerySyncRequest{}, userID)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.True(t, res.Items[0].IsConsumed)
}

func TestCreateGrocery_ClientIDHandling(t *testing.T) {
	svc, _, _, _ := newTestService()
	owner := uuid.NewString()
	other := uuid.NewString()
	clientID := uuid.NewString()

	created, err := svc.CreateGrocery(context.Background(), milk(&clientID), owner)
	require.NoError(t, err)
	assert.Equal(t, clientID, created.ID)
	assert.Equal(t, "gallon", created.Unit)

	_, err = svc.CreateGrocery(context.Background(), milk(&clientID), owner)
	assert.ErrorIs(t, err, domain.ErrGroceryItemExists)
	assert.True(t, errors.Is(err, domain.ErrConflict))

	foreign, err := svc.CreateGrocery(context.Background(), milk(&clientID), other)
	require.NoError(t, err)
	assert.NotEqual(t, clientID, foreign.ID)

	local := "offline-42"
	minted, err := svc.CreateGrocery(context.Background(), milk(&local), owner)
	require.NoError(t, err)
	_, err = uuid.Parse(minted.ID)
	assert.NoError(t, err)
}

func TestCreateGrocery_Defaults(t *testing.T) {
	svc, _, _, _ := newTestService()
	req := milk(nil)
	req.Quantity = nil
	req.Unit = nil

	created, err := svc.CreateGrocery(context.Background(), req, uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGroceryQuantity, created.Quantity)
	assert.Equal(t, domain.DefaultGroceryUnit, created.Unit)
	assert.False(t, created.IsConsumed)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestUpdateGrocery_Partial(t *testing.T) {
	svc, _, _, clk := newTestService()
	userID := uuid.NewString()

	created, err := svc.CreateGrocery(context.Background(), milk(nil), userID)
	require.NoError(t, err)

	clk.advance(time.Minute)
	updated, err := svc.UpdateGrocery(context.Background(), created.ID, domain.UpdateGroceryItemRequest{
		StorageLocation: ptr(domain.StorageFreezer),
	}, userID)
	require.NoError(t, err)
	assert.Equal(t, domain.StorageFreezer, updated.StorageLocation)
	assert.Equal(t, "Milk", updated.Name)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	_, err = svc.UpdateGrocery(context.Background(), created.ID, domain.UpdateGroceryItemRequest{
		Category: ptr("Candy"),
	}, userID)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.UpdateGrocery(context.Background(), created.ID, domain.UpdateGroceryItemRequest{}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrGroceryItemNotFound)
}

func TestListGroceries_Filters(t *testing.T) {
	svc, _, _, _ := newTestService()
	userID := uuid.NewString()

	_, err := svc.CreateGrocery(context.Background(), milk(nil), userID)
	require.NoError(t, err)

	bread := milk(nil)
	bread.Name = "Bread"
	bread.Category = domain.CategoryBakery
	bread.StorageLocation = domain.StoragePantry
	bread.PurchaseDate = purchased.Add(24 * time.Hour)
	b, err := svc.CreateGrocery(context.Background(), bread, userID)
	require.NoError(t, err)

	all, err := svc.ListGroceries(context.Background(), domain.GroceryListFilter{}, userID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Bread", all[0].Name)

	dairy, err := svc.ListGroceries(context.Background(), domain.GroceryListFilter{Category: domain.CategoryDairy}, userID)
	require.NoError(t, err)
	require.Len(t, dairy, 1)
	assert.Equal(t, "Milk", dairy[0].Name)

	_, err = svc.ConsumeGrocery(context.Background(), b.ID, userID)
	require.NoError(t, err)

	active, err := svc.ListGroceries(context.Background(), domain.GroceryListFilter{}, userID)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	withConsumed, err := svc.ListGroceries(context.Background(), domain.GroceryListFilter{IncludeConsumed: true, Limit: 1, Skip: 1}, userID)
	require.NoError(t, err)
	require.Len(t, withConsumed, 1)
	assert.Equal(t, "Milk", withConsumed[0].Name)

	_, err = svc.ListGroceries(context.Background(), domain.GroceryListFilter{Limit: 501}, userID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestConsumeGrocery(t *testing.T) {
	svc, _, _, clk := newTestService()
	userID := uuid.NewString()

	created, err := svc.CreateGrocery(context.Background(), milk(nil), userID)
	require.NoError(t, err)

	clk.advance(time.Hour)
	consumed, err := svc.ConsumeGrocery(context.Background(), created.ID, userID)
	require.NoError(t, err)
	assert.True(t, consumed.IsConsumed)
	require.NotNil(t, consumed.ConsumedDate)
	assert.Equal(t, clk.now(), *consumed.ConsumedDate)

	_, err = svc.ConsumeGrocery(context.Background(), "not-a-uuid", userID)
	assert.ErrorIs(t, err, domain.ErrGroceryItemNotFound)
}

func TestDeleteGrocery_RemovesImage(t *testing.T) {
	svc, repo, s3, _ := newTestService()
	userID := uuid.NewString()

	created, err := svc.CreateGrocery(context.Background(), milk(nil), userID)
	require.NoError(t, err)

	withImage, err := svc.UploadGroceryImage(context.Background(), created.ID, domain.UploadGroceryImageRequest{
		Image: &multipart.FileHeader{Filename: "milk.jpg"},
	}, userID)
	require.NoError(t, err)
	require.NotNil(t, withImage.ImageURL)
	assert.Equal(t, "https://bucket.test/grocery-items/grocery-item-"+created.ID+".jpg", *withImage.ImageURL)

	require.NoError(t, svc.DeleteGrocery(context.Background(), created.ID, userID))
	assert.Empty(t, repo.items)
	assert.True(t, slices.Contains(s3.deleted, "grocery-items/grocery-item-"+created.ID+".jpg"))

	assert.ErrorIs(t, svc.DeleteGrocery(context.Background(), created.ID, userID), domain.ErrGroceryItemNotFound)
}

func TestUploadGroceryImage_RejectsFileType(t *testing.T) {
	svc, _, s3, _ := newTestService()
	userID := uuid.NewString()

	created, err := svc.CreateGrocery(context.Background(), milk(nil), userID)
	require.NoError(t, err)

	s3.err = storage.ErrFileTypeNotAllowed
	_, err = svc.UploadGroceryImage(context.Background(), created.ID, domain.UploadGroceryImageRequest{
		Image: &multipart.FileHeader{Filename: "milk.gif"},
	}, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidImageFormat)
}
