package grocery

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"
	"unicode/utf8"

	"freshtrack-backend/domain"
	"freshtrack-backend/entities"
	"freshtrack-backend/internal/utils/storage"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const imageFolder = "grocery-items"

type (
	GroceryService interface {
		ListGroceries(ctx context.Context, filter domain.GroceryListFilter, userID string) ([]domain.GroceryItemResponse, error)
		CreateGrocery(ctx context.Context, req domain.GroceryItemRequest, userID string) (domain.GroceryItemResponse, error)
		GetGrocery(ctx context.Context, id string, userID string) (domain.GroceryItemResponse, error)
		UpdateGrocery(ctx context.Context, id string, req domain.UpdateGroceryItemRequest, userID string) (domain.GroceryItemResponse, error)
		DeleteGrocery(ctx context.Context, id string, userID string) error
		ConsumeGrocery(ctx context.Context, id string, userID string) (domain.GroceryItemResponse, error)
		UploadGroceryImage(ctx context.Context, id string, req domain.UploadGroceryImageRequest, userID string) (domain.GroceryItemResponse, error)
		SyncGroceries(ctx context.Context, req domain.GrocerySyncRequest, userID string) (domain.GrocerySyncResponse, error)
	}

	groceryService struct {
		groceryRepository GroceryRepository
		s3                storage.AwsS3
		now               func() time.Time
	}
)

func NewGroceryService(groceryRepository GroceryRepository, s3 storage.AwsS3) GroceryService {
	return &groceryService{
		groceryRepository: groceryRepository,
		s3:                s3,
		now:               time.Now,
	}
}

func (s *groceryService) ListGroceries(ctx context.Context, filter domain.GroceryListFilter, userID string) ([]domain.GroceryItemResponse, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	if filter.Limit == 0 {
		filter.Limit = domain.DefaultGroceryLimit
	}
	if filter.Limit < 1 || filter.Limit > domain.MaxGroceryLimit {
		return nil, domain.NewValidationError("limit", fmt.Sprintf("must be between 1 and %d", domain.MaxGroceryLimit))
	}
	if filter.Skip < 0 {
		return nil, domain.NewValidationError("skip", "must not be negative")
	}

	items, err := s.groceryRepository.List(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	return toResponses(items), nil
}

func (s *groceryService) CreateGrocery(ctx context.Context, req domain.GroceryItemRequest, userID string) (domain.GroceryItemResponse, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return domain.GroceryItemResponse{}, domain.ErrParseUUID
	}
	if err := ValidateItem(req, ""); err != nil {
		return domain.GroceryItemResponse{}, err
	}

	id, err := s.resolveCreateID(ctx, req.ID, ownerID)
	if err != nil {
		return domain.GroceryItemResponse{}, err
	}

	item := newItem(id, ownerID, req, s.now().UTC())
	if err := s.groceryRepository.Create(ctx, item); err != nil {
		return domain.GroceryItemResponse{}, err
	}
	return toResponse(item), nil
}

// resolveCreateID keeps a client-supplied UUID when nobody uses it yet.
func (s *groceryService) resolveCreateID(ctx context.Context, clientID *string, ownerID uuid.UUID) (uuid.UUID, error) {
	if clientID == nil {
		return uuid.New(), nil
	}
	id, err := uuid.Parse(*clientID)
	if err != nil {
		return uuid.New(), nil
	}

	existing, err := s.groceryRepository.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return id, nil
	}
	if err != nil {
		return uuid.Nil, err
	}
	if existing.UserID == ownerID {
		return uuid.Nil, domain.ErrGroceryItemExists
	}
	return uuid.New(), nil
}

func (s *groceryService) GetGrocery(ctx context.Context, id string, userID string) (domain.GroceryItemResponse, error) {
	item, err := s.findOwned(ctx, s.groceryRepository, id, userID)
	if err != nil {
		return domain.GroceryItemResponse{}, err
	}
	return toResponse(item), nil
}

func (s *groceryService) UpdateGrocery(ctx context.Context, id string, req domain.UpdateGroceryItemRequest, userID string) (domain.GroceryItemResponse, error) {
	item, err := s.findOwned(ctx, s.groceryRepository, id, userID)
	if err != nil {
		return domain.GroceryItemResponse{}, err
	}

	if req.Name != nil {
		if n := utf8.RuneCountInString(*req.Name); n < 1 || n > 255 {
			return domain.GroceryItemResponse{}, domain.NewValidationError("name", "must be between 1 and 255 characters")
		}
		item.Name = *req.Name
	}
	if req.Category != nil {
		if !domain.IsGroceryCategory(*req.Category) {
			return domain.GroceryItemResponse{}, domain.NewValidationError("category", "unknown category")
		}
		item.Category = *req.Category
	}
	if req.StorageLocation != nil {
		if !domain.IsStorageLocation(*req.StorageLocation) {
			return domain.GroceryItemResponse{}, domain.NewValidationError("storage_location", "unknown storage location")
		}
		item.StorageLocation = *req.StorageLocation
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0 {
			return domain.GroceryItemResponse{}, domain.NewValidationError("quantity", "must be greater than 0")
		}
		item.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		if utf8.RuneCountInString(*req.Unit) > 20 {
			return domain.GroceryItemResponse{}, domain.NewValidationError("unit", "must be at most 20 characters")
		}
		item.Unit = *req.Unit
	}
	if req.PurchaseDate != nil {
		item.PurchaseDate = *req.PurchaseDate
	}
	if req.ExpirationDate != nil {
		item.ExpirationDate = req.ExpirationDate
	}
	if req.PredictedExpirationDate != nil {
		item.PredictedExpirationDate = req.PredictedExpirationDate
	}
	if req.ConfidenceScore != nil {
		if *req.ConfidenceScore < 0 || *req.ConfidenceScore > 1 {
			return domain.GroceryItemResponse{}, domain.NewValidationError("confidence_score", "must be between 0 and 1")
		}
		item.ConfidenceScore = req.ConfidenceScore
	}
	if req.Barcode != nil {
		item.Barcode = req.Barcode
	}
	if req.Notes != nil {
		item.Notes = req.Notes
	}
	if req.IsConsumed != nil {
		item.IsConsumed = *req.IsConsumed
	}
	if req.ConsumedDate != nil {
		item.ConsumedDate = req.ConsumedDate
	}

	s.touch(item)
	if err := s.groceryRepository.Save(ctx, item); err != nil {
		return domain.GroceryItemResponse{}, err
	}
	return toResponse(item), nil
}

func (s *groceryService) DeleteGrocery(ctx context.Context, id string, userID string) error {
	item, err := s.findOwned(ctx, s.groceryRepository, id, userID)
	if err != nil {
		return err
	}

	if err := s.groceryRepository.Delete(ctx, item); err != nil {
		return err
	}

	if item.ImageURL != nil {
		if key := s.s3.GetObjectKeyFromLink(*item.ImageURL); key != "" {
			if err := s.s3.DeleteFile(ctx, key); err != nil {
				log.Warnw("failed to delete grocery image", "item_id", item.ID.String(), "error", err)
			}
		}
	}
	return nil
}

func (s *groceryService) ConsumeGrocery(ctx context.Context, id string, userID string) (domain.GroceryItemResponse, error) {
	item, err := s.findOwned(ctx, s.groceryRepository, id, userID)
	if err != nil {
		return domain.GroceryItemResponse{}, err
	}

	now := s.now().UTC()
	item.IsConsumed = true
	item.ConsumedDate = &now
	s.touch(item)

	if err := s.groceryRepository.Save(ctx, item); err != nil {
		return domain.GroceryItemResponse{}, err
	}
	return toResponse(item), nil
}

func (s *groceryService) UploadGroceryImage(ctx context.Context, id string, req domain.UploadGroceryImageRequest, userID string) (domain.GroceryItemResponse, error) {
	item, err := s.findOwned(ctx, s.groceryRepository, id, userID)
	if err != nil {
		return domain.GroceryItemResponse{}, err
	}
	if req.Image == nil {
		return domain.GroceryItemResponse{}, domain.NewValidationError("image", "is required")
	}

	var objectKey string
	var uploadErr error
	existingKey := ""
	if item.ImageURL != nil {
		existingKey = s.s3.GetObjectKeyFromLink(*item.ImageURL)
	}
	if existingKey != "" {
		objectKey, uploadErr = s.s3.UpdateFile(ctx, existingKey, req.Image, storage.AllowImage...)
	} else {
		objectKey, uploadErr = s.s3.UploadFile(ctx, "grocery-item-"+item.ID.String(), req.Image, imageFolder, storage.AllowImage...)
	}
	if uploadErr != nil {
		if errors.Is(uploadErr, storage.ErrFileTypeNotAllowed) {
			return domain.GroceryItemResponse{}, domain.ErrInvalidImageFormat
		}
		return domain.GroceryItemResponse{}, uploadErr
	}

	link := s.s3.GetPublicLinkKey(objectKey)
	item.ImageURL = &link
	s.touch(item)

	if err := s.groceryRepository.Save(ctx, item); err != nil {
		return domain.GroceryItemResponse{}, err
	}
	return toResponse(item), nil
}

// SyncGroceries merges a client batch into the user's items. Deletions run
// first and always win; submitted items then overwrite matching records in
// submission order. The whole batch commits or none of it does.
func (s *groceryService) SyncGroceries(ctx context.Context, req domain.GrocerySyncRequest, userID string) (domain.GrocerySyncResponse, error) {
	syncTimestamp := s.now().UTC()

	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return domain.GrocerySyncResponse{}, domain.ErrParseUUID
	}

	if err := ValidateItems(req.Items); err != nil {
		return domain.GrocerySyncResponse{}, err
	}

	deletedIDs := parseIDs(req.DeletedIDs)

	var items []*entities.GroceryItem
	err = s.groceryRepository.RunInTx(ctx, func(tx GroceryRepository) error {
		if _, err := tx.DeleteByIDs(ctx, ownerID, deletedIDs); err != nil {
			return err
		}

		// client id -> id assigned earlier in this batch
		assigned := make(map[string]uuid.UUID)

		for _, in := range req.Items {
			clientID := ""
			if in.ID != nil {
				clientID = *in.ID
			}
			if clientID != "" && isDeleted(clientID, deletedIDs) {
				continue
			}

			existing, err := s.lookupForSync(ctx, tx, clientID, assigned, ownerID)
			if err != nil {
				return err
			}

			if existing != nil {
				applyFull(existing, in)
				if syncTimestamp.After(existing.UpdatedAt) {
					existing.UpdatedAt = syncTimestamp
				}
				if err := tx.Save(ctx, existing); err != nil {
					return err
				}
				continue
			}

			item := newItem(uuid.New(), ownerID, in, syncTimestamp)
			if err := tx.Create(ctx, item); err != nil {
				return err
			}
			if clientID != "" {
				assigned[clientID] = item.ID
			}
		}

		items, err = tx.ListAll(ctx, ownerID)
		return err
	})
	if err != nil {
		return domain.GrocerySyncResponse{}, err
	}

	return domain.GrocerySyncResponse{
		Items:         toResponses(items),
		DeletedIDs:    []string{},
		SyncTimestamp: syncTimestamp,
	}, nil
}

// lookupForSync finds the record a submitted id addresses, scoped to owner.
func (s *groceryService) lookupForSync(ctx context.Context, tx GroceryRepository, clientID string, assigned map[string]uuid.UUID, ownerID uuid.UUID) (*entities.GroceryItem, error) {
	if clientID == "" {
		return nil, nil
	}

	id, ok := assigned[clientID]
	if !ok {
		parsed, err := uuid.Parse(clientID)
		if err != nil {
			return nil, nil
		}
		id = parsed
	}

	item, err := tx.GetByIDAndOwner(ctx, id, ownerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return item, err
}

func (s *groceryService) findOwned(ctx context.Context, repo GroceryRepository, id string, userID string) (*entities.GroceryItem, error) {
	ownerID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	itemID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrGroceryItemNotFound
	}

	item, err := repo.GetByIDAndOwner(ctx, itemID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGroceryItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// touch bumps updated_at without ever moving it backwards.
func (s *groceryService) touch(item *entities.GroceryItem) {
	now := s.now().UTC()
	if now.After(item.UpdatedAt) {
		item.UpdatedAt = now
	}
}

func parseIDs(raw []string) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		if id, err := uuid.Parse(r); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func isDeleted(clientID string, deleted []uuid.UUID) bool {
	id, err := uuid.Parse(clientID)
	if err != nil {
		return false
	}
	return slices.Contains(deleted, id)
}
