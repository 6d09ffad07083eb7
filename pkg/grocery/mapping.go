package grocery

import (
	"fmt"
	"time"

	"freshtrack-backend/domain"
	"freshtrack-backend/entities"
	"freshtrack-backend/internal/utils"

	"github.com/google/uuid"
)

// ValidateItem checks one submitted item. prefix is prepended to field names.
func ValidateItem(req domain.GroceryItemRequest, prefix string) error {
	err := utils.ValidateStruct(req)
	if err == nil || prefix == "" {
		return err
	}

	verr, ok := err.(*domain.ValidationError)
	if !ok {
		return err
	}
	fields := make([]domain.FieldError, 0, len(verr.Errors))
	for _, fe := range verr.Errors {
		fields = append(fields, domain.FieldError{Field: prefix + fe.Field, Message: fe.Message})
	}
	return domain.NewValidationErrors(fields)
}

// ValidateItems rejects the whole batch if any item is invalid.
func ValidateItems(items []domain.GroceryItemRequest) error {
	var fields []domain.FieldError
	for i, item := range items {
		err := ValidateItem(item, fmt.Sprintf("items[%d].", i))
		if err == nil {
			continue
		}
		verr, ok := err.(*domain.ValidationError)
		if !ok {
			return err
		}
		fields = append(fields, verr.Errors...)
	}
	if len(fields) > 0 {
		return domain.NewValidationErrors(fields)
	}
	return nil
}

func newItem(id, ownerID uuid.UUID, req domain.GroceryItemRequest, now time.Time) *entities.GroceryItem {
	item := &entities.GroceryItem{
		ID:     id,
		UserID: ownerID,
		Timestamp: entities.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	applyFull(item, req)
	return item
}

// applyFull overwrites every client-owned field. Consumption state, image and
// timestamps are left alone.
func applyFull(item *entities.GroceryItem, req domain.GroceryItemRequest) {
	quantity := domain.DefaultGroceryQuantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	unit := domain.DefaultGroceryUnit
	if req.Unit != nil {
		unit = *req.Unit
	}

	item.Name = req.Name
	item.Category = req.Category
	item.StorageLocation = req.StorageLocation
	item.Quantity = quantity
	item.Unit = unit
	item.PurchaseDate = req.PurchaseDate
	item.ExpirationDate = req.ExpirationDate
	item.PredictedExpirationDate = req.PredictedExpirationDate
	item.ConfidenceScore = req.ConfidenceScore
	item.Barcode = req.Barcode
	item.Notes = req.Notes
}

func toResponse(item *entities.GroceryItem) domain.GroceryItemResponse {
	return domain.GroceryItemResponse{
		ID:                      item.ID.String(),
		UserID:                  item.UserID.String(),
		Name:                    item.Name,
		Category:                item.Category,
		StorageLocation:         item.StorageLocation,
		Quantity:                item.Quantity,
		Unit:                    item.Unit,
		PurchaseDate:            item.PurchaseDate,
		ExpirationDate:          item.ExpirationDate,
		PredictedExpirationDate: item.PredictedExpirationDate,
		ConfidenceScore:         item.ConfidenceScore,
		Barcode:                 item.Barcode,
		Notes:                   item.Notes,
		ImageURL:                item.ImageURL,
		IsConsumed:              item.IsConsumed,
		ConsumedDate:            item.ConsumedDate,
		CreatedAt:               item.CreatedAt,
		UpdatedAt:               item.UpdatedAt,
	}
}

func toResponses(items []*entities.GroceryItem) []domain.GroceryItemResponse {
	out := make([]domain.GroceryItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toResponse(item))
	}
	return out
}
