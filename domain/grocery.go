package domain

import (
	"fmt"
	"mime/multipart"
	"slices"
	"time"
)

const (
	CategoryDairy      = "Dairy"
	CategoryMeat       = "Meat"
	CategorySeafood    = "Seafood"
	CategoryProduce    = "Produce"
	CategoryBakery     = "Bakery"
	CategoryFrozen     = "Frozen"
	CategoryPantry     = "Pantry"
	CategoryBeverages  = "Beverages"
	CategoryCondiments = "Condiments"
	CategorySnacks     = "Snacks"
	CategoryOther      = "Other"

	StorageRefrigerator = "Refrigerator"
	StorageFreezer      = "Freezer"
	StoragePantry       = "Pantry"
	StorageCounter      = "Counter"

	DefaultGroceryUnit     = "piece"
	DefaultGroceryQuantity = 1.0
	DefaultGroceryLimit    = 100
	MaxGroceryLimit        = 500
)

var (
	GroceryCategories = []string{
		CategoryDairy, CategoryMeat, CategorySeafood, CategoryProduce, CategoryBakery, CategoryFrozen,
		CategoryPantry, CategoryBeverages, CategoryCondiments, CategorySnacks, CategoryOther,
	}
	StorageLocations = []string{StorageRefrigerator, StorageFreezer, StoragePantry, StorageCounter}
)

var (
	MessageSuccessCreateGrocery  = "grocery item created successfully"
	MessageSuccessUpdateGrocery  = "grocery item updated successfully"
	MessageSuccessDeleteGrocery  = "grocery item deleted successfully"
	MessageSuccessGetGroceries   = "grocery items retrieved successfully"
	MessageSuccessGetGrocery     = "grocery item retrieved successfully"
	MessageSuccessConsumeGrocery = "grocery item marked as consumed"
	MessageSuccessSyncGroceries  = "grocery items synchronized successfully"
	MessageSuccessUploadImage    = "grocery image uploaded successfully"

	MessageFailedCreateGrocery  = "failed to create grocery item"
	MessageFailedUpdateGrocery  = "failed to update grocery item"
	MessageFailedDeleteGrocery  = "failed to delete grocery item"
	MessageFailedGetGroceries   = "failed to retrieve grocery items"
	MessageFailedGetGrocery     = "failed to retrieve grocery item"
	MessageFailedConsumeGrocery = "failed to mark grocery item as consumed"
	MessageFailedSyncGroceries  = "failed to synchronize grocery items"
	MessageFailedUploadImage    = "failed to upload grocery image"

	ErrGroceryItemNotFound = fmt.Errorf("grocery item %w", ErrNotFound)
	ErrGroceryItemExists   = fmt.Errorf("grocery item id already in use: %w", ErrConflict)
	ErrInvalidImageFormat  = fmt.Errorf("invalid image format: %w", ErrValidation)
)

type (
	// GroceryItemRequest is the payload for create and for each sync item.
	GroceryItemRequest struct {
		ID                      *string    `json:"id"`
		Name                    string     `json:"name" validate:"required,min=1,max=255"`
		Category                string     `json:"category" validate:"required,grocery_category"`
		StorageLocation         string     `json:"storage_location" validate:"required,storage_location"`
		Quantity                *float64   `json:"quantity" validate:"omitempty,gt=0"`
		Unit                    *string    `json:"unit" validate:"omitempty,max=20"`
		PurchaseDate            time.Time  `json:"purchase_date" validate:"required"`
		ExpirationDate          *time.Time `json:"expiration_date"`
		PredictedExpirationDate *time.Time `json:"predicted_expiration_date"`
		ConfidenceScore         *float64   `json:"confidence_score" validate:"omitempty,gte=0,lte=1"`
		Barcode                 *string    `json:"barcode" validate:"omitempty,max=50"`
		Notes                   *string    `json:"notes"`
	}

	// UpdateGroceryItemRequest only changes the fields that are present.
	UpdateGroceryItemRequest struct {
		Name                    *string    `json:"name" validate:"omitempty,min=1,max=255"`
		Category                *string    `json:"category" validate:"omitempty,grocery_category"`
		StorageLocation         *string    `json:"storage_location" validate:"omitempty,storage_location"`
		Quantity                *float64   `json:"quantity" validate:"omitempty,gt=0"`
		Unit                    *string    `json:"unit" validate:"omitempty,max=20"`
		PurchaseDate            *time.Time `json:"purchase_date"`
		ExpirationDate          *time.Time `json:"expiration_date"`
		PredictedExpirationDate *time.Time `json:"predicted_expiration_date"`
		ConfidenceScore         *float64   `json:"confidence_score" validate:"omitempty,gte=0,lte=1"`
		Barcode                 *string    `json:"barcode" validate:"omitempty,max=50"`
		Notes                   *string    `json:"notes"`
		IsConsumed              *bool      `json:"is_consumed"`
		ConsumedDate            *time.Time `json:"consumed_date"`
	}

	GroceryItemResponse struct {
		ID                      string     `json:"id"`
		UserID                  string     `json:"user_id"`
		Name                    string     `json:"name"`
		Category                string     `json:"category"`
		StorageLocation         string     `json:"storage_location"`
		Quantity                float64    `json:"quantity"`
		Unit                    string     `json:"unit"`
		PurchaseDate            time.Time  `json:"purchase_date"`
		ExpirationDate          *time.Time `json:"expiration_date"`
		PredictedExpirationDate *time.Time `json:"predicted_expiration_date"`
		ConfidenceScore         *float64   `json:"confidence_score"`
		Barcode                 *string    `json:"barcode"`
		Notes                   *string    `json:"notes"`
		ImageURL                *string    `json:"image_url"`
		IsConsumed              bool       `json:"is_consumed"`
		ConsumedDate            *time.Time `json:"consumed_date"`
		CreatedAt               time.Time  `json:"created_at"`
		UpdatedAt               time.Time  `json:"updated_at"`
	}

	GroceryListFilter struct {
		Category        string `query:"category" validate:"omitempty,grocery_category"`
		StorageLocation string `query:"storage_location" validate:"omitempty,storage_location"`
		IncludeConsumed bool   `query:"include_consumed"`
		Skip            int    `query:"skip" validate:"gte=0"`
		Limit           int    `query:"limit" validate:"gte=1,lte=500"`
	}

	GrocerySyncRequest struct {
		Items      []GroceryItemRequest `json:"items"`
		DeletedIDs []string             `json:"deleted_ids"`
		LastSyncAt *time.Time           `json:"last_sync_at"`
	}

	GrocerySyncResponse struct {
		Items         []GroceryItemResponse `json:"items"`
		DeletedIDs    []string              `json:"deleted_ids"`
		SyncTimestamp time.Time             `json:"sync_timestamp"`
	}

	UploadGroceryImageRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}
)

func IsGroceryCategory(s string) bool {
	return slices.Contains(GroceryCategories, s)
}

func IsStorageLocation(s string) bool {
	return slices.Contains(StorageLocations, s)
}
