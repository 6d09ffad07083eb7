package entities

import (
	"time"

	"github.com/google/uuid"
)

type GroceryItem struct {
	ID                      uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID                  uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Name                    string     `gorm:"type:varchar(255);not null" json:"name"`
	Category                string     `gorm:"type:varchar(50);not null;index" json:"category"`
	StorageLocation         string     `gorm:"type:varchar(50);not null" json:"storage_location"`
	Quantity                float64    `gorm:"not null;default:1" json:"quantity"`
	Unit                    string     `gorm:"type:varchar(20);not null;default:'piece'" json:"unit"`
	PurchaseDate            time.Time  `gorm:"not null;index" json:"purchase_date"`
	ExpirationDate          *time.Time `json:"expiration_date,omitempty"`
	PredictedExpirationDate *time.Time `json:"predicted_expiration_date,omitempty"`
	ConfidenceScore         *float64   `json:"confidence_score,omitempty"`
	Barcode                 *string    `gorm:"type:varchar(50)" json:"barcode,omitempty"`
	Notes                   *string    `gorm:"type:text" json:"notes,omitempty"`
	ImageURL                *string    `gorm:"type:varchar(500)" json:"image_url,omitempty"`
	ExternalProductID       *string    `gorm:"type:varchar(100)" json:"external_product_id,omitempty"`
	IsConsumed              bool       `gorm:"not null;default:false" json:"is_consumed"`
	ConsumedDate            *time.Time `json:"consumed_date,omitempty"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}
