package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email                 string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	HashedPassword        *string    `gorm:"type:varchar(255)" json:"-"`
	FullName              *string    `gorm:"type:varchar(255)" json:"full_name,omitempty"`
	HouseholdSize         int        `gorm:"not null;default:2" json:"household_size"`
	CookingSkillLevel     int        `gorm:"not null;default:3" json:"cooking_skill_level"`
	DietaryRestrictions   []string   `gorm:"serializer:json;type:text" json:"dietary_restrictions"`
	Allergies             []string   `gorm:"serializer:json;type:text" json:"allergies"`
	PreferredCuisines     []string   `gorm:"serializer:json;type:text" json:"preferred_cuisines"`
	AppleUserID           *string    `gorm:"type:varchar(255);uniqueIndex" json:"-"`
	IsActive              bool       `gorm:"not null;default:true" json:"is_active"`
	IsVerified            bool       `gorm:"not null;default:false" json:"is_verified"`
	NotificationsEnabled  bool       `gorm:"not null;default:true" json:"notifications_enabled"`
	ExpirationWarningDays int        `gorm:"not null;default:3" json:"expiration_warning_days"`
	LastLoginAt           *time.Time `json:"last_login_at,omitempty"`

	GroceryItems []GroceryItem `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}
