package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CategoriesName   string    `gorm:"size:100;not null" json:"categories_name"`
	CategoriesStatus string    `gorm:"size:100" json:"categories_status"`

	MenuFoodItems []*MenuFoodItem `gorm:"foreignKey:CategoryID"`
	Timestamp
}

type MenuFoodItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID      *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	FoodName        string          `gorm:"size:100;not null" json:"food_name"`
	FoodDescription string          `json:"food_description"`
	FoodStatus      string          `gorm:"size:50" json:"food_status"` // "Active", "Inactive"
	Image           string          `json:"image,omitempty"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,2)" json:"unit_price"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Timestamp
}
