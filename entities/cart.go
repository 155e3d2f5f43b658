package entities

import (
	"github.com/google/uuid"
)

type Cart struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   string    `gorm:"type:varchar(450);not null;index" json:"user_id"`
	FoodID   uuid.UUID `gorm:"type:uuid;not null" json:"food_id"`
	Quantity int       `gorm:"not null" json:"quantity"`

	User *User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Food *MenuFoodItem `gorm:"foreignKey:FoodID" json:"food,omitempty"`
	Timestamp
}
