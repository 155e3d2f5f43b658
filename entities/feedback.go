package entities

import (
	"github.com/google/uuid"
)

type FeedBack struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CommentMsg string    `gorm:"size:100;not null" json:"comment_msg"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	UserID     string    `gorm:"type:varchar(450);not null" json:"user_id"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}
