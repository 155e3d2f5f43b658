package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
)

type Order struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Address       string          `gorm:"size:100" json:"address"`
	MemberID      *string         `gorm:"type:varchar(450);index" json:"member_id,omitempty"`
	OrderDate     time.Time       `json:"order_date"`
	RequiredDate  *time.Time      `json:"required_date,omitempty"`
	ShippedDate   *time.Time      `json:"shipped_date,omitempty"`
	DeliveredDate *time.Time      `json:"delivered_date,omitempty"`
	ShipperID     *string         `gorm:"type:varchar(450)" json:"shipper_id,omitempty"`
	StatusOrder   string          `gorm:"size:50" json:"status_order"`
	StatusSeq     int             `gorm:"not null;default:0" json:"-"` // sequence of the ledger entry StatusOrder mirrors
	TotalPrice    decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_price"`

	Member        *User              `gorm:"foreignKey:MemberID;constraint:OnDelete:SET NULL" json:"-"`
	Shipper       *User              `gorm:"foreignKey:ShipperID;constraint:OnDelete:SET NULL" json:"-"`
	OrderDetails  []*OrderDetail     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_details,omitempty"`
	OrderStatuses []*OrderStatus     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_statuses,omitempty"`
	FeedBacks     []*FeedBack        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	Transactions  []*TransactionBill `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

// OrderDetail is keyed by (OrderID, FoodID); UnitPrice is the catalog price at order time.
type OrderDetail struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"order_id"`
	FoodID    uuid.UUID       `gorm:"type:uuid;primaryKey" json:"food_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2)" json:"unit_price"`

	Food *MenuFoodItem `gorm:"foreignKey:FoodID" json:"food,omitempty"`
}

// OrderStatus is one entry of the append-only status ledger of an order.
type OrderStatus struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_status_seq" json:"order_id"`
	Seq             int       `gorm:"not null;uniqueIndex:idx_order_status_seq" json:"seq"`
	OrderStatusName string    `gorm:"size:128;not null" json:"order_status_name"`
	ShipperID       *string   `gorm:"type:varchar(450)" json:"shipper_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
