package cart

import (
	"FlashFoodDelivery/entities"
	"FlashFoodDelivery/pkg/database"
	"context"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	CartRepository interface {
		AddCartRow(ctx context.Context, row *entities.Cart) error
		GetCartRowByID(ctx context.Context, userID string, id string) (*entities.Cart, error)
		GetCartRowByFood(ctx context.Context, userID string, foodID string) (*entities.Cart, error)
		GetCartRowsByUser(ctx context.Context, userID string) ([]*entities.Cart, error)
		LockCartRowsByUser(ctx context.Context, userID string) ([]*entities.Cart, error)
		UpdateCartRow(ctx context.Context, row *entities.Cart) error
		DeleteCartRows(ctx context.Context, userID string, ids []uuid.UUID) (int64, error)
	}

	cartRepository struct {
		db *gorm.DB
	}
)

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) AddCartRow(ctx context.Context, row *entities.Cart) error {
	return database.Conn(ctx, r.db).Omit("User", "Food").Create(row).Error
}

func (r *cartRepository) GetCartRowByID(ctx context.Context, userID string, id string) (*entities.Cart, error) {
	var row entities.Cart
	if err := database.Conn(ctx, r.db).
		Preload("Food").
		Where("id = ? AND user_id = ?", id, userID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *cartRepository) GetCartRowByFood(ctx context.Context, userID string, foodID string) (*entities.Cart, error) {
	var row entities.Cart
	if err := database.Conn(ctx, r.db).
		Where("user_id = ? AND food_id = ?", userID, foodID).
		Order("created_at asc").
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *cartRepository) GetCartRowsByUser(ctx context.Context, userID string) ([]*entities.Cart, error) {
	var rows []*entities.Cart
	if err := database.Conn(ctx, r.db).
		Preload("Food").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// LockCartRowsByUser reads the user's cart with FOR UPDATE. SQLite ignores the
// locking clause, which is why checkout also relies on DeleteCartRows' count.
func (r *cartRepository) LockCartRowsByUser(ctx context.Context, userID string) ([]*entities.Cart, error) {
	var rows []*entities.Cart
	if err := database.Conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *cartRepository) UpdateCartRow(ctx context.Context, row *entities.Cart) error {
	return database.Conn(ctx, r.db).
		Model(&entities.Cart{}).
		Where("id = ? AND user_id = ?", row.ID, row.UserID).
		Update("quantity", row.Quantity).Error
}

// DeleteCartRows deletes only the given rows owned by userID and reports how many went away.
func (r *cartRepository) DeleteCartRows(ctx context.Context, userID string, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := database.Conn(ctx, r.db).
		Where("id IN ? AND user_id = ?", ids, userID).
		Delete(&entities.Cart{})
	return res.RowsAffected, res.Error
}
