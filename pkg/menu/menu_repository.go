package menu

import (
	"FlashFoodDelivery/entities"
	"FlashFoodDelivery/pkg/database"
	"context"
	"gorm.io/gorm"
)

type (
	MenuRepository interface {
		CreateCategory(ctx context.Context, category *entities.Category) error
		GetCategoryByID(ctx context.Context, id string) (*entities.Category, error)
		GetCategories(ctx context.Context) ([]*entities.Category, error)

		AddFoodItem(ctx context.Context, foodItem *entities.MenuFoodItem) error
		GetFoodItemByID(ctx context.Context, id string) (*entities.MenuFoodItem, error)
		GetFoodItemsByIDs(ctx context.Context, ids []string) ([]*entities.MenuFoodItem, error)
		GetFoodItems(ctx context.Context, categoryID string) ([]*entities.MenuFoodItem, error)
		UpdateFoodItem(ctx context.Context, foodItem *entities.MenuFoodItem) error
	}

	menuRepository struct {
		db *gorm.DB
	}
)

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) CreateCategory(ctx context.Context, category *entities.Category) error {
	return database.Conn(ctx, r.db).Create(category).Error
}

func (r *menuRepository) GetCategoryByID(ctx context.Context, id string) (*entities.Category, error) {
	var category entities.Category
	if err := database.Conn(ctx, r.db).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *menuRepository) GetCategories(ctx context.Context) ([]*entities.Category, error) {
	var categories []*entities.Category
	if err := database.Conn(ctx, r.db).Order("categories_name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *menuRepository) AddFoodItem(ctx context.Context, foodItem *entities.MenuFoodItem) error {
	return database.Conn(ctx, r.db).Omit("Category").Create(foodItem).Error
}

func (r *menuRepository) GetFoodItemByID(ctx context.Context, id string) (*entities.MenuFoodItem, error) {
	var foodItem entities.MenuFoodItem
	if err := database.Conn(ctx, r.db).Where("id = ?", id).First(&foodItem).Error; err != nil {
		return nil, err
	}
	return &foodItem, nil
}

// GetFoodItemsByIDs returns the items that exist; callers compare lengths to detect missing ids.
func (r *menuRepository) GetFoodItemsByIDs(ctx context.Context, ids []string) ([]*entities.MenuFoodItem, error) {
	var foodItems []*entities.MenuFoodItem
	if len(ids) == 0 {
		return foodItems, nil
	}
	if err := database.Conn(ctx, r.db).Where("id IN ?", ids).Find(&foodItems).Error; err != nil {
		return nil, err
	}
	return foodItems, nil
}

func (r *menuRepository) GetFoodItems(ctx context.Context, categoryID string) ([]*entities.MenuFoodItem, error) {
	var foodItems []*entities.MenuFoodItem

	query := database.Conn(ctx, r.db)
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	if err := query.Order("food_name asc").Find(&foodItems).Error; err != nil {
		return nil, err
	}
	return foodItems, nil
}

func (r *menuRepository) UpdateFoodItem(ctx context.Context, foodItem *entities.MenuFoodItem) error {
	return database.Conn(ctx, r.db).Omit("Category").Save(foodItem).Error
}
