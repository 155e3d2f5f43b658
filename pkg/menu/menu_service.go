package menu

import (
	"FlashFoodDelivery/domain"
	"FlashFoodDelivery/entities"
	"FlashFoodDelivery/internal/utils/storage"
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"strings"
)

type (
	MenuService interface {
		AddCategory(ctx context.Context, req domain.AddCategoryRequest) (domain.CategoryResponse, error)
		GetCategories(ctx context.Context) ([]domain.CategoryResponse, error)
		AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest) (domain.FoodItemResponse, error)
		UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest) (domain.FoodItemResponse, error)
		GetFoodItemByID(ctx context.Context, id string) (domain.FoodItemResponse, error)
		GetFoodItems(ctx context.Context, categoryID string) ([]domain.FoodItemResponse, error)
		UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest) (domain.FoodItemResponse, error)
	}

	menuService struct {
		menuRepository MenuRepository
		s3             storage.AwsS3
	}
)

func NewMenuService(menuRepository MenuRepository, s3 storage.AwsS3) MenuService {
	return &menuService{
		menuRepository: menuRepository,
		s3:             s3,
	}
}

func (s *menuService) AddCategory(ctx context.Context, req domain.AddCategoryRequest) (domain.CategoryResponse, error) {
	name := strings.TrimSpace(req.CategoriesName)
	if name == "" {
		return domain.CategoryResponse{}, domain.ErrInvalidCategoryName
	}

	status := req.CategoriesStatus
	if status == "" {
		status = domain.CategoryStatusActive
	}

	category := &entities.Category{
		ID:               uuid.New(),
		CategoriesName:   name,
		CategoriesStatus: status,
	}
	if err := s.menuRepository.CreateCategory(ctx, category); err != nil {
		return domain.CategoryResponse{}, err
	}

	return toCategoryResponse(category), nil
}

func (s *menuService) GetCategories(ctx context.Context) ([]domain.CategoryResponse, error) {
	categories, err := s.menuRepository.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		result = append(result, toCategoryResponse(category))
	}
	return result, nil
}

func (s *menuService) AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest) (domain.FoodItemResponse, error) {
	name := strings.TrimSpace(req.FoodName)
	if name == "" {
		return domain.FoodItemResponse{}, domain.ErrInvalidFoodName
	}
	if req.UnitPrice.IsNegative() {
		return domain.FoodItemResponse{}, domain.ErrInvalidUnitPrice
	}

	status := req.FoodStatus
	if status == "" {
		status = domain.FoodStatusActive
	}
	if !validFoodStatus(status) {
		return domain.FoodItemResponse{}, domain.ErrInvalidFoodStatus
	}

	foodItem := &entities.MenuFoodItem{
		ID:              uuid.New(),
		FoodName:        name,
		FoodDescription: req.FoodDescription,
		FoodStatus:      status,
		UnitPrice:       req.UnitPrice,
	}

	if req.CategoryID != "" {
		categoryID, err := s.resolveCategory(ctx, req.CategoryID)
		if err != nil {
			return domain.FoodItemResponse{}, err
		}
		foodItem.CategoryID = &categoryID
	}

	if err := s.menuRepository.AddFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	return toFoodItemResponse(foodItem), nil
}

func (s *menuService) UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest) (domain.FoodItemResponse, error) {
	foodItem, err := s.getFoodItem(ctx, id)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	if req.FoodName != nil {
		name := strings.TrimSpace(*req.FoodName)
		if name == "" {
			return domain.FoodItemResponse{}, domain.ErrInvalidFoodName
		}
		foodItem.FoodName = name
	}

	if req.FoodDescription != nil {
		foodItem.FoodDescription = *req.FoodDescription
	}

	// existing order details keep their snapshot, only future orders see the new price
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return domain.FoodItemResponse{}, domain.ErrInvalidUnitPrice
		}
		foodItem.UnitPrice = *req.UnitPrice
	}

	if req.FoodStatus != nil {
		if !validFoodStatus(*req.FoodStatus) {
			return domain.FoodItemResponse{}, domain.ErrInvalidFoodStatus
		}
		foodItem.FoodStatus = *req.FoodStatus
	}

	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			foodItem.CategoryID = nil
		} else {
			categoryID, err := s.resolveCategory(ctx, *req.CategoryID)
			if err != nil {
				return domain.FoodItemResponse{}, err
			}
			foodItem.CategoryID = &categoryID
		}
	}

	if err := s.menuRepository.UpdateFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	return toFoodItemResponse(foodItem), nil
}

func (s *menuService) GetFoodItemByID(ctx context.Context, id string) (domain.FoodItemResponse, error) {
	foodItem, err := s.getFoodItem(ctx, id)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}
	return toFoodItemResponse(foodItem), nil
}

func (s *menuService) GetFoodItems(ctx context.Context, categoryID string) ([]domain.FoodItemResponse, error) {
	foodItems, err := s.menuRepository.GetFoodItems(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.FoodItemResponse, 0, len(foodItems))
	for _, foodItem := range foodItems {
		result = append(result, toFoodItemResponse(foodItem))
	}
	return result, nil
}

func (s *menuService) UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest) (domain.FoodItemResponse, error) {
	foodItem, err := s.getFoodItem(ctx, req.FoodItemID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	objectKey, err := s.s3.UploadFile(
		ctx,
		fmt.Sprintf("food-%s", foodItem.ID.String()),
		req.Image,
		"menu",
		storage.AllowImage...,
	)
	if err != nil {
		if errors.Is(err, storage.ErrFileTypeNotAllowed) {
			return domain.FoodItemResponse{}, domain.ErrInvalidImageFormat
		}
		return domain.FoodItemResponse{}, err
	}

	foodItem.Image = s.s3.GetPublicLinkKey(objectKey)
	if err := s.menuRepository.UpdateFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	return toFoodItemResponse(foodItem), nil
}

func (s *menuService) getFoodItem(ctx context.Context, id string) (*entities.MenuFoodItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrFoodItemNotFound
	}
	foodItem, err := s.menuRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodItemNotFound
		}
		return nil, err
	}
	return foodItem, nil
}

func (s *menuService) resolveCategory(ctx context.Context, id string) (uuid.UUID, error) {
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, domain.ErrParseUUID
	}
	if _, err := s.menuRepository.GetCategoryByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, domain.ErrCategoryNotFound
		}
		return uuid.Nil, err
	}
	return categoryID, nil
}

func validFoodStatus(status string) bool {
	return status == domain.FoodStatusActive || status == domain.FoodStatusInactive
}

func toCategoryResponse(category *entities.Category) domain.CategoryResponse {
	return domain.CategoryResponse{
		ID:               category.ID.String(),
		CategoriesName:   category.CategoriesName,
		CategoriesStatus: category.CategoriesStatus,
		CreatedAt:        category.CreatedAt,
	}
}

func toFoodItemResponse(foodItem *entities.MenuFoodItem) domain.FoodItemResponse {
	res := domain.FoodItemResponse{
		ID:              foodItem.ID.String(),
		FoodName:        foodItem.FoodName,
		FoodDescription: foodItem.FoodDescription,
		FoodStatus:      foodItem.FoodStatus,
		Image:           foodItem.Image,
		UnitPrice:       foodItem.UnitPrice,
		CreatedAt:       foodItem.CreatedAt,
	}
	if foodItem.CategoryID != nil {
		res.CategoryID = foodItem.CategoryID.String()
	}
	return res
}
