package domain

import (
	"errors"
	"fmt"
	"github.com/shopspring/decimal"
	"mime/multipart"
	"time"
)

const (
	FoodStatusActive   = "Active"
	FoodStatusInactive = "Inactive"

	CategoryStatusActive = "Active"
)

var (
	MessageSuccessAddCategory     = "category added successfully"
	MessageSuccessGetCategories   = "categories retrieved successfully"
	MessageSuccessAddFoodItem     = "food item added successfully"
	MessageSuccessUpdateFoodItem  = "food item updated successfully"
	MessageSuccessGetFoodItems    = "food items retrieved successfully"
	MessageSuccessUploadFoodImage = "food image uploaded successfully"

	MessageFailedAddCategory     = "failed to add category"
	MessageFailedGetCategories   = "failed to retrieve categories"
	MessageFailedAddFoodItem     = "failed to add food item"
	MessageFailedUpdateFoodItem  = "failed to update food item"
	MessageFailedGetFoodItems    = "failed to retrieve food items"
	MessageFailedUploadFoodImage = "failed to upload food image"

	ErrFoodItemNotFound    = fmt.Errorf("food item %w", ErrNotFound)
	ErrCategoryNotFound    = fmt.Errorf("category %w", ErrNotFound)
	ErrInvalidUnitPrice    = errors.New("unit price must not be negative")
	ErrInvalidCategoryName = errors.New("category name is required")
	ErrInvalidFoodName     = errors.New("food name is required")
	ErrInvalidFoodStatus   = errors.New("food status must be Active or Inactive")
	ErrInvalidImageFormat  = errors.New("invalid image format")
)

type (
	AddCategoryRequest struct {
		CategoriesName   string `json:"categories_name" validate:"required,max=100"`
		CategoriesStatus string `json:"categories_status" validate:"omitempty,max=100"`
	}

	CategoryResponse struct {
		ID               string    `json:"id"`
		CategoriesName   string    `json:"categories_name"`
		CategoriesStatus string    `json:"categories_status"`
		CreatedAt        time.Time `json:"created_at"`
	}

	AddFoodItemRequest struct {
		FoodName        string          `json:"food_name" validate:"required,max=100"`
		FoodDescription string          `json:"food_description" validate:"omitempty"`
		UnitPrice       decimal.Decimal `json:"unit_price"`
		FoodStatus      string          `json:"food_status" validate:"omitempty,oneof=Active Inactive"`
		CategoryID      string          `json:"category_id" validate:"omitempty,uuid"`
	}

	UpdateFoodItemRequest struct {
		FoodName        *string          `json:"food_name" validate:"omitempty,max=100"`
		FoodDescription *string          `json:"food_description"`
		UnitPrice       *decimal.Decimal `json:"unit_price"`
		FoodStatus      *string          `json:"food_status" validate:"omitempty,oneof=Active Inactive"`
		CategoryID      *string          `json:"category_id" validate:"omitempty,uuid"`
	}

	UploadFoodImageRequest struct {
		FoodItemID string                `json:"food_id" form:"food_id" validate:"required,uuid"`
		Image      *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	FoodItemResponse struct {
		ID              string          `json:"id"`
		CategoryID      string          `json:"category_id,omitempty"`
		FoodName        string          `json:"food_name"`
		FoodDescription string          `json:"food_description"`
		FoodStatus      string          `json:"food_status"`
		Image           string          `json:"image,omitempty"`
		UnitPrice       decimal.Decimal `json:"unit_price"`
		CreatedAt       time.Time       `json:"created_at"`
	}
)
