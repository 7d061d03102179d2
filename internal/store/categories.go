package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/reselltrack/reselltrack_pro_be/internal/models"
)

type CategoryStore struct {
	DB *gorm.DB
}

func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{DB: db}
}

func (s *CategoryStore) ListActive(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.DB.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

var defaultCategories = []models.Category{
	{Name: "Clothing", Icon: "shirt", Color: "#3b82f6", Active: true},
	{Name: "Shoes", Icon: "footprints", Color: "#8b5cf6", Active: true},
	{Name: "Electronics", Icon: "cpu", Color: "#f59e0b", Active: true},
	{Name: "Collectibles", Icon: "gem", Color: "#10b981", Active: true},
	{Name: "Home & Garden", Icon: "sofa", Color: "#ef4444", Active: true},
	{Name: "Books & Media", Icon: "book", Color: "#6366f1", Active: true},
	{Name: "Toys & Games", Icon: "gamepad", Color: "#ec4899", Active: true},
	{Name: "Other", Icon: "package", Color: "#64748b", Active: true},
}

// Seed inserts the default category list if the table is empty.
func (s *CategoryStore) Seed(ctx context.Context) error {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&models.Category{}).Count(&n).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	if n > 0 {
		return nil
	}
	if err := s.DB.WithContext(ctx).Create(&defaultCategories).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	return nil
}
