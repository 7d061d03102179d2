package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reselltrack/reselltrack_pro_be/internal/models"
)

// ProductStore is a thin adapter over the products table. List only ever
// returns live rows (soft-deleted rows stay in the table but are excluded),
// newest first. Failures propagate immediately; there are no retries.
type ProductStore struct {
	DB *gorm.DB
}

func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{DB: db}
}

func (s *ProductStore) List(ctx context.Context, ownerID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *ProductStore) Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.DB.WithContext(ctx).
		First(&product, "id = ? AND user_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductStore) Create(ctx context.Context, p *models.Product) error {
	if err := s.DB.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (s *ProductStore) Save(ctx context.Context, p *models.Product) error {
	if err := s.DB.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("save product: %w", err)
	}
	return nil
}

// SoftDelete stamps the row's deleted_at; the row remains queryable via
// Unscoped but disappears from every listing.
func (s *ProductStore) SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *ProductStore) CountLive(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("user_id = ?", ownerID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}
