package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reselltrack/reselltrack_pro_be/internal/models"
)

type MeetingStore struct {
	DB *gorm.DB
}

func NewMeetingStore(db *gorm.DB) *MeetingStore {
	return &MeetingStore{DB: db}
}

func (s *MeetingStore) List(ctx context.Context, ownerID uuid.UUID) ([]models.Meeting, error) {
	var meetings []models.Meeting
	err := s.DB.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", ownerID).
		Order("meeting_date ASC, meeting_time ASC").
		Find(&meetings).Error
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	return meetings, nil
}

func (s *MeetingStore) Get(ctx context.Context, ownerID, id uuid.UUID) (*models.Meeting, error) {
	var meeting models.Meeting
	err := s.DB.WithContext(ctx).
		Preload("Product").
		First(&meeting, "id = ? AND user_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &meeting, nil
}

func (s *MeetingStore) Create(ctx context.Context, m *models.Meeting) error {
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create meeting: %w", err)
	}
	return nil
}

func (s *MeetingStore) Save(ctx context.Context, m *models.Meeting) error {
	if err := s.DB.WithContext(ctx).Save(m).Error; err != nil {
		return fmt.Errorf("save meeting: %w", err)
	}
	return nil
}

func (s *MeetingStore) SoftDelete(ctx context.Context, ownerID, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Delete(&models.Meeting{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete meeting: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *MeetingStore) CountLive(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).
		Model(&models.Meeting{}).
		Where("user_id = ?", ownerID).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count meetings: %w", err)
	}
	return n, nil
}
