package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AlchemistChaos/nt-2-sub001/internal/models"
	"github.com/AlchemistChaos/nt-2-sub001/internal/nutrition"
)

// BiometricService manages the append-only biometric history.
type BiometricService struct {
	db *gorm.DB
}

func NewBiometricService(db *gorm.DB) *BiometricService {
	return &BiometricService{db: db}
}

// Record stores a new immutable biometric entry.
func (s *BiometricService) Record(ctx context.Context, userID uuid.UUID, b *models.Biometric) (*models.Biometric, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if b.WeightKg <= 0 {
		return nil, fmt.Errorf("weight is required: %w", nutrition.ErrInsufficientData)
	}
	b.UserID = userID
	if err := withStoreRetry(func() error {
		return s.db.WithContext(ctx).Create(b).Error
	}); err != nil {
		return nil, fmt.Errorf("record biometric: %w", err)
	}
	return b, nil
}

// Latest returns the most recent biometric for the user, or ErrNotFound.
func (s *BiometricService) Latest(ctx context.Context, userID uuid.UUID) (*models.Biometric, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	var b models.Biometric
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_at desc").
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load latest biometric: %w", err)
	}
	return &b, nil
}

// History returns the user's biometrics most-recent-first.
func (s *BiometricService) History(ctx context.Context, userID uuid.UUID, limit int) ([]models.Biometric, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var list []models.Biometric
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_at desc").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list biometrics: %w", err)
	}
	return list, nil
}
