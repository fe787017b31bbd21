package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AlchemistChaos/nt-2-sub001/internal/models"
	"github.com/AlchemistChaos/nt-2-sub001/internal/nutrition"
	"github.com/AlchemistChaos/nt-2-sub001/internal/types"
)

// ProfileService handles the demographic profile behind the estimator.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile retrieves a user's profile.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	var profile models.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile applies the provided fields. Activity level changes are
// validated against the estimator's multiplier table.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != "" {
		profile.Username = *req.Username
	}
	if req.Age != nil {
		profile.Age = *req.Age
	}
	if req.Sex != nil {
		profile.Sex = *req.Sex
	}
	if req.ActivityLevel != nil {
		if _, ok := nutrition.ActivityMultipliers[*req.ActivityLevel]; !ok {
			return nil, fmt.Errorf("unknown activity level %q: %w", *req.ActivityLevel, ErrInvalidInput)
		}
		profile.ActivityLevel = *req.ActivityLevel
	}

	if err := withStoreRetry(func() error {
		return s.db.WithContext(ctx).Save(profile).Error
	}); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}
