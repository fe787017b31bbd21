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

// GoalService owns goal activation. Activation is a single transactional
// "replace active goal" so there is never a window with zero or two active
// goals for a user.
type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

// ReplaceActiveGoal deactivates every active goal the user has and inserts
// goal as the new active one, atomically. Returns the stored goal.
func (s *GoalService) ReplaceActiveGoal(ctx context.Context, userID uuid.UUID, goal *models.Goal) (*models.Goal, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if !goal.GoalType.Valid() {
		return nil, fmt.Errorf("goal type %q: %w", goal.GoalType, nutrition.ErrInvalidGoal)
	}

	goal.UserID = userID
	goal.IsActive = true

	err := withStoreRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Goal{}).
				Where("user_id = ? AND is_active = ?", userID, true).
				Update("is_active", false).Error; err != nil {
				return err
			}
			return tx.Create(goal).Error
		})
	})
	if err != nil {
		return nil, fmt.Errorf("replace active goal: %w", err)
	}
	return goal, nil
}

// ActiveGoal returns the user's active goal, or ErrNotFound when none exists.
func (s *GoalService) ActiveGoal(ctx context.Context, userID uuid.UUID) (*models.Goal, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	var goal models.Goal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load active goal: %w", err)
	}
	return &goal, nil
}

// ListGoals returns all of the user's goals, newest first.
func (s *GoalService) ListGoals(ctx context.Context, userID uuid.UUID) ([]models.Goal, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	var goals []models.Goal
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}
