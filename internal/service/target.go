package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/AlchemistChaos/nt-2-sub001/internal/models"
	"github.com/AlchemistChaos/nt-2-sub001/internal/nutrition"
)

const targetCacheTTL = 5 * time.Minute

// TargetService runs the daily-target workflow: derive a recommendation from
// the user's biometrics and active goal, store it as a proposal, and flip it
// to accepted when the user confirms. Redis (optional) caches the accepted
// target for today.
type TargetService struct {
	db         *gorm.DB
	cache      *redis.Client
	goals      *GoalService
	biometrics *BiometricService
}

func NewTargetService(db *gorm.DB, cache *redis.Client, goals *GoalService, biometrics *BiometricService) *TargetService {
	return &TargetService{db: db, cache: cache, goals: goals, biometrics: biometrics}
}

// ProposeForDate derives a recommendation for the given date from the user's
// latest biometric, profile and active goal, then upserts it as the pending
// proposal. The previously accepted target for the date, if any, is left
// untouched until the new proposal is accepted.
func (s *TargetService) ProposeForDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.DailyTarget, *nutrition.Recommendation, error) {
	if userID == uuid.Nil {
		return nil, nil, ErrUnauthorized
	}

	bio, err := s.biometrics.Latest(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil, fmt.Errorf("no biometrics recorded: %w", nutrition.ErrInsufficientData)
	}
	if err != nil {
		return nil, nil, err
	}

	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil &&
		!errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("load profile: %w", err)
	}

	in := nutrition.EstimatorInput{
		WeightKg:      bio.WeightKg,
		Age:           profile.Age,
		Sex:           profile.Sex,
		ActivityLevel: profile.ActivityLevel,
	}
	if bio.HeightCm != nil {
		in.HeightCm = *bio.HeightCm
	}
	est, err := nutrition.EstimateEnergy(in)
	if err != nil {
		return nil, nil, err
	}

	var goalInput *nutrition.GoalInput
	var goalID *uuid.UUID
	goal, err := s.goals.ActiveGoal(ctx, userID)
	switch {
	case err == nil:
		goalInput = &nutrition.GoalInput{
			Type:           goal.GoalType,
			TargetWeightKg: goal.TargetWeightKg,
			TargetDate:     goal.TargetDate,
			DailyCalories:  goal.DailyCalories,
			DailyProteinG:  goal.DailyProteinG,
		}
		goalID = &goal.ID
	case errors.Is(err, ErrNotFound):
		// no active goal: maintenance defaults
	default:
		return nil, nil, err
	}

	rec, err := nutrition.Recommend(est, bio.WeightKg, goalInput, date)
	if err != nil {
		return nil, nil, err
	}

	target, err := s.ProposeTarget(ctx, userID, models.TargetDate(date), rec, goalID)
	if err != nil {
		return nil, nil, err
	}
	return target, &rec, nil
}

// ProposeTarget upserts the pending (unaccepted) proposal for (user, date)
// with the recommendation's values. Idempotent: re-running with the same
// inputs yields the same stored values, never an extra row.
func (s *TargetService) ProposeTarget(ctx context.Context, userID uuid.UUID, date string, rec nutrition.Recommendation, goalID *uuid.UUID) (*models.DailyTarget, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	var target models.DailyTarget
	err := withStoreRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			err := tx.Where("user_id = ? AND date = ? AND is_accepted = ?", userID, date, false).
				First(&target).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if errors.Is(err, gorm.ErrRecordNotFound) {
				target = models.DailyTarget{UserID: userID, Date: date}
			}
			target.GoalID = goalID
			target.CaloriesTarget = rec.DailyCalories
			target.ProteinTarget = rec.DailyProteinG
			target.CarbsTarget = rec.DailyCarbsG
			target.FatTarget = rec.DailyFatG
			target.Reasoning = rec.Reasoning
			target.IsAccepted = false
			return tx.Save(&target).Error
		})
	})
	if err != nil {
		return nil, fmt.Errorf("propose target: %w", err)
	}

	s.invalidateCache(ctx, userID, date)
	return &target, nil
}

// AcceptTarget marks the most recent pending proposal for (user, date) as
// accepted. Exclusive: any previously accepted row for the date has its
// acceptance revoked in the same transaction, so exactly one accepted row
// survives. Returns ErrNotFound when there is nothing pending to accept.
func (s *TargetService) AcceptTarget(ctx context.Context, userID uuid.UUID, date string) (*models.DailyTarget, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	var accepted models.DailyTarget
	err := withStoreRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var pending models.DailyTarget
			if err := tx.Where("user_id = ? AND date = ? AND is_accepted = ?", userID, date, false).
				Order("updated_at desc").
				First(&pending).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			// Revoke the superseded acceptance, if any.
			if err := tx.Model(&models.DailyTarget{}).
				Where("user_id = ? AND date = ? AND is_accepted = ?", userID, date, true).
				Update("is_accepted", false).Error; err != nil {
				return err
			}
			if err := tx.Model(&pending).Update("is_accepted", true).Error; err != nil {
				return err
			}
			accepted = pending
			accepted.IsAccepted = true
			return nil
		})
	})
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("no pending proposal for %s: %w", date, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("accept target: %w", err)
	}

	s.invalidateCache(ctx, userID, date)
	return &accepted, nil
}

// GetTodaysTarget returns the accepted target for now's calendar date, or
// ErrNotFound. Reads through the cache when Redis is configured.
func (s *TargetService) GetTodaysTarget(ctx context.Context, userID uuid.UUID, now time.Time) (*models.DailyTarget, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	date := models.TargetDate(now)

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, targetCacheKey(userID, date)).Bytes(); err == nil {
			var cached models.DailyTarget
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	var target models.DailyTarget
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND is_accepted = ?", userID, date, true).
		First(&target).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load today's target: %w", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(&target); err == nil {
			if err := s.cache.Set(ctx, targetCacheKey(userID, date), data, targetCacheTTL).Err(); err != nil {
				log.Printf("target cache set failed: %v", err)
			}
		}
	}
	return &target, nil
}

func (s *TargetService) invalidateCache(ctx context.Context, userID uuid.UUID, date string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, targetCacheKey(userID, date)).Err(); err != nil {
		log.Printf("target cache invalidation failed: %v", err)
	}
}

func targetCacheKey(userID uuid.UUID, date string) string {
	return fmt.Sprintf("daily_target:%s:%s", userID, date)
}
