package service

import (
	"context"
	"fmt"

	"github.com/Amyat103/meal-max/internal/constants"
	"github.com/Amyat103/meal-max/internal/domain"
	"github.com/Amyat103/meal-max/internal/metrics"
	"github.com/Amyat103/meal-max/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type MealService struct {
	repo   *repository.MealRepository
	logger zerolog.Logger
}

func NewMealService(repo *repository.MealRepository, logger zerolog.Logger) *MealService {
	return &MealService{repo: repo, logger: logger}
}

// CreateMeal validates input and inserts the meal. Price must be
// strictly positive and difficulty one of LOW, MED, HIGH.
func (s *MealService) CreateMeal(ctx context.Context, name, cuisine string, price decimal.Decimal, difficulty domain.Difficulty) (domain.Meal, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if name == "" {
		return domain.Meal{}, domain.ErrInvalidName
	}
	if cuisine == "" {
		return domain.Meal{}, domain.ErrInvalidCuisine
	}
	if !price.IsPositive() {
		return domain.Meal{}, fmt.Errorf("%w: got %s", domain.ErrInvalidPrice, price.String())
	}
	if !difficulty.Valid() {
		return domain.Meal{}, fmt.Errorf("%w: got %q", domain.ErrInvalidDifficulty, string(difficulty))
	}

	meal, err := s.repo.Create(ctx, name, cuisine, price, difficulty)
	if err != nil {
		return domain.Meal{}, err
	}

	metrics.MealsCreated.Inc()
	s.logger.Info().
		Int64("id", meal.ID).
		Str("meal", meal.Name).
		Str("cuisine", meal.Cuisine).
		Str("difficulty", string(meal.Difficulty)).
		Msg("meal created")
	return meal, nil
}

func (s *MealService) DeleteMeal(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	metrics.MealsDeleted.Inc()
	return nil
}

func (s *MealService) GetMealByID(ctx context.Context, id int64) (domain.Meal, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.repo.GetByID(ctx, id)
}

func (s *MealService) GetMealByName(ctx context.Context, name string) (domain.Meal, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.repo.GetByName(ctx, name)
}

func (s *MealService) Leaderboard(ctx context.Context, sortBy domain.SortField) ([]domain.LeaderboardEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	entries, err := s.repo.Leaderboard(ctx, sortBy)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int("entries", len(entries)).
		Str("sort_by", string(sortBy)).
		Msg("leaderboard fetched")
	return entries, nil
}

// ResetMeals destructively recreates the meals table.
func (s *MealService) ResetMeals(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	s.logger.Warn().Msg("resetting meal catalog")
	return s.repo.Reset(ctx)
}
