package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AnnikaM10/cs411hw3/internal/domain"
	"github.com/AnnikaM10/cs411hw3/internal/repo"
	"go.uber.org/zap"
)

var ErrInvalidSortKey = errors.New("invalid sort key, expected wins or win_rate")

type MealService struct {
	mealRepo repo.MealRepository
	logger   *zap.SugaredLogger
}

func NewMealService(mealRepo repo.MealRepository, logger *zap.SugaredLogger) *MealService {
	return &MealService{
		mealRepo: mealRepo,
		logger:   logger,
	}
}

// CreateMeal validates the meal as a domain entity before persisting it; the
// repository assigns the id.
func (s *MealService) CreateMeal(ctx context.Context, name, cuisine string, price float64, difficulty string) (*domain.Meal, error) {
	meal, err := domain.NewMeal(0, name, cuisine, price, difficulty)
	if err != nil {
		return nil, err
	}

	if err := s.mealRepo.Create(ctx, &meal); err != nil {
		return nil, fmt.Errorf("failed to create meal: %w", err)
	}

	s.logger.Infow("meal created", "meal_id", meal.ID, "name", meal.Name)

	return &meal, nil
}

func (s *MealService) GetMealByID(ctx context.Context, id int64) (*domain.Meal, error) {
	meal, err := s.mealRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return meal, nil
}

func (s *MealService) GetMealByName(ctx context.Context, name string) (*domain.Meal, error) {
	meal, err := s.mealRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	return meal, nil
}

func (s *MealService) DeleteMeal(ctx context.Context, id int64) error {
	if err := s.mealRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.logger.Infow("meal deleted", "meal_id", id)

	return nil
}

func (s *MealService) ClearMeals(ctx context.Context) error {
	if err := s.mealRepo.DeleteAll(ctx); err != nil {
		return err
	}

	s.logger.Info("all meals cleared")

	return nil
}

func (s *MealService) Leaderboard(ctx context.Context, sortBy string, limit int) ([]repo.LeaderboardEntry, error) {
	var sort repo.LeaderboardSort
	switch sortBy {
	case "", string(repo.SortByWins):
		sort = repo.SortByWins
	case string(repo.SortByWinRate):
		sort = repo.SortByWinRate
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortKey, sortBy)
	}

	entries, err := s.mealRepo.Leaderboard(ctx, sort, limit)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
