package repo

import (
	"context"
	"errors"

	"github.com/AnnikaM10/cs411hw3/internal/domain"
)

var (
	ErrMealNotFound  = errors.New("meal not found")
	ErrDuplicateMeal = errors.New("meal with that name already exists")
)

type LeaderboardSort string

const (
	SortByWins    LeaderboardSort = "wins"
	SortByWinRate LeaderboardSort = "win_rate"
)

type LeaderboardEntry struct {
	domain.Meal `bson:",inline"`
	WinRate     float64 `bson:"win_rate" json:"win_rate"`
}

type MealRepository interface {
	Create(ctx context.Context, meal *domain.Meal) error
	GetByID(ctx context.Context, id int64) (*domain.Meal, error)
	GetByName(ctx context.Context, name string) (*domain.Meal, error)
	SoftDelete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
	RecordOutcome(ctx context.Context, id int64, outcome domain.BattleOutcome) error
	Leaderboard(ctx context.Context, sortBy LeaderboardSort, limit int) ([]LeaderboardEntry, error)
}
