package repo

import (
	"context"

	"github.com/AnnikaM10/cs411hw3/internal/domain"
)

type BattleAuditRepository interface {
	Create(ctx context.Context, audit *domain.BattleAudit) error
	GetRecent(ctx context.Context, limit int) ([]domain.BattleAudit, error)
	GetByMealID(ctx context.Context, mealID int64, limit int) ([]domain.BattleAudit, error)
}
