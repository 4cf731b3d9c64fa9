package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/AnnikaM10/cs411hw3/internal/battle"
	"github.com/AnnikaM10/cs411hw3/internal/domain"
	"github.com/AnnikaM10/cs411hw3/internal/queue"
	"github.com/AnnikaM10/cs411hw3/internal/repo"
	"go.uber.org/zap"
)

// BattleService owns the process-wide arena and serializes access to it.
// The arena itself is unsynchronized single-owner state; the mutex here
// makes this service that owner for all HTTP sessions.
type BattleService struct {
	arena     *battle.Arena
	mealRepo  repo.MealRepository
	auditRepo repo.BattleAuditRepository
	broker    queue.Broker
	logger    *zap.SugaredLogger
	mu        sync.Mutex
}

func NewBattleService(
	mealRepo repo.MealRepository,
	auditRepo repo.BattleAuditRepository,
	entropySource battle.EntropySource,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *BattleService {
	s := &BattleService{
		mealRepo:  mealRepo,
		auditRepo: auditRepo,
		broker:    broker,
		logger:    logger,
	}

	// the service doubles as the arena's stats updater
	s.arena = battle.NewArena(entropySource, s, logger)

	return s
}

// RecordOutcome implements battle.StatsUpdater over the meal repository.
// Each call is a single atomic statement against storage.
func (s *BattleService) RecordOutcome(ctx context.Context, mealID int64, outcome domain.BattleOutcome) error {
	return s.mealRepo.RecordOutcome(ctx, mealID, outcome)
}

// PrepCombatant stages a stored meal by id. Soft-deleted meals cannot be
// staged because the lookup excludes them.
func (s *BattleService) PrepCombatant(ctx context.Context, mealID int64) (*domain.Meal, error) {
	meal, err := s.mealRepo.GetByID(ctx, mealID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.arena.Prep(*meal); err != nil {
		return nil, err
	}

	return meal, nil
}

func (s *BattleService) Combatants() []domain.Meal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.arena.Combatants()
}

func (s *BattleService) ClearCombatants() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.arena.Clear()
}

// Fight resolves the staged battle. The audit event is published only after
// the fight fully settled (both stat updates committed); a publish failure
// does not undo the fight and is only logged.
func (s *BattleService) Fight(ctx context.Context) (battle.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.arena.Fight(ctx)
	if err != nil {
		return battle.Result{}, err
	}

	event := domain.BattleCompletedEvent{
		EventType:   domain.EventBattleCompleted,
		WinnerID:    res.Winner.ID,
		WinnerName:  res.Winner.Name,
		LoserID:     res.Loser.ID,
		LoserName:   res.Loser.Name,
		WinnerScore: res.WinnerScore,
		LoserScore:  res.LoserScore,
		Delta:       res.Delta,
		Draw:        res.Draw,
		Timestamp:   time.Now(),
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorw("failed to marshal battle event", "winner_id", event.WinnerID, "error", err)
		return res, nil
	}

	if err := s.broker.Publish(ctx, queue.QueueBattleCompleted, eventBytes); err != nil {
		s.logger.Errorw("failed to publish battle event", "winner_id", event.WinnerID, "error", err)
		return res, nil
	}

	s.logger.Infow("battle completed", "winner", res.WinnerName, "loser", res.Loser.Name)

	return res, nil
}

// ProcessBattleCompletedEvent persists the audit record for a consumed
// battle event.
func (s *BattleService) ProcessBattleCompletedEvent(ctx context.Context, event domain.BattleCompletedEvent) error {
	audit := &domain.BattleAudit{
		EventType:   event.EventType,
		WinnerID:    event.WinnerID,
		WinnerName:  event.WinnerName,
		LoserID:     event.LoserID,
		LoserName:   event.LoserName,
		WinnerScore: event.WinnerScore,
		LoserScore:  event.LoserScore,
		Delta:       event.Delta,
		Draw:        event.Draw,
		Timestamp:   event.Timestamp,
	}

	if err := s.auditRepo.Create(ctx, audit); err != nil {
		s.logger.Errorw("failed to create battle audit", "winner_id", event.WinnerID, "error", err)
		return fmt.Errorf("failed to create battle audit: %w", err)
	}

	s.logger.Infow("battle audit created", "winner_id", event.WinnerID, "loser_id", event.LoserID)

	return nil
}

func (s *BattleService) RecentBattles(ctx context.Context, limit int) ([]domain.BattleAudit, error) {
	audits, err := s.auditRepo.GetRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get battle audits: %w", err)
	}

	return audits, nil
}
