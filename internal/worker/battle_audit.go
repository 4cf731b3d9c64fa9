package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AnnikaM10/cs411hw3/internal/domain"
	"github.com/AnnikaM10/cs411hw3/internal/queue"
	"github.com/AnnikaM10/cs411hw3/internal/service"
	"go.uber.org/zap"
)

type BattleAuditWorker struct {
	battleService *service.BattleService
	broker        queue.Broker
	logger        *zap.SugaredLogger
	ctx           context.Context
	cancel        context.CancelFunc
}

func NewBattleAuditWorker(
	battleService *service.BattleService,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *BattleAuditWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &BattleAuditWorker{
		battleService: battleService,
		broker:        broker,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
	}
}

func (w *BattleAuditWorker) Start() error {
	w.logger.Info("starting battle audit worker")

	return w.broker.Subscribe(w.ctx, queue.QueueBattleCompleted, w.handleMessage)
}

func (w *BattleAuditWorker) Stop() {
	w.logger.Info("stopping battle audit worker")
	w.cancel()
}

func (w *BattleAuditWorker) handleMessage(ctx context.Context, message []byte) error {
	var event domain.BattleCompletedEvent
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal event", "error", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	w.logger.Infow("processing battle event", "winner_id", event.WinnerID, "loser_id", event.LoserID)

	if err := w.battleService.ProcessBattleCompletedEvent(ctx, event); err != nil {
		w.logger.Errorw("failed to process battle event", "winner_id", event.WinnerID, "error", err)
		return err
	}

	return nil
}
