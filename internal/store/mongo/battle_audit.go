package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/AnnikaM10/cs411hw3/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BattleAuditRepository struct {
	collection *mongo.Collection
}

func NewBattleAuditRepository(db *mongo.Database) *BattleAuditRepository {
	return &BattleAuditRepository{
		collection: db.Collection("battle_audit"),
	}
}

func (r *BattleAuditRepository) Create(ctx context.Context, audit *domain.BattleAudit) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if audit.ID.IsZero() {
		audit.ID = primitive.NewObjectID()
	}
	if audit.Timestamp.IsZero() {
		audit.Timestamp = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, audit)
	if err != nil {
		return fmt.Errorf("failed to create battle audit: %w", err)
	}

	return nil
}

func (r *BattleAuditRepository) GetRecent(ctx context.Context, limit int) ([]domain.BattleAudit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get battle audits: %w", err)
	}
	defer cursor.Close(ctx)

	var audits []domain.BattleAudit
	if err := cursor.All(ctx, &audits); err != nil {
		return nil, fmt.Errorf("failed to decode battle audits: %w", err)
	}

	return audits, nil
}

func (r *BattleAuditRepository) GetByMealID(ctx context.Context, mealID int64, limit int) ([]domain.BattleAudit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"$or": bson.A{
			bson.M{"winner_id": mealID},
			bson.M{"loser_id": mealID},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get battle audits for meal: %w", err)
	}
	defer cursor.Close(ctx)

	var audits []domain.BattleAudit
	if err := cursor.All(ctx, &audits); err != nil {
		return nil, fmt.Errorf("failed to decode battle audits: %w", err)
	}

	return audits, nil
}
