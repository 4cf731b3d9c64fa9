package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AnnikaM10/cs411hw3/internal/domain"
	"github.com/AnnikaM10/cs411hw3/internal/repo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MealRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

func NewMealRepository(db *mongo.Database) *MealRepository {
	return &MealRepository{
		collection: db.Collection("meals"),
		counters:   db.Collection("counters"),
	}
}

// nextID hands out sequential int64 meal ids from the counters collection.
func (r *MealRepository) nextID(ctx context.Context) (int64, error) {
	filter := bson.M{"_id": "meals"}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	if err := r.counters.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter); err != nil {
		return 0, fmt.Errorf("failed to allocate meal id: %w", err)
	}

	return counter.Seq, nil
}

func (r *MealRepository) Create(ctx context.Context, meal *domain.Meal) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}

	meal.ID = id
	meal.Battles = 0
	meal.Wins = 0
	meal.Deleted = false
	meal.CreatedAt = time.Now()
	meal.UpdatedAt = time.Now()

	_, err = r.collection.InsertOne(ctx, meal)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repo.ErrDuplicateMeal
		}
		return fmt.Errorf("failed to create meal: %w", err)
	}

	return nil
}

func (r *MealRepository) GetByID(ctx context.Context, id int64) (*domain.Meal, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var meal domain.Meal
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "deleted": false}).Decode(&meal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrMealNotFound
		}
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}

	return &meal, nil
}

func (r *MealRepository) GetByName(ctx context.Context, name string) (*domain.Meal, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var meal domain.Meal
	err := r.collection.FindOne(ctx, bson.M{"name": name, "deleted": false}).Decode(&meal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrMealNotFound
		}
		return nil, fmt.Errorf("failed to get meal by name: %w", err)
	}

	return &meal, nil
}

func (r *MealRepository) SoftDelete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": id, "deleted": false}
	update := bson.M{
		"$set": bson.M{
			"deleted":    true,
			"updated_at": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}

	if result.MatchedCount == 0 {
		return repo.ErrMealNotFound
	}

	return nil
}

func (r *MealRepository) DeleteAll(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("failed to clear meals: %w", err)
	}

	// restart id sequence, matching a fresh table
	if _, err := r.counters.UpdateOne(ctx, bson.M{"_id": "meals"}, bson.M{"$set": bson.M{"seq": int64(0)}}); err != nil {
		return fmt.Errorf("failed to reset meal id sequence: %w", err)
	}

	return nil
}

// RecordOutcome commits one stat update as a single atomic statement:
// a win increments battles and wins, a loss increments battles only.
func (r *MealRepository) RecordOutcome(ctx context.Context, id int64, outcome domain.BattleOutcome) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var inc bson.M
	switch outcome {
	case domain.OutcomeWin:
		inc = bson.M{"battles": 1, "wins": 1}
	case domain.OutcomeLoss:
		inc = bson.M{"battles": 1}
	default:
		return fmt.Errorf("invalid battle outcome: %q", outcome)
	}

	filter := bson.M{"_id": id, "deleted": false}
	update := bson.M{
		"$inc": inc,
		"$set": bson.M{"updated_at": time.Now()},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to record outcome: %w", err)
	}

	if result.MatchedCount == 0 {
		return repo.ErrMealNotFound
	}

	return nil
}

func (r *MealRepository) Leaderboard(ctx context.Context, sortBy repo.LeaderboardSort, limit int) ([]repo.LeaderboardEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var sortKey string
	switch sortBy {
	case repo.SortByWins:
		sortKey = "wins"
	case repo.SortByWinRate:
		sortKey = "win_rate"
	default:
		return nil, fmt.Errorf("invalid leaderboard sort key: %q", sortBy)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"deleted": false, "battles": bson.M{"$gt": 0}}}},
		{{Key: "$addFields", Value: bson.M{
			"win_rate": bson.M{"$divide": bson.A{"$wins", "$battles"}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: sortKey, Value: -1}}}},
		{{Key: "$limit", Value: int64(limit)}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []repo.LeaderboardEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode leaderboard: %w", err)
	}

	return entries, nil
}
