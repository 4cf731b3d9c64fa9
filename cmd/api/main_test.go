package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AnnikaM10/cs411hw3/internal/domain"
	"github.com/AnnikaM10/cs411hw3/internal/queue"
	"github.com/AnnikaM10/cs411hw3/internal/ratelimiter"
	"github.com/AnnikaM10/cs411hw3/internal/repo"
	"github.com/AnnikaM10/cs411hw3/internal/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memMealRepo struct {
	meals  map[int64]*domain.Meal
	nextID int64
}

func newMemMealRepo() *memMealRepo {
	return &memMealRepo{meals: make(map[int64]*domain.Meal)}
}

func (r *memMealRepo) Create(ctx context.Context, meal *domain.Meal) error {
	for _, m := range r.meals {
		if m.Name == meal.Name && !m.Deleted {
			return repo.ErrDuplicateMeal
		}
	}
	r.nextID++
	meal.ID = r.nextID
	r.meals[meal.ID] = meal
	return nil
}

func (r *memMealRepo) GetByID(ctx context.Context, id int64) (*domain.Meal, error) {
	m, ok := r.meals[id]
	if !ok || m.Deleted {
		return nil, repo.ErrMealNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *memMealRepo) GetByName(ctx context.Context, name string) (*domain.Meal, error) {
	for _, m := range r.meals {
		if m.Name == name && !m.Deleted {
			copied := *m
			return &copied, nil
		}
	}
	return nil, repo.ErrMealNotFound
}

func (r *memMealRepo) SoftDelete(ctx context.Context, id int64) error {
	m, ok := r.meals[id]
	if !ok || m.Deleted {
		return repo.ErrMealNotFound
	}
	m.Deleted = true
	return nil
}

func (r *memMealRepo) DeleteAll(ctx context.Context) error {
	r.meals = make(map[int64]*domain.Meal)
	r.nextID = 0
	return nil
}

func (r *memMealRepo) RecordOutcome(ctx context.Context, id int64, outcome domain.BattleOutcome) error {
	m, ok := r.meals[id]
	if !ok || m.Deleted {
		return repo.ErrMealNotFound
	}
	m.Battles++
	if outcome == domain.OutcomeWin {
		m.Wins++
	}
	return nil
}

func (r *memMealRepo) Leaderboard(ctx context.Context, sortBy repo.LeaderboardSort, limit int) ([]repo.LeaderboardEntry, error) {
	var entries []repo.LeaderboardEntry
	for _, m := range r.meals {
		if m.Deleted || m.Battles == 0 {
			continue
		}
		entries = append(entries, repo.LeaderboardEntry{Meal: *m, WinRate: m.WinRate()})
	}
	return entries, nil
}

type memAuditRepo struct {
	audits []domain.BattleAudit
}

func (r *memAuditRepo) Create(ctx context.Context, audit *domain.BattleAudit) error {
	r.audits = append(r.audits, *audit)
	return nil
}

func (r *memAuditRepo) GetRecent(ctx context.Context, limit int) ([]domain.BattleAudit, error) {
	if len(r.audits) > limit {
		return r.audits[:limit], nil
	}
	return r.audits, nil
}

func (r *memAuditRepo) GetByMealID(ctx context.Context, mealID int64, limit int) ([]domain.BattleAudit, error) {
	return r.audits, nil
}

type dropBroker struct{}

func (dropBroker) Publish(ctx context.Context, queueName string, message []byte) error { return nil }
func (dropBroker) Subscribe(ctx context.Context, queueName string, handler queue.MessageHandler) error {
	return nil
}
func (dropBroker) Close() error { return nil }

type testEntropy struct {
	draw float64
}

func (e testEntropy) Draw(ctx context.Context) (float64, error) { return e.draw, nil }

// newTestApp wires the handlers against in-memory collaborators. The rate
// limiter is disabled so tests can hammer the router.
func newTestApp(t *testing.T, draw float64) (*application, *memMealRepo) {
	t.Helper()

	logger := zap.NewNop().Sugar()
	mealRepo := newMemMealRepo()
	auditRepo := &memAuditRepo{}

	app := &application{
		config: config{
			addr: ":0",
			env:  "test",
			rateLimiter: ratelimiter.Config{
				Enabled: false,
			},
		},
		logger:        logger,
		mealService:   service.NewMealService(mealRepo, logger),
		battleService: service.NewBattleService(mealRepo, auditRepo, testEntropy{draw: draw}, dropBroker{}, logger),
	}

	return app, mealRepo
}

func executeRequest(t *testing.T, app *application, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	rr := httptest.NewRecorder()
	app.mount().ServeHTTP(rr, req)
	return rr
}

func seedMeal(t *testing.T, mealRepo *memMealRepo, name, cuisine string, price float64, difficulty string) *domain.Meal {
	t.Helper()

	meal, err := domain.NewMeal(0, name, cuisine, price, difficulty)
	require.NoError(t, err)
	require.NoError(t, mealRepo.Create(context.Background(), &meal))
	return &meal
}
