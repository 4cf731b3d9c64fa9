package battle_test

import (
	"context"
	"errors"
	"testing"

	"github.com/AnnikaM10/cs411hw3/internal/battle"
	"github.com/AnnikaM10/cs411hw3/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubEntropy struct {
	draw float64
	err  error
}

func (s *stubEntropy) Draw(ctx context.Context) (float64, error) {
	return s.draw, s.err
}

type outcomeCall struct {
	mealID  int64
	outcome domain.BattleOutcome
}

type recordingStats struct {
	calls  []outcomeCall
	failOn map[int64]error
}

func (s *recordingStats) RecordOutcome(ctx context.Context, mealID int64, outcome domain.BattleOutcome) error {
	if err, ok := s.failOn[mealID]; ok {
		return err
	}
	s.calls = append(s.calls, outcomeCall{mealID: mealID, outcome: outcome})
	return nil
}

func newTestArena(entropy battle.EntropySource, stats battle.StatsUpdater) *battle.Arena {
	return battle.NewArena(entropy, stats, zap.NewNop().Sugar())
}

func mustMeal(t *testing.T, id int64, name, cuisine string, price float64, difficulty string) domain.Meal {
	t.Helper()
	m, err := domain.NewMeal(id, name, cuisine, price, difficulty)
	require.NoError(t, err)
	return m
}

// Test: staging keeps insertion order and never admits a third combatant
func TestPrep_CapacityLimit(t *testing.T) {
	arena := newTestArena(&stubEntropy{}, &recordingStats{})

	m1 := mustMeal(t, 1, "Pad Thai", "Thai", 11.50, "med")
	m2 := mustMeal(t, 2, "Carbonara", "Italian", 14.00, "high")
	m3 := mustMeal(t, 3, "Tacos", "Mexican", 8.25, "low")

	require.NoError(t, arena.Prep(m1))
	require.NoError(t, arena.Prep(m2))

	err := arena.Prep(m3)
	assert.ErrorIs(t, err, battle.ErrArenaFull)

	combatants := arena.Combatants()
	require.Len(t, combatants, 2)
	assert.Equal(t, "Pad Thai", combatants[0].Name)
	assert.Equal(t, "Carbonara", combatants[1].Name)
}

func TestCombatants_EmptyArena(t *testing.T) {
	arena := newTestArena(&stubEntropy{}, &recordingStats{})

	assert.Empty(t, arena.Combatants())
}

// Test: Clear empties the list regardless of prior state and is idempotent
func TestClear(t *testing.T) {
	arena := newTestArena(&stubEntropy{}, &recordingStats{})

	require.NoError(t, arena.Prep(mustMeal(t, 1, "Pho", "Vietnamese", 10.00, "med")))
	arena.Clear()
	assert.Empty(t, arena.Combatants())

	arena.Clear()
	assert.Empty(t, arena.Combatants())

	// arena accepts combatants again after clearing
	require.NoError(t, arena.Prep(mustMeal(t, 2, "Ramen", "Japanese", 12.00, "high")))
	assert.Len(t, arena.Combatants(), 1)
}

// Test: score formula price * len(cuisine) - difficulty penalty
func TestScore(t *testing.T) {
	arena := newTestArena(&stubEntropy{}, &recordingStats{})

	// 12.99 * 7 - 2 = 88.93
	a := mustMeal(t, 1, "Meal A", "Italian", 12.99, "med")
	scoreA, err := arena.Score(a)
	require.NoError(t, err)
	assert.InDelta(t, 88.93, scoreA, 1e-9)

	// 9.99 * 8 - 3 = 76.92
	b := mustMeal(t, 2, "Meal B", "American", 9.99, "low")
	scoreB, err := arena.Score(b)
	require.NoError(t, err)
	assert.InDelta(t, 76.92, scoreB, 1e-9)
}

func TestScore_Deterministic(t *testing.T) {
	arena := newTestArena(&stubEntropy{}, &recordingStats{})
	m := mustMeal(t, 1, "Gumbo", "Creole", 13.37, "high")

	first, err := arena.Score(m)
	require.NoError(t, err)
	second, err := arena.Score(m)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// Test: high difficulty scores exactly 2 above low for identical price/cuisine
func TestScore_DifficultyPenaltySpread(t *testing.T) {
	arena := newTestArena(&stubEntropy{}, &recordingStats{})

	high := mustMeal(t, 1, "A", "French", 20.00, "high")
	low := mustMeal(t, 2, "B", "French", 20.00, "low")

	scoreHigh, err := arena.Score(high)
	require.NoError(t, err)
	scoreLow, err := arena.Score(low)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, scoreHigh-scoreLow, 1e-9)
}

func TestScore_UnknownDifficulty(t *testing.T) {
	arena := newTestArena(&stubEntropy{}, &recordingStats{})

	// a record that bypassed construction validation
	m := domain.Meal{ID: 1, Name: "Mystery", Cuisine: "Fusion", Price: 9.99, Difficulty: "impossible"}

	_, err := arena.Score(m)
	assert.ErrorIs(t, err, battle.ErrUnknownDifficulty)
}

// Test: fewer than two combatants never reaches the collaborators
func TestFight_NotEnoughCombatants(t *testing.T) {
	stats := &recordingStats{}
	arena := newTestArena(&stubEntropy{draw: 0.5}, stats)

	_, err := arena.Fight(context.Background())
	assert.ErrorIs(t, err, battle.ErrNotEnoughCombatants)
	assert.Empty(t, stats.calls)

	require.NoError(t, arena.Prep(mustMeal(t, 1, "Solo", "Greek", 10.00, "med")))

	_, err = arena.Fight(context.Background())
	assert.ErrorIs(t, err, battle.ErrNotEnoughCombatants)
	assert.Empty(t, stats.calls)
	assert.Len(t, arena.Combatants(), 1)
}

// Scenario: delta = |88.93 - 76.92| / 100 = 0.1201; draw 0.5 >= delta so
// combatant 2 wins
func TestFight_CombatantTwoWins(t *testing.T) {
	stats := &recordingStats{}
	arena := newTestArena(&stubEntropy{draw: 0.5}, stats)

	a := mustMeal(t, 1, "Meal A", "Italian", 12.99, "med")
	b := mustMeal(t, 2, "Meal B", "American", 9.99, "low")
	require.NoError(t, arena.Prep(a))
	require.NoError(t, arena.Prep(b))

	res, err := arena.Fight(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Meal B", res.WinnerName)
	assert.InDelta(t, 0.1201, res.Delta, 1e-9)
	assert.InDelta(t, 76.92, res.WinnerScore, 1e-9)
	assert.InDelta(t, 88.93, res.LoserScore, 1e-9)

	// winner reported first, loser second
	require.Len(t, stats.calls, 2)
	assert.Equal(t, outcomeCall{mealID: 2, outcome: domain.OutcomeWin}, stats.calls[0])
	assert.Equal(t, outcomeCall{mealID: 1, outcome: domain.OutcomeLoss}, stats.calls[1])

	// loser evicted, winner stays staged
	combatants := arena.Combatants()
	require.Len(t, combatants, 1)
	assert.Equal(t, "Meal B", combatants[0].Name)
}

// Scenario: same meals, draw 0.05 < delta 0.1201 so combatant 1 wins
func TestFight_CombatantOneWins(t *testing.T) {
	stats := &recordingStats{}
	arena := newTestArena(&stubEntropy{draw: 0.05}, stats)

	require.NoError(t, arena.Prep(mustMeal(t, 1, "Meal A", "Italian", 12.99, "med")))
	require.NoError(t, arena.Prep(mustMeal(t, 2, "Meal B", "American", 9.99, "low")))

	res, err := arena.Fight(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Meal A", res.WinnerName)

	require.Len(t, stats.calls, 2)
	assert.Equal(t, outcomeCall{mealID: 1, outcome: domain.OutcomeWin}, stats.calls[0])
	assert.Equal(t, outcomeCall{mealID: 2, outcome: domain.OutcomeLoss}, stats.calls[1])

	combatants := arena.Combatants()
	require.Len(t, combatants, 1)
	assert.Equal(t, "Meal A", combatants[0].Name)
}

// Test: a tie between delta and draw resolves to combatant 2
func TestFight_TieGoesToCombatantTwo(t *testing.T) {
	stats := &recordingStats{}
	// identical meals: delta is 0, draw is 0
	arena := newTestArena(&stubEntropy{draw: 0}, stats)

	require.NoError(t, arena.Prep(mustMeal(t, 1, "Twin A", "Korean", 10.00, "med")))
	require.NoError(t, arena.Prep(mustMeal(t, 2, "Twin B", "Korean", 10.00, "med")))

	res, err := arena.Fight(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Twin B", res.WinnerName)
	assert.Equal(t, int64(2), res.Winner.ID)
}

func TestFight_EntropyFailureAborts(t *testing.T) {
	stats := &recordingStats{}
	entropyErr := errors.New("random.org request failed")
	arena := newTestArena(&stubEntropy{err: entropyErr}, stats)

	require.NoError(t, arena.Prep(mustMeal(t, 1, "Meal A", "Italian", 12.99, "med")))
	require.NoError(t, arena.Prep(mustMeal(t, 2, "Meal B", "American", 9.99, "low")))

	_, err := arena.Fight(context.Background())
	assert.ErrorIs(t, err, entropyErr)

	// no stats reported, both combatants still staged
	assert.Empty(t, stats.calls)
	assert.Len(t, arena.Combatants(), 2)
}

func TestFight_UnknownDifficultyAborts(t *testing.T) {
	stats := &recordingStats{}
	arena := newTestArena(&stubEntropy{draw: 0.5}, stats)

	require.NoError(t, arena.Prep(mustMeal(t, 1, "Meal A", "Italian", 12.99, "med")))
	bad := domain.Meal{ID: 2, Name: "Mystery", Cuisine: "Fusion", Price: 9.99, Difficulty: "nope"}
	require.NoError(t, arena.Prep(bad))

	_, err := arena.Fight(context.Background())
	assert.ErrorIs(t, err, battle.ErrUnknownDifficulty)
	assert.Empty(t, stats.calls)
	assert.Len(t, arena.Combatants(), 2)
}

// Test: a loss-side stats failure propagates after the win was already
// committed; the combatant list is left as the failed step found it
func TestFight_PartialStatsFailure(t *testing.T) {
	storageErr := errors.New("storage unavailable")
	stats := &recordingStats{failOn: map[int64]error{1: storageErr}}
	// draw 0.5 makes combatant 2 the winner, so the loss write for meal 1 fails
	arena := newTestArena(&stubEntropy{draw: 0.5}, stats)

	require.NoError(t, arena.Prep(mustMeal(t, 1, "Meal A", "Italian", 12.99, "med")))
	require.NoError(t, arena.Prep(mustMeal(t, 2, "Meal B", "American", 9.99, "low")))

	_, err := arena.Fight(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, storageErr)

	// the win was recorded before the failure
	require.Len(t, stats.calls, 1)
	assert.Equal(t, outcomeCall{mealID: 2, outcome: domain.OutcomeWin}, stats.calls[0])

	// eviction never happened
	assert.Len(t, arena.Combatants(), 2)
}

func TestFight_WinnerCanFightAgain(t *testing.T) {
	stats := &recordingStats{}
	arena := newTestArena(&stubEntropy{draw: 0.5}, stats)

	require.NoError(t, arena.Prep(mustMeal(t, 1, "Meal A", "Italian", 12.99, "med")))
	require.NoError(t, arena.Prep(mustMeal(t, 2, "Meal B", "American", 9.99, "low")))

	res, err := arena.Fight(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Meal B", res.WinnerName)

	// stage a challenger against the reigning winner
	require.NoError(t, arena.Prep(mustMeal(t, 3, "Meal C", "Ethiopian", 15.00, "high")))

	res, err = arena.Fight(context.Background())
	require.NoError(t, err)

	// 15.00 * 9 - 1 = 134; delta = |76.92 - 134| / 100 = 0.5708 > 0.5,
	// so combatant 1 (the previous winner) wins
	assert.Equal(t, "Meal B", res.WinnerName)
	assert.Len(t, stats.calls, 4)
}
