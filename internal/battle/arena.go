package battle

import (
	"context"
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/AnnikaM10/cs411hw3/internal/domain"
	"go.uber.org/zap"
)

// arenaCapacity is fixed: battles are strictly pairwise.
const arenaCapacity = 2

var (
	ErrArenaFull           = errors.New("combatant list is full, cannot add more combatants")
	ErrNotEnoughCombatants = errors.New("two combatants must be prepped for a battle")
	ErrUnknownDifficulty   = errors.New("unknown difficulty")
)

// EntropySource supplies the random draw that decides a battle. Draws must
// lie in [0, 1].
type EntropySource interface {
	Draw(ctx context.Context) (float64, error)
}

// StatsUpdater persists a single win or loss for a meal.
type StatsUpdater interface {
	RecordOutcome(ctx context.Context, mealID int64, outcome domain.BattleOutcome) error
}

// Result describes a finished battle. WinnerName is the headline value; the
// rest feeds the audit trail.
type Result struct {
	WinnerName  string
	Winner      domain.Meal
	Loser       domain.Meal
	WinnerScore float64
	LoserScore  float64
	Delta       float64
	Draw        float64
}

// Arena holds at most two staged combatants and resolves battles between
// them. It is single-owner state: no internal locking, one arena per
// session. Concurrent callers must each own their own instance or serialize
// access themselves.
type Arena struct {
	combatants [arenaCapacity]domain.Meal
	count      int

	entropy EntropySource
	stats   StatsUpdater
	logger  *zap.SugaredLogger
}

func NewArena(entropy EntropySource, stats StatsUpdater, logger *zap.SugaredLogger) *Arena {
	return &Arena{
		entropy: entropy,
		stats:   stats,
		logger:  logger,
	}
}

// Prep stages a combatant. Insertion order decides who fights as combatant 1.
func (a *Arena) Prep(m domain.Meal) error {
	if a.count >= arenaCapacity {
		a.logger.Errorw("attempted to add combatant but combatant list is full", "meal", m.Name)
		return ErrArenaFull
	}

	a.combatants[a.count] = m
	a.count++

	a.logger.Infow("combatant added", "meal", m.Name, "staged", a.count)

	return nil
}

// Combatants returns a copy of the staged combatants in insertion order.
func (a *Arena) Combatants() []domain.Meal {
	out := make([]domain.Meal, a.count)
	copy(out, a.combatants[:a.count])
	return out
}

// Clear empties the combatant list. Safe to call on an empty arena.
func (a *Arena) Clear() {
	a.combatants = [arenaCapacity]domain.Meal{}
	a.count = 0
	a.logger.Info("combatant list cleared")
}

// Score computes the deterministic battle score:
// price * len(cuisine) - difficulty penalty. The cuisine length is the rune
// count of the label, a deliberately arbitrary fitness knob carried over
// from the original rules.
func (a *Arena) Score(m domain.Meal) (float64, error) {
	var penalty float64
	switch m.Difficulty {
	case domain.DifficultyHigh:
		penalty = 1
	case domain.DifficultyMed:
		penalty = 2
	case domain.DifficultyLow:
		penalty = 3
	default:
		// A stored record can carry a label that predates validation.
		return 0, fmt.Errorf("%w: %q", ErrUnknownDifficulty, m.Difficulty)
	}

	score := m.Price*float64(utf8.RuneCountInString(m.Cuisine)) - penalty

	a.logger.Debugw("battle score computed",
		"meal", m.Name,
		"price", m.Price,
		"cuisine", m.Cuisine,
		"difficulty", m.Difficulty,
		"score", score,
	)

	return score, nil
}

// Fight resolves the battle between the two staged combatants. The score
// delta, normalized by 100, is compared against an entropy draw in [0, 1]:
// combatant 1 wins when delta exceeds the draw, combatant 2 otherwise (ties
// included). The winner stays staged, the loser is evicted.
//
// Stats are reported winner first, loser second. A failure anywhere aborts
// the fight and leaves the combatant list as the failed step found it; in
// particular a loss-side stats failure can leave the win already committed.
func (a *Arena) Fight(ctx context.Context) (Result, error) {
	a.logger.Info("two meals enter, one meal leaves")

	if a.count < arenaCapacity {
		a.logger.Errorw("not enough combatants to start a battle", "staged", a.count)
		return Result{}, ErrNotEnoughCombatants
	}

	c1 := a.combatants[0]
	c2 := a.combatants[1]

	a.logger.Infow("battle started", "combatant_1", c1.Name, "combatant_2", c2.Name)

	s1, err := a.Score(c1)
	if err != nil {
		return Result{}, err
	}
	s2, err := a.Score(c2)
	if err != nil {
		return Result{}, err
	}

	delta := math.Abs(s1-s2) / 100

	r, err := a.entropy.Draw(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("entropy draw failed: %w", err)
	}

	a.logger.Infow("battle odds", "score_1", s1, "score_2", s2, "delta", delta, "draw", r)

	res := Result{Delta: delta, Draw: r}
	if delta > r {
		res.Winner, res.Loser = c1, c2
		res.WinnerScore, res.LoserScore = s1, s2
	} else {
		res.Winner, res.Loser = c2, c1
		res.WinnerScore, res.LoserScore = s2, s1
	}
	res.WinnerName = res.Winner.Name

	a.logger.Infow("battle decided", "winner", res.WinnerName)

	if err := a.stats.RecordOutcome(ctx, res.Winner.ID, domain.OutcomeWin); err != nil {
		return Result{}, fmt.Errorf("failed to record win for meal %d: %w", res.Winner.ID, err)
	}
	if err := a.stats.RecordOutcome(ctx, res.Loser.ID, domain.OutcomeLoss); err != nil {
		return Result{}, fmt.Errorf("failed to record loss for meal %d: %w", res.Loser.ID, err)
	}

	a.combatants[0] = res.Winner
	a.combatants[1] = domain.Meal{}
	a.count = 1

	return res, nil
}
