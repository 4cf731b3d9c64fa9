package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Difficulty string

const (
	DifficultyLow  Difficulty = "low"
	DifficultyMed  Difficulty = "med"
	DifficultyHigh Difficulty = "high"
)

var ErrInvalidMeal = errors.New("invalid meal")

// ParseDifficulty normalizes a difficulty label to its canonical form.
// The same label set is used at creation time and at battle time.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyLow:
		return DifficultyLow, nil
	case DifficultyMed:
		return DifficultyMed, nil
	case DifficultyHigh:
		return DifficultyHigh, nil
	default:
		return "", fmt.Errorf("%w: unrecognized difficulty %q", ErrInvalidMeal, s)
	}
}

type Meal struct {
	ID         int64      `bson:"_id" json:"id"`
	Name       string     `bson:"name" json:"name"`
	Cuisine    string     `bson:"cuisine" json:"cuisine"`
	Price      float64    `bson:"price" json:"price"`
	Difficulty Difficulty `bson:"difficulty" json:"difficulty"`
	Battles    int64      `bson:"battles" json:"battles"`
	Wins       int64      `bson:"wins" json:"wins"`
	Deleted    bool       `bson:"deleted" json:"-"`
	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `bson:"updated_at" json:"updated_at"`
}

// NewMeal validates and builds a meal. Fields are never mutated after this
// point; stat counters belong to the stored record, not the entity.
func NewMeal(id int64, name, cuisine string, price float64, difficulty string) (Meal, error) {
	if strings.TrimSpace(name) == "" {
		return Meal{}, fmt.Errorf("%w: name must not be empty", ErrInvalidMeal)
	}
	if strings.TrimSpace(cuisine) == "" {
		return Meal{}, fmt.Errorf("%w: cuisine must not be empty", ErrInvalidMeal)
	}
	if price < 0 {
		return Meal{}, fmt.Errorf("%w: price must not be negative, got %.2f", ErrInvalidMeal, price)
	}

	d, err := ParseDifficulty(difficulty)
	if err != nil {
		return Meal{}, err
	}

	return Meal{
		ID:         id,
		Name:       name,
		Cuisine:    cuisine,
		Price:      price,
		Difficulty: d,
	}, nil
}

// WinRate is wins over battles; zero when the meal has never fought.
func (m Meal) WinRate() float64 {
	if m.Battles == 0 {
		return 0
	}
	return float64(m.Wins) / float64(m.Battles)
}
