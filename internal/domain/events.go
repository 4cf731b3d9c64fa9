package domain

import "time"

type BattleOutcome string

const (
	OutcomeWin  BattleOutcome = "win"
	OutcomeLoss BattleOutcome = "loss"
)

type BattleCompletedEvent struct {
	EventType   string    `json:"event_type"`
	WinnerID    int64     `json:"winner_id"`
	WinnerName  string    `json:"winner_name"`
	LoserID     int64     `json:"loser_id"`
	LoserName   string    `json:"loser_name"`
	WinnerScore float64   `json:"winner_score"`
	LoserScore  float64   `json:"loser_score"`
	Delta       float64   `json:"delta"`
	Draw        float64   `json:"draw"`
	Timestamp   time.Time `json:"timestamp"`
}

const (
	EventBattleCompleted = "battle.completed"
)
