package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BattleAudit struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EventType   string             `bson:"event_type" json:"event_type"`
	WinnerID    int64              `bson:"winner_id" json:"winner_id"`
	WinnerName  string             `bson:"winner_name" json:"winner_name"`
	LoserID     int64              `bson:"loser_id" json:"loser_id"`
	LoserName   string             `bson:"loser_name" json:"loser_name"`
	WinnerScore float64            `bson:"winner_score" json:"winner_score"`
	LoserScore  float64            `bson:"loser_score" json:"loser_score"`
	Delta       float64            `bson:"delta" json:"delta"`
	Draw        float64            `bson:"draw" json:"draw"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}
