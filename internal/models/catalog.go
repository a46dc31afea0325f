package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Draw represents a scheduled lottery event with a fixed cutoff time
type Draw struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	LotteryID primitive.ObjectID `bson:"lotteryId" json:"lotteryId"`
	Name      string             `bson:"name" json:"name"`
	DrawTime  string             `bson:"drawTime" json:"drawTime"` // "HH:MM:SS", local till time
	Active    bool               `bson:"active" json:"active"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Lottery represents an active lottery offering one or more daily draws
type Lottery struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Slug      string             `bson:"slug" json:"slug"`
	Active    bool               `bson:"active" json:"active"`
	Draws     []Draw             `bson:"draws,omitempty" json:"draws,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
