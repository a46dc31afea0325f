package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Operator represents a counter operator bound to a till
type Operator struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	TillID       string             `bson:"tillId" json:"tillId"`
	TillName     string             `bson:"tillName" json:"tillName"`
	Currency     Currency           `bson:"currency" json:"currency"`
	Active       bool               `bson:"active" json:"active"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// LoginRequest is the payload for operator authentication
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the session token and the till binding
type LoginResponse struct {
	Token    string   `json:"token"`
	TillID   string   `json:"tillId"`
	TillName string   `json:"tillName"`
	Currency Currency `json:"currency"`
}
