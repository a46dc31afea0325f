package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates every index the repositories rely on. Called once at
// startup, before the server accepts traffic.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	repo := &TicketRepository{
		collection: db.Collection("tickets"),
		counters:   db.Collection("counters"),
	}
	return repo.EnsureIndexes(ctx)
}
