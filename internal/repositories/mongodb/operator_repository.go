package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lotopos/animalitos-pos-backend/internal/models"
	"github.com/lotopos/animalitos-pos-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// OperatorRepository implements repositories.OperatorRepository
type OperatorRepository struct {
	collection *mongo.Collection
}

// NewOperatorRepository creates a new OperatorRepository
func NewOperatorRepository(db *mongo.Database) repositories.OperatorRepository {
	return &OperatorRepository{
		collection: db.Collection("operators"),
	}
}

// FindByUsername finds an active operator account by username
func (r *OperatorRepository) FindByUsername(ctx context.Context, username string) (*models.Operator, error) {
	var operator models.Operator
	err := r.collection.FindOne(ctx, bson.M{"username": username, "active": true}).Decode(&operator)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch operator: %w", err)
	}
	return &operator, nil
}

// Create inserts an operator account. Used by the seeding script.
func (r *OperatorRepository) Create(ctx context.Context, operator *models.Operator) error {
	now := time.Now()
	operator.CreatedAt = now
	operator.UpdatedAt = now
	res, err := r.collection.InsertOne(ctx, operator)
	if err != nil {
		return err
	}
	operator.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}
