package mongodb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/lotopos/animalitos-pos-backend/internal/models"
	"github.com/lotopos/animalitos-pos-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LotteryRepository implements repositories.LotteryRepository
type LotteryRepository struct {
	collection *mongo.Collection
}

// NewLotteryRepository creates a new LotteryRepository
func NewLotteryRepository(db *mongo.Database) repositories.LotteryRepository {
	return &LotteryRepository{
		collection: db.Collection("lotteries"),
	}
}

// FindActive returns active lotteries with their active draws sorted by
// draw time, which is the order the selector shows them in.
func (r *LotteryRepository) FindActive(ctx context.Context) ([]*models.Lottery, error) {
	opts := options.Find().SetSort(bson.M{"name": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query lotteries: %w", err)
	}
	defer cursor.Close(ctx)

	var lotteries []*models.Lottery
	if err := cursor.All(ctx, &lotteries); err != nil {
		return nil, fmt.Errorf("failed to decode lotteries: %w", err)
	}
	if lotteries == nil {
		lotteries = []*models.Lottery{}
	}

	for _, lottery := range lotteries {
		lottery.Draws = activeDrawsSorted(lottery.Draws)
	}
	return lotteries, nil
}

// activeDrawsSorted keeps only the active draws, ordered by draw time as the
// selector shows them.
func activeDrawsSorted(draws []models.Draw) []models.Draw {
	active := draws[:0]
	for _, draw := range draws {
		if draw.Active {
			active = append(active, draw)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].DrawTime < active[j].DrawTime
	})
	return active
}

// Create inserts a lottery with its embedded draws, assigning draw ids when
// absent. Used by the seeding script.
func (r *LotteryRepository) Create(ctx context.Context, lottery *models.Lottery) error {
	now := time.Now()
	lottery.CreatedAt = now
	lottery.UpdatedAt = now
	for i := range lottery.Draws {
		if lottery.Draws[i].ID.IsZero() {
			lottery.Draws[i].ID = primitive.NewObjectID()
		}
		lottery.Draws[i].CreatedAt = now
		lottery.Draws[i].UpdatedAt = now
	}
	res, err := r.collection.InsertOne(ctx, lottery)
	if err != nil {
		return err
	}
	lottery.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}
