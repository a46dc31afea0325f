// Seed loads a starting catalog and operator accounts into MongoDB so a
// fresh agency install can sell immediately. Safe to rerun: existing
// lotteries and operators are left alone.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/lotopos/animalitos-pos-backend/internal/config"
	"github.com/lotopos/animalitos-pos-backend/internal/models"
	mongorepo "github.com/lotopos/animalitos-pos-backend/internal/repositories/mongodb"
	"github.com/lotopos/animalitos-pos-backend/pkg/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	mongoURI := config.GetEnv("MONGODB_URI", "mongodb://localhost:27017")
	dbName := config.GetEnv("MONGODB_DATABASE", "animalitos-pos")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongodb.NewClient(ctx, mongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(dbName)

	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to ensure indexes: %v", err)
	}

	if err := seedLotteries(ctx, db); err != nil {
		log.Fatalf("Failed to seed lotteries: %v", err)
	}
	if err := seedOperators(ctx, db); err != nil {
		log.Fatalf("Failed to seed operators: %v", err)
	}

	log.Println("Seed completed")
}

func seedLotteries(ctx context.Context, db *mongo.Database) error {
	repo := mongorepo.NewLotteryRepository(db)

	existing, err := repo.FindActive(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Printf("Lotteries already present (%d), skipping", len(existing))
		return nil
	}

	lotteries := []*models.Lottery{
		{
			Name:   "Lotto Activo",
			Slug:   "lotto-activo",
			Active: true,
			Draws: []models.Draw{
				{Name: "09:00 AM", DrawTime: "09:00:00", Active: true},
				{Name: "10:00 AM", DrawTime: "10:00:00", Active: true},
				{Name: "11:00 AM", DrawTime: "11:00:00", Active: true},
				{Name: "12:00 PM", DrawTime: "12:00:00", Active: true},
				{Name: "01:00 PM", DrawTime: "13:00:00", Active: true},
				{Name: "02:00 PM", DrawTime: "14:00:00", Active: true},
				{Name: "03:00 PM", DrawTime: "15:00:00", Active: true},
				{Name: "04:00 PM", DrawTime: "16:00:00", Active: true},
				{Name: "05:00 PM", DrawTime: "17:00:00", Active: true},
				{Name: "06:00 PM", DrawTime: "18:00:00", Active: true},
				{Name: "07:00 PM", DrawTime: "19:00:00", Active: true},
			},
		},
		{
			Name:   "La Granjita",
			Slug:   "la-granjita",
			Active: true,
			Draws: []models.Draw{
				{Name: "09:30 AM", DrawTime: "09:30:00", Active: true},
				{Name: "10:30 AM", DrawTime: "10:30:00", Active: true},
				{Name: "11:30 AM", DrawTime: "11:30:00", Active: true},
				{Name: "12:30 PM", DrawTime: "12:30:00", Active: true},
				{Name: "01:30 PM", DrawTime: "13:30:00", Active: true},
				{Name: "02:30 PM", DrawTime: "14:30:00", Active: true},
				{Name: "03:30 PM", DrawTime: "15:30:00", Active: true},
				{Name: "04:30 PM", DrawTime: "16:30:00", Active: true},
				{Name: "05:30 PM", DrawTime: "17:30:00", Active: true},
				{Name: "06:30 PM", DrawTime: "18:30:00", Active: true},
			},
		},
	}

	for _, lottery := range lotteries {
		if err := repo.Create(ctx, lottery); err != nil {
			return err
		}
		log.Printf("Seeded lottery %q with %d draws", lottery.Name, len(lottery.Draws))
	}
	return nil
}

func seedOperators(ctx context.Context, db *mongo.Database) error {
	repo := mongorepo.NewOperatorRepository(db)

	password := config.GetEnv("SEED_OPERATOR_PASSWORD", "cambiame")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	currency := models.Currency(config.GetEnv("SEED_TILL_CURRENCY", "VES"))
	tills := config.GetEnvAsInt("SEED_TILL_COUNT", 1)

	for i := 1; i <= tills; i++ {
		username := fmt.Sprintf("taquilla%d", i)
		if _, err := repo.FindByUsername(ctx, username); err == nil {
			log.Printf("Operator %q already present, skipping", username)
			continue
		} else if err != mongo.ErrNoDocuments {
			return err
		}

		operator := &models.Operator{
			Username:     username,
			PasswordHash: string(hash),
			TillID:       fmt.Sprintf("TAQ%d", i),
			TillName:     fmt.Sprintf("Taquilla %d", i),
			Currency:     currency,
			Active:       true,
		}
		if err := repo.Create(ctx, operator); err != nil {
			return err
		}
		log.Printf("Seeded operator %q on till %s", operator.Username, operator.TillID)
	}
	return nil
}
