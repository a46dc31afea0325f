package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lotopos/animalitos-pos-backend/internal/models"
	"github.com/lotopos/animalitos-pos-backend/internal/repositories"
	"github.com/lotopos/animalitos-pos-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const serialLength = 8

// createRetries bounds how often CreateTicket regenerates a serial after a
// unique-index collision before giving up.
const createRetries = 3

// TicketRepository implements repositories.TicketRepository on MongoDB.
// Unique indexes on ticketNumber, secretSerial and idempotencyKey make the
// insert the single point where exactly-once creation is decided.
type TicketRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db *mongo.Database) repositories.TicketRepository {
	return &TicketRepository{
		collection: db.Collection("tickets"),
		counters:   db.Collection("counters"),
	}
}

// EnsureIndexes creates the unique indexes the repository relies on. Called
// once at startup.
func (r *TicketRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ticketNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "secretSerial", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "idempotencyKey", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(
				bson.M{"idempotencyKey": bson.M{"$type": "string"}},
			),
		},
		{
			Keys: bson.D{{Key: "tillId", Value: 1}, {Key: "saleTimestamp", Value: 1}},
		},
	})
	return err
}

// nextTicketNumber atomically increments the per-till sequence and formats
// the human-facing number.
func (r *TicketRepository) nextTicketNumber(ctx context.Context, tillID string) (string, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "ticket_number:" + tillID},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return "", fmt.Errorf("failed to advance ticket counter: %w", err)
	}
	return fmt.Sprintf("%s-%06d", tillID, counter.Seq), nil
}

// CreateTicket persists a new ACTIVE ticket with server-assigned number and
// serial. The insert is the atomic commit point: either the whole document
// (ticket plus all lines) lands, or nothing does. A duplicate idempotency
// key returns the ticket created by the first attempt.
func (r *TicketRepository) CreateTicket(ctx context.Context, req *repositories.CreateTicketRequest) (*models.Ticket, error) {
	for attempt := 0; attempt < createRetries; attempt++ {
		number, err := r.nextTicketNumber(ctx, req.TillID)
		if err != nil {
			return nil, err
		}
		serial, err := utils.GenerateSerial(serialLength)
		if err != nil {
			return nil, fmt.Errorf("failed to generate serial: %w", err)
		}

		now := time.Now()
		ticket := &models.Ticket{
			TicketNumber:   number,
			SecretSerial:   serial,
			IdempotencyKey: req.IdempotencyKey,
			TillID:         req.TillID,
			Currency:       req.Currency,
			State:          models.TicketStateActive,
			TotalStake:     req.TotalStake,
			Lines:          req.Lines,
			SaleTimestamp:  now,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		res, err := r.collection.InsertOne(ctx, ticket)
		if err == nil {
			ticket.ID = res.InsertedID.(primitive.ObjectID)
			return ticket, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("failed to persist ticket: %w", err)
		}

		// A duplicate key on the idempotency key means this submission
		// already succeeded; hand back the original ticket.
		if req.IdempotencyKey != "" {
			var existing models.Ticket
			findErr := r.collection.FindOne(ctx, bson.M{"idempotencyKey": req.IdempotencyKey}).Decode(&existing)
			if findErr == nil {
				return &existing, nil
			}
			if !errors.Is(findErr, mongo.ErrNoDocuments) {
				return nil, fmt.Errorf("failed to resolve idempotent replay: %w", findErr)
			}
		}
		// Otherwise the freshly generated serial collided; retry with a
		// new one.
	}
	return nil, errors.New("exhausted retries generating a unique ticket identity")
}

// FindBySerial finds a ticket by its secret serial
func (r *TicketRepository) FindBySerial(ctx context.Context, serial string) (*models.Ticket, error) {
	return r.findOne(ctx, bson.M{"secretSerial": serial})
}

// FindByNumber finds a ticket by its human-facing ticket number
func (r *TicketRepository) FindByNumber(ctx context.Context, number string) (*models.Ticket, error) {
	return r.findOne(ctx, bson.M{"ticketNumber": number})
}

func (r *TicketRepository) findOne(ctx context.Context, filter bson.M) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.collection.FindOne(ctx, filter).Decode(&ticket)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to fetch ticket: %w", err)
	}
	return &ticket, nil
}

// Void applies ACTIVE -> VOIDED as a single compare-and-set. Two concurrent
// voids, or a void racing a pay, resolve to exactly one winner.
func (r *TicketRepository) Void(ctx context.Context, serial string) (*models.Ticket, error) {
	now := time.Now()
	var ticket models.Ticket
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"secretSerial": serial, "state": models.TicketStateActive},
		bson.M{"$set": bson.M{
			"state":     models.TicketStateVoided,
			"voidedAt":  now,
			"updatedAt": now,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&ticket)
	if err == nil {
		return &ticket, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to void ticket: %w", err)
	}
	return nil, r.classifyGuardMiss(ctx, serial, models.ErrNotActive)
}

// Pay applies WINNER -> PAID, recording the paying till. The state is
// re-checked inside the update filter, not from any cached read, so a
// double-click or a concurrent till gets a conflict instead of a second
// payout.
func (r *TicketRepository) Pay(ctx context.Context, tillID, serial string) (*models.Ticket, error) {
	now := time.Now()
	var ticket models.Ticket
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"secretSerial": serial, "state": models.TicketStateWinner},
		bson.M{"$set": bson.M{
			"state":        models.TicketStatePaid,
			"paidByTillId": tillID,
			"paidAt":       now,
			"updatedAt":    now,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&ticket)
	if err == nil {
		return &ticket, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to pay ticket: %w", err)
	}
	return nil, r.classifyGuardMiss(ctx, serial, models.ErrNotWinner)
}

// MarkWinner settles a ticket against draw results: every line whose draw
// has a winning outcome equal to the line's outcome is awarded its
// estimated prize, and the ticket moves ACTIVE -> WINNER. Lines are
// immutable while the ticket is ACTIVE, so the read-then-CAS is safe.
func (r *TicketRepository) MarkWinner(ctx context.Context, serial string, winningByDraw map[primitive.ObjectID]string) (*models.Ticket, error) {
	current, err := r.FindBySerial(ctx, serial)
	if err != nil {
		return nil, err
	}

	lines := make([]models.TicketLine, len(current.Lines))
	copy(lines, current.Lines)
	matched := false
	for i := range lines {
		winning, ok := winningByDraw[lines[i].DrawID]
		if ok && winning == lines[i].OutcomeCode {
			lines[i].Winner = true
			lines[i].AwardedPrize = lines[i].EstimatedPrize
			matched = true
		}
	}
	if !matched {
		return nil, models.ErrNotWinner
	}

	now := time.Now()
	var ticket models.Ticket
	err = r.collection.FindOneAndUpdate(ctx,
		bson.M{"secretSerial": serial, "state": models.TicketStateActive},
		bson.M{"$set": bson.M{
			"state":     models.TicketStateWinner,
			"lines":     lines,
			"updatedAt": now,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&ticket)
	if err == nil {
		return &ticket, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("failed to mark winner: %w", err)
	}
	return nil, r.classifyGuardMiss(ctx, serial, models.ErrNotActive)
}

// classifyGuardMiss decides why a guarded update matched nothing: missing
// ticket, terminal state, or a non-terminal state the guard rejects.
func (r *TicketRepository) classifyGuardMiss(ctx context.Context, serial string, guardErr error) error {
	ticket, err := r.FindBySerial(ctx, serial)
	if err != nil {
		return err
	}
	if ticket.State.Terminal() {
		return models.ErrTerminalState
	}
	return guardErr
}

// QuerySalesWindow returns the till's tickets with saleTimestamp inside the
// closed interval [from, to], oldest first.
func (r *TicketRepository) QuerySalesWindow(ctx context.Context, tillID string, from, to time.Time) ([]*models.Ticket, error) {
	filter := bson.M{
		"tillId": tillID,
		"saleTimestamp": bson.M{
			"$gte": from,
			"$lte": to,
		},
	}
	opts := options.Find().SetSort(bson.M{"saleTimestamp": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales window: %w", err)
	}
	defer cursor.Close(ctx)

	var tickets []*models.Ticket
	if err := cursor.All(ctx, &tickets); err != nil {
		return nil, fmt.Errorf("failed to decode tickets: %w", err)
	}
	if tickets == nil {
		tickets = []*models.Ticket{}
	}
	return tickets, nil
}
