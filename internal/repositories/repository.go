// Package repositories defines the persistence boundary of the POS core.
// Everything behind these interfaces is expected to be transactional:
// ticket creation is all-or-nothing, and every lifecycle transition is a
// guarded compare-and-set against the ticket's current state.
package repositories

import (
	"context"
	"time"

	"github.com/lotopos/animalitos-pos-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateTicketRequest is the immutable payload of one submission attempt.
// Identifiers are deliberately absent: ticketNumber and secretSerial are
// assigned by the boundary, never by the caller.
type CreateTicketRequest struct {
	TillID         string
	Currency       models.Currency
	IdempotencyKey string
	Lines          []models.TicketLine
	TotalStake     float64
}

// TicketRepository persists tickets and applies lifecycle transitions.
type TicketRepository interface {
	// CreateTicket atomically persists a new ACTIVE ticket with freshly
	// generated identifiers. A repeated call carrying an idempotency key
	// already used returns the originally created ticket instead of a
	// duplicate.
	CreateTicket(ctx context.Context, req *CreateTicketRequest) (*models.Ticket, error)

	FindBySerial(ctx context.Context, serial string) (*models.Ticket, error)
	FindByNumber(ctx context.Context, number string) (*models.Ticket, error)

	// Void transitions ACTIVE -> VOIDED. Returns models.ErrTerminalState
	// when the ticket is already PAID or VOIDED and models.ErrNotActive
	// for any other state.
	Void(ctx context.Context, serial string) (*models.Ticket, error)

	// Pay transitions WINNER -> PAID, re-checking the state at the instant
	// of the update so concurrent attempts yield exactly one success. The
	// paying till is recorded on the ticket.
	Pay(ctx context.Context, tillID, serial string) (*models.Ticket, error)

	// MarkWinner applies a settlement result: lines matching the winning
	// outcome of their draw are awarded their estimated prize and the
	// ticket moves ACTIVE -> WINNER. Guarded like the other transitions.
	MarkWinner(ctx context.Context, serial string, winningByDraw map[primitive.ObjectID]string) (*models.Ticket, error)

	// QuerySalesWindow returns every ticket of a till whose sale timestamp
	// falls in the closed interval [from, to].
	QuerySalesWindow(ctx context.Context, tillID string, from, to time.Time) ([]*models.Ticket, error)
}

// LotteryRepository reads the lottery/draw catalog.
type LotteryRepository interface {
	FindActive(ctx context.Context) ([]*models.Lottery, error)
	Create(ctx context.Context, lottery *models.Lottery) error
}

// OperatorRepository reads and seeds operator accounts.
type OperatorRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.Operator, error)
	Create(ctx context.Context, operator *models.Operator) error
}
