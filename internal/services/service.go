package services

import (
	"context"
	"time"

	"github.com/lotopos/animalitos-pos-backend/internal/cart"
	"github.com/lotopos/animalitos-pos-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketService defines the interface for ticket submission and lifecycle operations
type TicketService interface {
	// Submit converts the session's pending cart into a persisted ticket
	Submit(ctx context.Context, sessionID, tillID string, currency models.Currency, idempotencyKey string) (*models.TicketReceipt, error)

	// Reprint rebuilds the receipt for an already issued ticket, looked up
	// by ticket number or secret serial
	Reprint(ctx context.Context, ref string) (*models.TicketReceipt, error)

	// Void cancels an ACTIVE ticket identified by its secret serial
	Void(ctx context.Context, serial string) (*models.Ticket, error)

	// Pay settles a WINNER ticket and records the paying till
	Pay(ctx context.Context, tillID, serial string) (*models.Ticket, float64, error)

	// MarkWinner awards prizes on an ACTIVE ticket whose lines match the
	// published results, keyed by draw ID
	MarkWinner(ctx context.Context, serial string, winningByDraw map[primitive.ObjectID]string) (*models.Ticket, error)

	// RepeatIntoCart reloads the lines of a previous ticket into the
	// session's cart against freshly chosen draws
	RepeatIntoCart(ctx context.Context, sessionID, ticketNumber string, drawByLottery map[primitive.ObjectID]cart.DrawSelection) (int, error)
}

// SalesService defines the interface for till reconciliation
type SalesService interface {
	// Summarize computes the sales summary for a till over a closed window
	Summarize(ctx context.Context, tillID string, from, to time.Time) (*models.SalesSummary, error)

	// ResolveWindow translates a named period into a concrete [from, to] window
	ResolveWindow(period string, day time.Time, now time.Time) (time.Time, time.Time, error)
}

// CatalogService defines the interface for lottery catalog lookups
type CatalogService interface {
	// ActiveLotteries returns the lotteries available for sale, with their
	// active draws sorted by draw time
	ActiveLotteries(ctx context.Context) ([]*models.Lottery, error)
}

// AuthService defines the interface for operator authentication
type AuthService interface {
	// Login verifies operator credentials and issues a till-bound token
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
}
