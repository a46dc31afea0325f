package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lotopos/animalitos-pos-backend/internal/cart"
	"github.com/lotopos/animalitos-pos-backend/internal/models"
	"github.com/lotopos/animalitos-pos-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure TicketServiceImpl implements TicketService
var _ TicketService = (*TicketServiceImpl)(nil)

// TicketServiceImpl handles ticket submission and lifecycle business logic
type TicketServiceImpl struct {
	ticketRepo      repositories.TicketRepository
	carts           *cart.Store
	prizeMultiplier float64
	boundaryTimeout time.Duration
}

// NewTicketService creates a new TicketServiceImpl
func NewTicketService(
	ticketRepo repositories.TicketRepository,
	carts *cart.Store,
	prizeMultiplier float64,
	boundaryTimeout time.Duration,
) *TicketServiceImpl {
	return &TicketServiceImpl{
		ticketRepo:      ticketRepo,
		carts:           carts,
		prizeMultiplier: prizeMultiplier,
		boundaryTimeout: boundaryTimeout,
	}
}

// Submit commits the session's pending cart as a single ticket. The cart is
// cleared only after the persistence boundary confirms the ticket; on any
// failure the cart is left untouched so the operator can retry.
func (s *TicketServiceImpl) Submit(ctx context.Context, sessionID, tillID string, currency models.Currency, idempotencyKey string) (*models.TicketReceipt, error) {
	if sessionID == "" || tillID == "" {
		return nil, models.ErrNoSession
	}

	pending := s.carts.Get(sessionID)
	lines := pending.Lines()
	if len(lines) == 0 {
		return nil, models.ErrEmptyCart
	}

	if idempotencyKey == "" {
		idempotencyKey = uuid.NewString()
	}

	ticketLines := make([]models.TicketLine, 0, len(lines))
	total := 0.0
	for _, line := range lines {
		ticketLines = append(ticketLines, line.ToTicketLine())
		total += line.Stake
	}

	boundaryCtx, cancel := context.WithTimeout(ctx, s.boundaryTimeout)
	defer cancel()

	ticket, err := s.ticketRepo.CreateTicket(boundaryCtx, &repositories.CreateTicketRequest{
		TillID:         tillID,
		Currency:       currency,
		IdempotencyKey: idempotencyKey,
		Lines:          ticketLines,
		TotalStake:     total,
	})
	if err != nil {
		slog.Error("Ticket submission failed, cart retained", "error", err, "tillId", tillID, "lines", len(lines))
		return nil, fmt.Errorf("failed to submit ticket: %w", err)
	}

	receipt := models.BuildReceipt(ticket)
	s.carts.SetLastReceipt(sessionID, receipt)
	pending.Clear()

	slog.Info("Ticket issued", "ticketNumber", ticket.TicketNumber, "tillId", tillID, "lines", len(ticket.Lines), "totalStake", ticket.TotalStake)
	return receipt, nil
}

// Reprint rebuilds the receipt for an issued ticket. The reference may be the
// public ticket number or the secret serial.
func (s *TicketServiceImpl) Reprint(ctx context.Context, ref string) (*models.TicketReceipt, error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if ref == "" {
		return nil, models.ErrTicketNotFound
	}

	ticket, err := s.ticketRepo.FindByNumber(ctx, ref)
	if errors.Is(err, models.ErrTicketNotFound) {
		ticket, err = s.ticketRepo.FindBySerial(ctx, ref)
	}
	if errors.Is(err, models.ErrTicketNotFound) {
		return nil, models.ErrTicketNotFound
	}
	if err != nil {
		slog.Error("Ticket lookup failed", "error", err, "ref", ref)
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return models.BuildReceipt(ticket), nil
}

// Void cancels a ticket that has not yet been settled
func (s *TicketServiceImpl) Void(ctx context.Context, serial string) (*models.Ticket, error) {
	serial = strings.ToUpper(strings.TrimSpace(serial))

	boundaryCtx, cancel := context.WithTimeout(ctx, s.boundaryTimeout)
	defer cancel()

	ticket, err := s.ticketRepo.Void(boundaryCtx, serial)
	if err != nil {
		slog.Warn("Void rejected", "error", err, "serial", serial)
		return nil, err
	}

	slog.Info("Ticket voided", "ticketNumber", ticket.TicketNumber, "tillId", ticket.TillID)
	return ticket, nil
}

// Pay settles a winning ticket and returns the amount handed to the customer
func (s *TicketServiceImpl) Pay(ctx context.Context, tillID, serial string) (*models.Ticket, float64, error) {
	serial = strings.ToUpper(strings.TrimSpace(serial))

	boundaryCtx, cancel := context.WithTimeout(ctx, s.boundaryTimeout)
	defer cancel()

	ticket, err := s.ticketRepo.Pay(boundaryCtx, tillID, serial)
	if err != nil {
		slog.Warn("Payout rejected", "error", err, "serial", serial, "tillId", tillID)
		return nil, 0, err
	}

	amount := ticket.PrizeTotal()
	slog.Info("Prize paid", "ticketNumber", ticket.TicketNumber, "amount", amount, "paidByTillId", tillID)
	return ticket, amount, nil
}

// MarkWinner awards prizes on an active ticket against published results
func (s *TicketServiceImpl) MarkWinner(ctx context.Context, serial string, winningByDraw map[primitive.ObjectID]string) (*models.Ticket, error) {
	serial = strings.ToUpper(strings.TrimSpace(serial))

	boundaryCtx, cancel := context.WithTimeout(ctx, s.boundaryTimeout)
	defer cancel()

	ticket, err := s.ticketRepo.MarkWinner(boundaryCtx, serial, winningByDraw)
	if err != nil {
		slog.Warn("Winner marking rejected", "error", err, "serial", serial)
		return nil, err
	}

	slog.Info("Ticket marked as winner", "ticketNumber", ticket.TicketNumber, "prizeTotal", ticket.PrizeTotal())
	return ticket, nil
}

// RepeatIntoCart replaces the session's cart with the lines of a previous
// ticket, re-aimed at the draws chosen for each lottery. Lines whose lottery
// has no chosen draw are skipped.
func (s *TicketServiceImpl) RepeatIntoCart(ctx context.Context, sessionID, ticketNumber string, drawByLottery map[primitive.ObjectID]cart.DrawSelection) (int, error) {
	if sessionID == "" {
		return 0, models.ErrNoSession
	}

	ticketNumber = strings.ToUpper(strings.TrimSpace(ticketNumber))
	ticket, err := s.ticketRepo.FindByNumber(ctx, ticketNumber)
	if errors.Is(err, models.ErrTicketNotFound) {
		return 0, err
	}
	if err != nil {
		slog.Error("Ticket lookup failed", "error", err, "ticketNumber", ticketNumber)
		return 0, fmt.Errorf("failed to find ticket: %w", err)
	}

	pending := s.carts.Get(sessionID)
	pending.Clear()

	added := 0
	for _, line := range ticket.Lines {
		draw, ok := drawByLottery[line.LotteryID]
		if !ok {
			continue
		}
		added += pending.Add([]models.BetLine{{
			LineID:         uuid.NewString(),
			LotteryID:      line.LotteryID,
			LotteryName:    line.LotteryName,
			DrawID:         draw.ID,
			DrawName:       draw.Name,
			DrawTime:       draw.DrawTime,
			OutcomeCode:    line.OutcomeCode,
			OutcomeName:    line.OutcomeName,
			Stake:          line.Stake,
			EstimatedPrize: line.Stake * s.prizeMultiplier,
		}})
	}

	slog.Info("Ticket repeated into cart", "ticketNumber", ticketNumber, "linesAdded", added)
	return added, nil
}
