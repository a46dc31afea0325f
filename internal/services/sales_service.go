package services

import (
	"context"
	"fmt"
	"time"

	"github.com/lotopos/animalitos-pos-backend/internal/models"
	"github.com/lotopos/animalitos-pos-backend/internal/repositories"
	"golang.org/x/exp/slog"
)

// Compile-time check to ensure SalesServiceImpl implements SalesService
var _ SalesService = (*SalesServiceImpl)(nil)

// SalesServiceImpl computes till reconciliation summaries
type SalesServiceImpl struct {
	ticketRepo     repositories.TicketRepository
	commissionRate float64
}

// NewSalesService creates a new SalesServiceImpl
func NewSalesService(ticketRepo repositories.TicketRepository, commissionRate float64) *SalesServiceImpl {
	return &SalesServiceImpl{
		ticketRepo:     ticketRepo,
		commissionRate: commissionRate,
	}
}

// Summarize computes the reconciliation summary for a till over [from, to].
// Every figure is derived from the tickets in the window on each call; nothing
// is accumulated between calls.
func (s *SalesServiceImpl) Summarize(ctx context.Context, tillID string, from, to time.Time) (*models.SalesSummary, error) {
	tickets, err := s.ticketRepo.QuerySalesWindow(ctx, tillID, from, to)
	if err != nil {
		slog.Error("Sales window query failed", "error", err, "tillId", tillID)
		return nil, fmt.Errorf("failed to query sales window: %w", err)
	}

	summary := &models.SalesSummary{
		TillID:         tillID,
		From:           from,
		To:             to,
		CommissionRate: s.commissionRate,
	}

	for _, ticket := range tickets {
		summary.TotalIssued++
		switch ticket.State {
		case models.TicketStateVoided:
			summary.TotalVoided++
			summary.VoidedAmount += ticket.TotalStake
			continue
		case models.TicketStateWinner:
			summary.WinnersTotalCount++
			summary.WinnersUnpaidCount++
		case models.TicketStatePaid:
			summary.WinnersTotalCount++
			summary.PrizesPaid += ticket.PrizeTotal()
		}
		// Voided tickets never reach here: gross sales covers every
		// ticket that was not cancelled.
		summary.GrossSales += ticket.TotalStake
	}

	summary.TotalValid = summary.TotalIssued - summary.TotalVoided
	summary.Commission = summary.GrossSales * s.commissionRate
	summary.NetPayable = summary.GrossSales - summary.PrizesPaid - summary.Commission

	return summary, nil
}

// ResolveWindow translates a named period into a concrete window. "hoy",
// "semana" and "mes" run from the start of the day, ISO week or month up to
// now; "fecha" covers the whole given day.
func (s *SalesServiceImpl) ResolveWindow(period string, day time.Time, now time.Time) (time.Time, time.Time, error) {
	startOfDay := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	}

	switch period {
	case "hoy":
		return startOfDay(now), now, nil
	case "semana":
		// Week starts on Monday
		offset := (int(now.Weekday()) + 6) % 7
		return startOfDay(now).AddDate(0, 0, -offset), now, nil
	case "mes":
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), now, nil
	case "fecha":
		from := startOfDay(day)
		return from, from.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown sales period %q", period)
	}
}
