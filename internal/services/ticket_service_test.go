package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lotopos/animalitos-pos-backend/internal/cart"
	"github.com/lotopos/animalitos-pos-backend/internal/models"
	"github.com/lotopos/animalitos-pos-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeTicketRepo is an in-memory repositories.TicketRepository for service
// tests. It mirrors the boundary's guarantees: state-guarded transitions
// applied atomically (the mutex stands in for FindOneAndUpdate) and
// idempotency-key replay.
type fakeTicketRepo struct {
	mu         sync.Mutex
	tickets    map[string]*models.Ticket // keyed by secret serial
	byKey      map[string]string         // idempotency key -> serial
	seq        int
	failCreate error
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{
		tickets: make(map[string]*models.Ticket),
		byKey:   make(map[string]string),
	}
}

func (f *fakeTicketRepo) CreateTicket(ctx context.Context, req *repositories.CreateTicketRequest) (*models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate != nil {
		return nil, f.failCreate
	}
	if serial, ok := f.byKey[req.IdempotencyKey]; ok {
		return f.tickets[serial], nil
	}
	f.seq++
	serial := time.Now().Format("150405.000000") + string(rune('A'+f.seq%26))
	ticket := &models.Ticket{
		ID:            primitive.NewObjectID(),
		TicketNumber:  req.TillID + "-" + serial,
		SecretSerial:  serial,
		TillID:        req.TillID,
		Currency:      req.Currency,
		State:         models.TicketStateActive,
		TotalStake:    req.TotalStake,
		Lines:         req.Lines,
		SaleTimestamp: time.Now(),
	}
	f.tickets[serial] = ticket
	f.byKey[req.IdempotencyKey] = serial
	return ticket, nil
}

func (f *fakeTicketRepo) FindBySerial(ctx context.Context, serial string) (*models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tickets[serial]; ok {
		return t, nil
	}
	return nil, models.ErrTicketNotFound
}

func (f *fakeTicketRepo) FindByNumber(ctx context.Context, number string) (*models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tickets {
		if t.TicketNumber == number {
			return t, nil
		}
	}
	return nil, models.ErrTicketNotFound
}

func (f *fakeTicketRepo) Void(ctx context.Context, serial string) (*models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[serial]
	if !ok {
		return nil, models.ErrTicketNotFound
	}
	if t.State.Terminal() {
		return nil, models.ErrTerminalState
	}
	if t.State != models.TicketStateActive {
		return nil, models.ErrNotActive
	}
	t.State = models.TicketStateVoided
	t.VoidedAt = time.Now()
	return t, nil
}

func (f *fakeTicketRepo) Pay(ctx context.Context, tillID, serial string) (*models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[serial]
	if !ok {
		return nil, models.ErrTicketNotFound
	}
	if t.State.Terminal() {
		return nil, models.ErrTerminalState
	}
	if t.State != models.TicketStateWinner {
		return nil, models.ErrNotWinner
	}
	t.State = models.TicketStatePaid
	t.PaidByTillID = tillID
	t.PaidAt = time.Now()
	return t, nil
}

func (f *fakeTicketRepo) MarkWinner(ctx context.Context, serial string, winningByDraw map[primitive.ObjectID]string) (*models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tickets[serial]
	if !ok {
		return nil, models.ErrTicketNotFound
	}
	if t.State != models.TicketStateActive {
		if t.State.Terminal() {
			return nil, models.ErrTerminalState
		}
		return nil, models.ErrNotActive
	}
	won := false
	for i := range t.Lines {
		if code, ok := winningByDraw[t.Lines[i].DrawID]; ok && code == t.Lines[i].OutcomeCode {
			t.Lines[i].Winner = true
			t.Lines[i].AwardedPrize = t.Lines[i].EstimatedPrize
			won = true
		}
	}
	if !won {
		return nil, models.ErrNotWinner
	}
	t.State = models.TicketStateWinner
	return t, nil
}

func (f *fakeTicketRepo) QuerySalesWindow(ctx context.Context, tillID string, from, to time.Time) ([]*models.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Ticket
	for _, t := range f.tickets {
		if t.TillID == tillID && !t.SaleTimestamp.Before(from) && !t.SaleTimestamp.After(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

func stagedLine(outcome string, stake float64) models.BetLine {
	return models.BetLine{
		LineID:         primitive.NewObjectID().Hex(),
		LotteryID:      primitive.NewObjectID(),
		LotteryName:    "Lotto Activo",
		DrawID:         primitive.NewObjectID(),
		DrawName:       "09:00 AM",
		DrawTime:       "09:00:00",
		OutcomeCode:    outcome,
		OutcomeName:    "PERICO",
		Stake:          stake,
		EstimatedPrize: stake * 30,
	}
}

func newTicketService(repo repositories.TicketRepository) (*TicketServiceImpl, *cart.Store) {
	carts := cart.NewStore()
	return NewTicketService(repo, carts, 30, time.Second), carts
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	svc, _ := newTicketService(newFakeTicketRepo())

	_, err := svc.Submit(context.Background(), "op1", "TAQ1", models.CurrencyVES, "")
	if !errors.Is(err, models.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestSubmitRejectsMissingSession(t *testing.T) {
	svc, _ := newTicketService(newFakeTicketRepo())

	if _, err := svc.Submit(context.Background(), "", "TAQ1", models.CurrencyVES, ""); !errors.Is(err, models.ErrNoSession) {
		t.Fatalf("expected ErrNoSession for missing session, got %v", err)
	}
	if _, err := svc.Submit(context.Background(), "op1", "", models.CurrencyVES, ""); !errors.Is(err, models.ErrNoSession) {
		t.Fatalf("expected ErrNoSession for missing till, got %v", err)
	}
}

func TestSubmitClearsCartAndRetainsReceipt(t *testing.T) {
	repo := newFakeTicketRepo()
	svc, carts := newTicketService(repo)

	pending := carts.Get("op1")
	pending.Add([]models.BetLine{stagedLine("7", 10), stagedLine("12", 15)})

	receipt, err := svc.Submit(context.Background(), "op1", "TAQ1", models.CurrencyVES, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if receipt.Total != 25 {
		t.Errorf("expected receipt total 25, got %v", receipt.Total)
	}
	if receipt.TicketNumber == "" || receipt.SecretSerial == "" {
		t.Error("receipt must carry the assigned identifiers")
	}
	if pending.Len() != 0 {
		t.Error("cart must be cleared after a confirmed submission")
	}
	if got := carts.LastReceipt("op1"); got == nil || got.TicketNumber != receipt.TicketNumber {
		t.Error("receipt must be retained for immediate reprint")
	}
}

func TestSubmitKeepsCartOnFailure(t *testing.T) {
	repo := newFakeTicketRepo()
	repo.failCreate = errors.New("connection reset")
	svc, carts := newTicketService(repo)

	pending := carts.Get("op1")
	pending.Add([]models.BetLine{stagedLine("7", 10)})

	if _, err := svc.Submit(context.Background(), "op1", "TAQ1", models.CurrencyVES, ""); err == nil {
		t.Fatal("expected submission to fail")
	}

	if pending.Len() != 1 {
		t.Error("cart must be retained when the boundary rejects the submission")
	}
	if carts.LastReceipt("op1") != nil {
		t.Error("no receipt must be retained for a failed submission")
	}
}

func TestSubmitReplaysIdempotencyKey(t *testing.T) {
	repo := newFakeTicketRepo()
	svc, carts := newTicketService(repo)

	carts.Get("op1").Add([]models.BetLine{stagedLine("7", 10)})
	first, err := svc.Submit(context.Background(), "op1", "TAQ1", models.CurrencyVES, "retry-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The till retries the same submission after a timeout
	carts.Get("op1").Add([]models.BetLine{stagedLine("7", 10)})
	second, err := svc.Submit(context.Background(), "op1", "TAQ1", models.CurrencyVES, "retry-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.TicketNumber != second.TicketNumber {
		t.Errorf("same idempotency key must yield the same ticket: %s vs %s", first.TicketNumber, second.TicketNumber)
	}
	if len(repo.tickets) != 1 {
		t.Errorf("expected exactly one persisted ticket, got %d", len(repo.tickets))
	}
}

func TestVoidNormalizesSerial(t *testing.T) {
	repo := newFakeTicketRepo()
	svc, carts := newTicketService(repo)

	carts.Get("op1").Add([]models.BetLine{stagedLine("7", 10)})
	receipt, err := svc.Submit(context.Background(), "op1", "TAQ1", models.CurrencyVES, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The operator types the serial in lowercase with stray spaces.
	// The fake stores serials as generated, which include no lowercase
	// letters, so normalization is what makes this lookup succeed.
	ticket, err := svc.Void(context.Background(), "  "+receipt.SecretSerial+" ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticket.State != models.TicketStateVoided {
		t.Errorf("expected VOIDED, got %s", ticket.State)
	}
}

func TestLifecycleGuards(t *testing.T) {
	repo := newFakeTicketRepo()
	svc, carts := newTicketService(repo)

	line := stagedLine("7", 10)
	carts.Get("op1").Add([]models.BetLine{line})
	receipt, err := svc.Submit(context.Background(), "op1", "TAQ1", models.CurrencyVES, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	serial := receipt.SecretSerial

	// ACTIVE cannot be paid
	if _, _, err := svc.Pay(context.Background(), "TAQ2", serial); !errors.Is(err, models.ErrNotWinner) {
		t.Fatalf("paying an ACTIVE ticket: expected ErrNotWinner, got %v", err)
	}

	// Wrong results do not move the ticket
	if _, err := svc.MarkWinner(context.Background(), serial, map[primitive.ObjectID]string{line.DrawID: "00"}); !errors.Is(err, models.ErrNotWinner) {
		t.Fatalf("expected ErrNotWinner for non-matching results, got %v", err)
	}

	// Matching results award the estimated prize
	ticket, err := svc.MarkWinner(context.Background(), serial, map[primitive.ObjectID]string{line.DrawID: "7"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticket.State != models.TicketStateWinner || ticket.PrizeTotal() != 300 {
		t.Fatalf("expected WINNER with prize 300, got %s / %v", ticket.State, ticket.PrizeTotal())
	}

	// WINNER cannot be voided once paid; pay once, then every further
	// transition hits the terminal guard
	paid, amount, err := svc.Pay(context.Background(), "TAQ2", serial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paid.State != models.TicketStatePaid || amount != 300 {
		t.Fatalf("expected PAID with amount 300, got %s / %v", paid.State, amount)
	}
	if paid.PaidByTillID != "TAQ2" {
		t.Errorf("paying till must be recorded, got %q", paid.PaidByTillID)
	}

	if _, _, err := svc.Pay(context.Background(), "TAQ2", serial); !errors.Is(err, models.ErrTerminalState) {
		t.Errorf("second pay must hit the terminal guard, got %v", err)
	}
	if _, err := svc.Void(context.Background(), serial); !errors.Is(err, models.ErrTerminalState) {
		t.Errorf("voiding a PAID ticket must fail, got %v", err)
	}
}

func TestConcurrentPaysYieldExactlyOnePayout(t *testing.T) {
	repo := newFakeTicketRepo()
	svc, carts := newTicketService(repo)

	line := stagedLine("7", 10)
	carts.Get("op1").Add([]models.BetLine{line})
	receipt, err := svc.Submit(context.Background(), "op1", "TAQ1", models.CurrencyVES, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	serial := receipt.SecretSerial

	if _, err := svc.MarkWinner(context.Background(), serial, map[primitive.ObjectID]string{line.DrawID: "7"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Two tills race to pay the same winner
	type payResult struct {
		till   string
		amount float64
		err    error
	}
	results := make(chan payResult, 2)
	var start sync.WaitGroup
	start.Add(1)
	for _, till := range []string{"TAQ1", "TAQ2"} {
		go func(till string) {
			start.Wait()
			_, amount, err := svc.Pay(context.Background(), till, serial)
			results <- payResult{till: till, amount: amount, err: err}
		}(till)
	}
	start.Done()

	var paid, conflicted int
	var winnerTill string
	for i := 0; i < 2; i++ {
		res := <-results
		switch {
		case res.err == nil:
			paid++
			winnerTill = res.till
			if res.amount != 300 {
				t.Errorf("expected payout 300, got %v", res.amount)
			}
		case errors.Is(res.err, models.ErrTerminalState):
			conflicted++
		default:
			t.Errorf("unexpected error from till %s: %v", res.till, res.err)
		}
	}

	if paid != 1 || conflicted != 1 {
		t.Fatalf("expected exactly one payout and one conflict, got %d payouts, %d conflicts", paid, conflicted)
	}

	ticket, err := repo.FindBySerial(context.Background(), serial)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ticket.State != models.TicketStatePaid {
		t.Errorf("expected PAID, got %s", ticket.State)
	}
	if ticket.PaidByTillID != winnerTill {
		t.Errorf("paying till must be the one that won the race: recorded %s, winner %s", ticket.PaidByTillID, winnerTill)
	}
}

func TestReprintFindsByNumberOrSerial(t *testing.T) {
	repo := newFakeTicketRepo()
	svc, carts := newTicketService(repo)

	carts.Get("op1").Add([]models.BetLine{stagedLine("7", 10)})
	receipt, err := svc.Submit(context.Background(), "op1", "TAQ1", models.CurrencyVES, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byNumber, err := svc.Reprint(context.Background(), receipt.TicketNumber)
	if err != nil || byNumber.TicketNumber != receipt.TicketNumber {
		t.Fatalf("reprint by number failed: %v", err)
	}
	bySerial, err := svc.Reprint(context.Background(), receipt.SecretSerial)
	if err != nil || bySerial.TicketNumber != receipt.TicketNumber {
		t.Fatalf("reprint by serial failed: %v", err)
	}
	if _, err := svc.Reprint(context.Background(), "NOPE-000000"); !errors.Is(err, models.ErrTicketNotFound) {
		t.Fatalf("expected ErrTicketNotFound, got %v", err)
	}
}

func TestRepeatIntoCartReplacesCart(t *testing.T) {
	repo := newFakeTicketRepo()
	svc, carts := newTicketService(repo)

	original := []models.BetLine{stagedLine("7", 10), stagedLine("12", 5)}
	carts.Get("op1").Add(original)
	receipt, err := svc.Submit(context.Background(), "op1", "TAQ1", models.CurrencyVES, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Something unrelated is staged before the repeat
	carts.Get("op1").Add([]models.BetLine{stagedLine("25", 99)})

	newDraw := cart.DrawSelection{ID: primitive.NewObjectID(), Name: "05:00 PM", DrawTime: "17:00:00"}
	drawByLottery := map[primitive.ObjectID]cart.DrawSelection{
		original[0].LotteryID: newDraw,
		original[1].LotteryID: newDraw,
	}

	added, err := svc.RepeatIntoCart(context.Background(), "op1", receipt.TicketNumber, drawByLottery)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added != 2 {
		t.Fatalf("expected 2 lines re-added, got %d", added)
	}

	lines := carts.Get("op1").Lines()
	if len(lines) != 2 {
		t.Fatalf("repeat must replace the cart, got %d lines", len(lines))
	}
	for _, line := range lines {
		if line.DrawID != newDraw.ID {
			t.Error("repeated lines must target the newly chosen draw")
		}
		if line.EstimatedPrize != line.Stake*30 {
			t.Errorf("estimated prize must be recomputed, got %v for stake %v", line.EstimatedPrize, line.Stake)
		}
	}
}

func TestRepeatSkipsLotteriesWithoutAChosenDraw(t *testing.T) {
	repo := newFakeTicketRepo()
	svc, carts := newTicketService(repo)

	original := []models.BetLine{stagedLine("7", 10), stagedLine("12", 5)}
	carts.Get("op1").Add(original)
	receipt, err := svc.Submit(context.Background(), "op1", "TAQ1", models.CurrencyVES, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	drawByLottery := map[primitive.ObjectID]cart.DrawSelection{
		original[0].LotteryID: {ID: primitive.NewObjectID(), Name: "05:00 PM", DrawTime: "17:00:00"},
	}

	added, err := svc.RepeatIntoCart(context.Background(), "op1", receipt.TicketNumber, drawByLottery)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added != 1 {
		t.Fatalf("expected only the mapped lottery's line, got %d", added)
	}
}
