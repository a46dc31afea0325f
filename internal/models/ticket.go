package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketState represents the lifecycle state of a ticket
type TicketState string

const (
	TicketStateActive TicketState = "ACTIVE"
	TicketStateWinner TicketState = "WINNER"
	TicketStatePaid   TicketState = "PAID"
	TicketStateVoided TicketState = "VOIDED"
)

// Terminal reports whether no further transition is allowed from the state.
func (s TicketState) Terminal() bool {
	return s == TicketStatePaid || s == TicketStateVoided
}

// Currency is the operating currency of a till
type Currency string

const (
	CurrencyVES Currency = "VES"
	CurrencyUSD Currency = "USD"
)

// ValidCurrency reports whether c is one of the supported currencies.
func ValidCurrency(c Currency) bool {
	return c == CurrencyVES || c == CurrencyUSD
}

// TicketLine is the persisted projection of a BetLine inside a ticket
type TicketLine struct {
	LotteryID      primitive.ObjectID `bson:"lotteryId" json:"lotteryId"`
	LotteryName    string             `bson:"lotteryName" json:"lotteryName"`
	DrawID         primitive.ObjectID `bson:"drawId" json:"drawId"`
	DrawName       string             `bson:"drawName" json:"drawName"`
	DrawTime       string             `bson:"drawTime" json:"drawTime"` // "10:00:00"
	OutcomeCode    string             `bson:"outcomeCode" json:"outcomeCode"`
	OutcomeName    string             `bson:"outcomeName" json:"outcomeName"`
	Stake          float64            `bson:"stake" json:"stake"`
	EstimatedPrize float64            `bson:"estimatedPrize" json:"estimatedPrize"`
	AwardedPrize   float64            `bson:"awardedPrize,omitempty" json:"awardedPrize,omitempty"`
	Winner         bool               `bson:"winner,omitempty" json:"winner,omitempty"`
}

// Ticket represents a persisted bet slip with server-assigned identity.
// TicketNumber and SecretSerial are generated exactly once at creation by
// the persistence boundary; the serial is the credential required to void
// or pay the ticket and must never be derivable from the ticket number.
type Ticket struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TicketNumber   string             `bson:"ticketNumber" json:"ticketNumber"`
	SecretSerial   string             `bson:"secretSerial" json:"secretSerial"`
	IdempotencyKey string             `bson:"idempotencyKey,omitempty" json:"-"`
	TillID         string             `bson:"tillId" json:"tillId"`
	Currency       Currency           `bson:"currency" json:"currency"`
	State          TicketState        `bson:"state" json:"state"`
	TotalStake     float64            `bson:"totalStake" json:"totalStake"`
	Lines          []TicketLine       `bson:"lines" json:"lines"`
	SaleTimestamp  time.Time          `bson:"saleTimestamp" json:"saleTimestamp"`
	PaidByTillID   string             `bson:"paidByTillId,omitempty" json:"paidByTillId,omitempty"`
	PaidAt         time.Time          `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	VoidedAt       time.Time          `bson:"voidedAt,omitempty" json:"voidedAt,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PrizeTotal sums the awarded prizes over winning lines.
func (t *Ticket) PrizeTotal() float64 {
	total := 0.0
	for _, line := range t.Lines {
		if line.Winner {
			total += line.AwardedPrize
		}
	}
	return total
}
