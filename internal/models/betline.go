package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BetLine is a single play staged in the cart before submission. It exists
// only client-side; on submission it becomes a TicketLine inside a Ticket.
type BetLine struct {
	LineID         string             `json:"lineId"` // cart-local identifier
	LotteryID      primitive.ObjectID `json:"lotteryId"`
	LotteryName    string             `json:"lotteryName"`
	DrawID         primitive.ObjectID `json:"drawId"`
	DrawName       string             `json:"drawName"`
	DrawTime       string             `json:"drawTime"`
	OutcomeCode    string             `json:"outcomeCode"`
	OutcomeName    string             `json:"outcomeName"`
	Stake          float64            `json:"stake"`
	EstimatedPrize float64            `json:"estimatedPrize"`
}

// SameSlot reports whether two lines target the same (lottery, draw, outcome)
// tuple, the cart's deduplication key.
func (b BetLine) SameSlot(other BetLine) bool {
	return b.LotteryID == other.LotteryID &&
		b.DrawID == other.DrawID &&
		b.OutcomeCode == other.OutcomeCode
}

// ToTicketLine converts a staged line into its persisted projection.
func (b BetLine) ToTicketLine() TicketLine {
	return TicketLine{
		LotteryID:      b.LotteryID,
		LotteryName:    b.LotteryName,
		DrawID:         b.DrawID,
		DrawName:       b.DrawName,
		DrawTime:       b.DrawTime,
		OutcomeCode:    b.OutcomeCode,
		OutcomeName:    b.OutcomeName,
		Stake:          b.Stake,
		EstimatedPrize: b.EstimatedPrize,
	}
}
