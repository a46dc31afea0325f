// Package cart implements the pending slip: the ordered, session-local
// staging area bet lines accumulate in before submission. A cart belongs to
// exactly one operator session and is mutated by a single writer, so the
// Cart type itself carries no locking; the Store that hands carts out does.
package cart

import (
	"github.com/lotopos/animalitos-pos-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cart is the pending slip for one operator session. Insertion order is
// preserved because the receipt groups lines in the order they were played.
type Cart struct {
	lines []models.BetLine
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add appends each candidate line unless a line with the same
// (lottery, draw, outcome) slot already exists. Re-adding a covered slot is
// a no-op, not an error. Returns how many lines were actually appended so
// callers can tell "nothing new" apart from a normal add.
func (c *Cart) Add(lines []models.BetLine) int {
	added := 0
	for _, candidate := range lines {
		if c.covered(candidate) {
			continue
		}
		c.lines = append(c.lines, candidate)
		added++
	}
	return added
}

func (c *Cart) covered(candidate models.BetLine) bool {
	for _, line := range c.lines {
		if line.SameSlot(candidate) {
			return true
		}
	}
	return false
}

// Remove deletes the line with the given cart-local id. Removing an absent
// id is a no-op.
func (c *Cart) Remove(lineID string) {
	for i, line := range c.lines {
		if line.LineID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the staged lines in insertion order.
func (c *Cart) Lines() []models.BetLine {
	out := make([]models.BetLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of staged lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Total recomputes the sum of stakes on every call. The cart is small and
// bounded by one operator session, so there is no cached total to keep
// consistent.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, line := range c.lines {
		total += line.Stake
	}
	return total
}

// OutcomeCoveredForDraws reports whether a line exists for the outcome in
// every one of the given draws. Used for grid highlighting only; it is a
// derived read, not an invariant the cart maintains.
func (c *Cart) OutcomeCoveredForDraws(outcomeCode string, drawIDs []primitive.ObjectID) bool {
	if len(drawIDs) == 0 {
		return false
	}
	for _, drawID := range drawIDs {
		found := false
		for _, line := range c.lines {
			if line.OutcomeCode == outcomeCode && line.DrawID == drawID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
