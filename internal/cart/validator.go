package cart

import (
	"errors"
	"math"
	"strconv"

	"github.com/google/uuid"
	"github.com/lotopos/animalitos-pos-backend/internal/catalog"
	"github.com/lotopos/animalitos-pos-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Validation errors, surfaced verbatim to the operator. First failure wins.
var (
	ErrNoLottery      = errors.New("no lottery selected")
	ErrNoDraw         = errors.New("no draw selected")
	ErrInvalidStake   = errors.New("stake must be a positive amount")
	ErrInvalidOutcome = errors.New("outcome code is not in the game table")
)

// LotterySelection is the operator's currently chosen lottery
type LotterySelection struct {
	ID   primitive.ObjectID `json:"id"`
	Name string             `json:"name"`
}

// DrawSelection is one of the operator's currently toggled draws
type DrawSelection struct {
	ID       primitive.ObjectID `json:"id"`
	Name     string             `json:"name"`
	DrawTime string             `json:"drawTime"`
}

// Validator builds bet lines from raw operator input. It is stateless; the
// prize multiplier is the only configuration it carries.
type Validator struct {
	prizeMultiplier float64
}

// NewValidator creates a Validator with the configured fixed multiplier.
func NewValidator(prizeMultiplier float64) *Validator {
	return &Validator{prizeMultiplier: prizeMultiplier}
}

// Validate checks the preconditions in order and, on success, fans the play
// out into one BetLine per selected draw. It has no side effects; the caller
// adds the returned lines to the cart, where per-slot deduplication applies.
func (v *Validator) Validate(lottery *LotterySelection, draws []DrawSelection, stakeInput, outcomeCode string) ([]models.BetLine, error) {
	if lottery == nil {
		return nil, ErrNoLottery
	}
	if len(draws) == 0 {
		return nil, ErrNoDraw
	}
	// ParseFloat accepts "NaN" and the infinity spellings, which would
	// poison every total downstream; only finite positive stakes pass.
	stake, err := strconv.ParseFloat(stakeInput, 64)
	if err != nil || math.IsNaN(stake) || math.IsInf(stake, 0) || stake <= 0 {
		return nil, ErrInvalidStake
	}
	outcome, ok := catalog.Find(outcomeCode)
	if !ok {
		return nil, ErrInvalidOutcome
	}

	lines := make([]models.BetLine, 0, len(draws))
	for _, draw := range draws {
		lines = append(lines, models.BetLine{
			LineID:         uuid.NewString(),
			LotteryID:      lottery.ID,
			LotteryName:    lottery.Name,
			DrawID:         draw.ID,
			DrawName:       draw.Name,
			DrawTime:       draw.DrawTime,
			OutcomeCode:    outcome.Code,
			OutcomeName:    outcome.Name,
			Stake:          stake,
			EstimatedPrize: stake * v.prizeMultiplier,
		})
	}
	return lines, nil
}
