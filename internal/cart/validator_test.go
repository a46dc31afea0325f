package cart

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testLottery() *LotterySelection {
	return &LotterySelection{ID: primitive.NewObjectID(), Name: "Lotto Activo"}
}

func testDraws(n int) []DrawSelection {
	draws := make([]DrawSelection, 0, n)
	for i := 0; i < n; i++ {
		draws = append(draws, DrawSelection{ID: primitive.NewObjectID(), Name: "Sorteo", DrawTime: "09:00:00"})
	}
	return draws
}

func TestValidateChecksInOrder(t *testing.T) {
	v := NewValidator(30)

	cases := []struct {
		name    string
		lottery *LotterySelection
		draws   []DrawSelection
		stake   string
		outcome string
		want    error
	}{
		{"no lottery", nil, testDraws(1), "10", "7", ErrNoLottery},
		{"no lottery wins over no draws", nil, nil, "x", "zz", ErrNoLottery},
		{"no draws", testLottery(), nil, "10", "7", ErrNoDraw},
		{"empty stake", testLottery(), testDraws(1), "", "7", ErrInvalidStake},
		{"zero stake", testLottery(), testDraws(1), "0", "7", ErrInvalidStake},
		{"negative stake", testLottery(), testDraws(1), "-5", "7", ErrInvalidStake},
		{"garbage stake", testLottery(), testDraws(1), "abc", "7", ErrInvalidStake},
		{"NaN stake", testLottery(), testDraws(1), "NaN", "7", ErrInvalidStake},
		{"lowercase nan stake", testLottery(), testDraws(1), "nan", "7", ErrInvalidStake},
		{"Inf stake", testLottery(), testDraws(1), "Inf", "7", ErrInvalidStake},
		{"signed Inf stake", testLottery(), testDraws(1), "+Inf", "7", ErrInvalidStake},
		{"Infinity stake", testLottery(), testDraws(1), "Infinity", "7", ErrInvalidStake},
		{"unknown outcome", testLottery(), testDraws(1), "10", "99", ErrInvalidOutcome},
		{"empty outcome", testLottery(), testDraws(1), "10", "", ErrInvalidOutcome},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := v.Validate(tc.lottery, tc.draws, tc.stake, tc.outcome)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestValidateFansOutPerDraw(t *testing.T) {
	v := NewValidator(30)
	lottery := testLottery()
	draws := testDraws(3)

	lines, err := v.Validate(lottery, draws, "2.5", "00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	seen := make(map[string]bool)
	for i, line := range lines {
		if line.LotteryID != lottery.ID {
			t.Errorf("line %d: wrong lottery", i)
		}
		if line.DrawID != draws[i].ID {
			t.Errorf("line %d: wrong draw", i)
		}
		if line.OutcomeCode != "00" || line.OutcomeName != "BALLENA" {
			t.Errorf("line %d: wrong outcome %s/%s", i, line.OutcomeCode, line.OutcomeName)
		}
		if line.Stake != 2.5 {
			t.Errorf("line %d: wrong stake %v", i, line.Stake)
		}
		if line.EstimatedPrize != 75 {
			t.Errorf("line %d: wrong estimated prize %v", i, line.EstimatedPrize)
		}
		if line.LineID == "" || seen[line.LineID] {
			t.Errorf("line %d: line IDs must be unique and non-empty", i)
		}
		seen[line.LineID] = true
	}
}
