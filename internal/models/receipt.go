package models

import "time"

// ReceiptLine is one printed play: padded code, name, stake
type ReceiptLine struct {
	OutcomeCode    string  `json:"outcomeCode"`
	OutcomeName    string  `json:"outcomeName"`
	Stake          float64 `json:"stake"`
	EstimatedPrize float64 `json:"estimatedPrize"`
}

// ReceiptDrawGroup groups the printed plays of one draw
type ReceiptDrawGroup struct {
	DrawName string        `json:"drawName"`
	DrawTime string        `json:"drawTime"`
	Lines    []ReceiptLine `json:"lines"`
}

// ReceiptLotteryGroup groups one lottery's draws on the receipt
type ReceiptLotteryGroup struct {
	LotteryName string             `json:"lotteryName"`
	Draws       []ReceiptDrawGroup `json:"draws"`
}

// TicketReceipt is the print-ready projection of a ticket: header
// identifiers plus lines grouped lottery -> draw in insertion order.
type TicketReceipt struct {
	TicketNumber  string                `json:"ticketNumber"`
	SecretSerial  string                `json:"secretSerial"`
	TillID        string                `json:"tillId"`
	Currency      Currency              `json:"currency"`
	State         TicketState           `json:"state"`
	SaleTimestamp time.Time             `json:"saleTimestamp"`
	Total         float64               `json:"total"`
	Groups        []ReceiptLotteryGroup `json:"groups"`
}

// BuildReceipt projects a ticket into its grouped receipt form. Grouping
// preserves the insertion order of lines, which is what the printed slip
// follows.
func BuildReceipt(t *Ticket) *TicketReceipt {
	receipt := &TicketReceipt{
		TicketNumber:  t.TicketNumber,
		SecretSerial:  t.SecretSerial,
		TillID:        t.TillID,
		Currency:      t.Currency,
		State:         t.State,
		SaleTimestamp: t.SaleTimestamp,
		Total:         t.TotalStake,
	}

	lotteryIdx := map[string]int{}
	for _, line := range t.Lines {
		li, ok := lotteryIdx[line.LotteryName]
		if !ok {
			receipt.Groups = append(receipt.Groups, ReceiptLotteryGroup{LotteryName: line.LotteryName})
			li = len(receipt.Groups) - 1
			lotteryIdx[line.LotteryName] = li
		}
		group := &receipt.Groups[li]

		di := -1
		for i := range group.Draws {
			if group.Draws[i].DrawName == line.DrawName {
				di = i
				break
			}
		}
		if di == -1 {
			group.Draws = append(group.Draws, ReceiptDrawGroup{DrawName: line.DrawName, DrawTime: line.DrawTime})
			di = len(group.Draws) - 1
		}

		code := line.OutcomeCode
		if len(code) < 2 {
			code = "0" + code
		}
		group.Draws[di].Lines = append(group.Draws[di].Lines, ReceiptLine{
			OutcomeCode:    code,
			OutcomeName:    line.OutcomeName,
			Stake:          line.Stake,
			EstimatedPrize: line.EstimatedPrize,
		})
	}

	return receipt
}
