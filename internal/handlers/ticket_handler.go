package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lotopos/animalitos-pos-backend/internal/cart"
	"github.com/lotopos/animalitos-pos-backend/internal/models"
	"github.com/lotopos/animalitos-pos-backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TicketHandler handles ticket submission and lifecycle HTTP requests
type TicketHandler struct {
	ticketService services.TicketService
}

// NewTicketHandler creates a new TicketHandler
func NewTicketHandler(ticketService services.TicketService) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// SubmitRequest is the payload for committing the pending cart
type SubmitRequest struct {
	Currency string `json:"currency"`
}

// Submit handles POST /tickets. The optional X-Idempotency-Key header lets a
// till retry a submission after a transport failure without risking a
// duplicate ticket.
func (h *TicketHandler) Submit(c *gin.Context) {
	var request SubmitRequest
	// Body is optional; currency defaults to bolívares
	_ = c.ShouldBindJSON(&request)

	currency := models.Currency(request.Currency)
	if request.Currency == "" {
		currency = models.CurrencyVES
	}
	if !models.ValidCurrency(currency) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid currency"})
		return
	}

	receipt, err := h.ticketService.Submit(
		c.Request.Context(),
		sessionID(c),
		c.GetString("tillId"),
		currency,
		c.GetHeader("X-Idempotency-Key"),
	)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, receipt)
}

// Lookup handles GET /tickets/:ref, where ref is a ticket number or a secret
// serial. Used for reprints.
func (h *TicketHandler) Lookup(c *gin.Context) {
	receipt, err := h.ticketService.Reprint(c.Request.Context(), c.Param("ref"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

// Void handles POST /tickets/:ref/void
func (h *TicketHandler) Void(c *gin.Context) {
	ticket, err := h.ticketService.Void(c.Request.Context(), c.Param("ref"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ticketNumber": ticket.TicketNumber,
		"state":        ticket.State,
		"voidedAt":     ticket.VoidedAt,
	})
}

// Pay handles POST /tickets/:ref/pay. The paying till is taken from the
// session, not the request: any till of the agency may pay a winner.
func (h *TicketHandler) Pay(c *gin.Context) {
	ticket, amount, err := h.ticketService.Pay(c.Request.Context(), c.GetString("tillId"), c.Param("ref"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ticketNumber": ticket.TicketNumber,
		"state":        ticket.State,
		"amountPaid":   amount,
		"paidAt":       ticket.PaidAt,
	})
}

// WinnerResult pairs a draw with its published outcome
type WinnerResult struct {
	DrawID      string `json:"drawId" binding:"required"`
	OutcomeCode string `json:"outcomeCode" binding:"required"`
}

// MarkWinnerRequest carries the published results to settle a ticket against
type MarkWinnerRequest struct {
	Results []WinnerResult `json:"results" binding:"required"`
}

// MarkWinner handles POST /tickets/:ref/winner
func (h *TicketHandler) MarkWinner(c *gin.Context) {
	var request MarkWinnerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	winningByDraw := make(map[primitive.ObjectID]string, len(request.Results))
	for _, result := range request.Results {
		drawID, err := primitive.ObjectIDFromHex(result.DrawID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid draw ID format"})
			return
		}
		winningByDraw[drawID] = result.OutcomeCode
	}

	ticket, err := h.ticketService.MarkWinner(c.Request.Context(), c.Param("ref"), winningByDraw)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ticketNumber": ticket.TicketNumber,
		"state":        ticket.State,
		"prizeTotal":   ticket.PrizeTotal(),
	})
}

// RepeatRequest chooses the fresh draw for each lottery on the repeated ticket
type RepeatRequest struct {
	Draws []struct {
		LotteryID string `json:"lotteryId" binding:"required"`
		ID        string `json:"id" binding:"required"`
		Name      string `json:"name" binding:"required"`
		DrawTime  string `json:"drawTime"`
	} `json:"draws" binding:"required"`
}

// Repeat handles POST /cart/repeat/:ticketNumber
func (h *TicketHandler) Repeat(c *gin.Context) {
	var request RepeatRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	drawByLottery := make(map[primitive.ObjectID]cart.DrawSelection, len(request.Draws))
	for _, d := range request.Draws {
		lotteryID, err := primitive.ObjectIDFromHex(d.LotteryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lottery ID format"})
			return
		}
		drawID, err := primitive.ObjectIDFromHex(d.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid draw ID format"})
			return
		}
		drawByLottery[lotteryID] = cart.DrawSelection{ID: drawID, Name: d.Name, DrawTime: d.DrawTime}
	}

	added, err := h.ticketService.RepeatIntoCart(c.Request.Context(), sessionID(c), c.Param("ticketNumber"), drawByLottery)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added})
}

// writeError maps service errors onto HTTP status codes
func (h *TicketHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
	case errors.Is(err, models.ErrNoSession):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "No till session"})
	case errors.Is(err, models.ErrTicketNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
	case errors.Is(err, models.ErrTerminalState),
		errors.Is(err, models.ErrNotWinner),
		errors.Is(err, models.ErrNotActive):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Persistence boundary timed out"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
	}
}
