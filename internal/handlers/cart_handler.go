package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lotopos/animalitos-pos-backend/internal/cart"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartHandler handles the pending slip HTTP surface
type CartHandler struct {
	carts     *cart.Store
	validator *cart.Validator
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts *cart.Store, validator *cart.Validator) *CartHandler {
	return &CartHandler{
		carts:     carts,
		validator: validator,
	}
}

// AddLinesRequest is the payload for staging a play across one or more draws
type AddLinesRequest struct {
	Lottery struct {
		ID   string `json:"id" binding:"required"`
		Name string `json:"name" binding:"required"`
	} `json:"lottery" binding:"required"`
	Draws []struct {
		ID       string `json:"id" binding:"required"`
		Name     string `json:"name" binding:"required"`
		DrawTime string `json:"drawTime"`
	} `json:"draws" binding:"required"`
	Stake       string `json:"stake"`
	OutcomeCode string `json:"outcomeCode"`
}

// AddLines handles POST /cart/lines. One play fans out into one line per
// selected draw; slots already in the cart are skipped.
func (h *CartHandler) AddLines(c *gin.Context) {
	var request AddLinesRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lotteryID, err := primitive.ObjectIDFromHex(request.Lottery.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lottery ID format"})
		return
	}
	lottery := &cart.LotterySelection{ID: lotteryID, Name: request.Lottery.Name}

	draws := make([]cart.DrawSelection, 0, len(request.Draws))
	for _, d := range request.Draws {
		drawID, err := primitive.ObjectIDFromHex(d.ID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid draw ID format"})
			return
		}
		draws = append(draws, cart.DrawSelection{ID: drawID, Name: d.Name, DrawTime: d.DrawTime})
	}

	lines, err := h.validator.Validate(lottery, draws, request.Stake, request.OutcomeCode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}

	pending := h.carts.Get(sessionID(c))
	added := pending.Add(lines)

	c.JSON(http.StatusOK, gin.H{
		"added": added,
		"lines": pending.Lines(),
		"total": pending.Total(),
	})
}

// RemoveLine handles DELETE /cart/lines/:lineId
func (h *CartHandler) RemoveLine(c *gin.Context) {
	pending := h.carts.Get(sessionID(c))
	pending.Remove(c.Param("lineId"))

	c.JSON(http.StatusOK, gin.H{
		"lines": pending.Lines(),
		"total": pending.Total(),
	})
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	h.carts.Get(sessionID(c)).Clear()
	c.JSON(http.StatusOK, gin.H{"lines": []any{}, "total": 0})
}

// Get handles GET /cart. When both `outcome` and `draws` (comma-separated
// draw IDs) are passed, the response also reports whether that outcome is
// already staged for every one of those draws.
func (h *CartHandler) Get(c *gin.Context) {
	pending := h.carts.Get(sessionID(c))

	response := gin.H{
		"lines": pending.Lines(),
		"count": pending.Len(),
		"total": pending.Total(),
	}

	outcome := c.Query("outcome")
	drawsParam := c.Query("draws")
	if outcome != "" && drawsParam != "" {
		var drawIDs []primitive.ObjectID
		for _, raw := range strings.Split(drawsParam, ",") {
			drawID, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid draw ID format"})
				return
			}
			drawIDs = append(drawIDs, drawID)
		}
		response["covered"] = pending.OutcomeCoveredForDraws(outcome, drawIDs)
	}

	c.JSON(http.StatusOK, response)
}

// validationMessage maps validator errors onto operator-facing messages
func validationMessage(err error) string {
	switch {
	case errors.Is(err, cart.ErrNoLottery):
		return "Selecciona una lotería"
	case errors.Is(err, cart.ErrNoDraw):
		return "Selecciona al menos un sorteo"
	case errors.Is(err, cart.ErrInvalidStake):
		return "Ingresa un monto válido"
	case errors.Is(err, cart.ErrInvalidOutcome):
		return "Animalito no válido"
	default:
		return err.Error()
	}
}

// sessionID returns the cart key for the authenticated operator. The auth
// middleware guarantees the value is present on protected routes.
func sessionID(c *gin.Context) string {
	return c.GetString("operatorID")
}
