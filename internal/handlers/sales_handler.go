package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lotopos/animalitos-pos-backend/internal/services"
)

// SalesHandler handles till reconciliation HTTP requests
type SalesHandler struct {
	salesService services.SalesService
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(salesService services.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

// Summary handles GET /sales/summary. The window is chosen either with
// ?period=hoy|semana|mes, with ?period=fecha&date=YYYY-MM-DD, or explicitly
// with ?from=RFC3339&to=RFC3339.
func (h *SalesHandler) Summary(c *gin.Context) {
	tillID := c.GetString("tillId")

	from, to, err := h.resolveWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.salesService.Summarize(c.Request.Context(), tillID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute sales summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *SalesHandler) resolveWindow(c *gin.Context) (time.Time, time.Time, error) {
	if fromParam := c.Query("from"); fromParam != "" {
		from, err := time.Parse(time.RFC3339, fromParam)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to, err := time.Parse(time.RFC3339, c.Query("to"))
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return from, to, nil
	}

	period := c.DefaultQuery("period", "hoy")
	var day time.Time
	if period == "fecha" {
		var err error
		day, err = time.Parse("2006-01-02", c.Query("date"))
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return h.salesService.ResolveWindow(period, day, time.Now())
}
