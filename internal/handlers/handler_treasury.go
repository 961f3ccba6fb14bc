package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/caixazul/treasury_backend/internal/core/ports/services"
	"github.com/caixazul/treasury_backend/internal/dto"
	"github.com/caixazul/treasury_backend/internal/utils"
)

// treasuryHandler serves the balance projections behind the treasury screen.
type treasuryHandler struct {
	treasuryService portssvc.TreasurySvcFacade
}

func newTreasuryHandler(treasuryService portssvc.TreasurySvcFacade) *treasuryHandler {
	return &treasuryHandler{treasuryService: treasuryService}
}

// registerTreasuryRoutes sets up the treasury routes.
func registerTreasuryRoutes(group *gin.RouterGroup, treasuryService portssvc.TreasurySvcFacade) {
	h := newTreasuryHandler(treasuryService)

	treasury := group.Group("/tesouraria")
	{
		treasury.GET("/resumo", h.periodSummary)
		treasury.GET("/contas/:accountID/saldo", h.projectedBalance)
	}
}

func (h *treasuryHandler) periodSummary(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.TreasuryPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}
	from, _ := time.Parse(dto.DateLayout, params.From)
	to, _ := time.Parse(dto.DateLayout, params.To)

	summary, err := h.treasuryService.PeriodSummary(c.Request.Context(), adminID, params.BankAccountID, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *treasuryHandler) projectedBalance(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}
	accountID := c.Param("accountID")

	var params dto.BalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}
	asOf, _ := time.Parse(dto.DateLayout, params.AsOf)

	balance, err := h.treasuryService.ProjectedBalance(c.Request.Context(), adminID, accountID, asOf)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{
		BankAccountID:    accountID,
		AsOf:             params.AsOf,
		ProjectedBalance: utils.FromCents(balance),
	})
}
