package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/caixazul/treasury_backend/internal/core/ports/services"
	"github.com/caixazul/treasury_backend/internal/dto"
)

// receivableHandler handles the receivables (receitas) endpoints.
type receivableHandler struct {
	receivableService portssvc.ReceivableSvcFacade
}

func newReceivableHandler(receivableService portssvc.ReceivableSvcFacade) *receivableHandler {
	return &receivableHandler{receivableService: receivableService}
}

// registerReceivableRoutes sets up the receivable routes.
func registerReceivableRoutes(group *gin.RouterGroup, receivableService portssvc.ReceivableSvcFacade) {
	h := newReceivableHandler(receivableService)

	receivables := group.Group("/receitas")
	{
		receivables.POST("", h.createReceivable)
		receivables.GET("", h.listReceivables)
		receivables.GET("/:receivableID", h.getReceivable)
		receivables.GET("/:receivableID/liquidacoes", h.listSettlements)
		receivables.POST("/:receivableID/liquidacoes", h.settleReceivable)
	}
}

func (h *receivableHandler) createReceivable(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	receivable, err := h.receivableService.CreateReceivable(c.Request.Context(), adminID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToReceivableResponse(receivable))
}

func (h *receivableHandler) getReceivable(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	receivable, err := h.receivableService.GetReceivableByID(c.Request.Context(), adminID, c.Param("receivableID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReceivableResponse(receivable))
}

func (h *receivableHandler) listReceivables(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	statuses := statusFilter(c)
	receivables, err := h.receivableService.ListReceivables(c.Request.Context(), adminID, statuses)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]dto.ReceivableResponse, len(receivables))
	for i := range receivables {
		out[i] = dto.ToReceivableResponse(&receivables[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *receivableHandler) listSettlements(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	settlements, err := h.receivableService.ListSettlements(c.Request.Context(), adminID, c.Param("receivableID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementResponses(settlements))
}

func (h *receivableHandler) settleReceivable(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	settlement, err := h.receivableService.SettleReceivable(c.Request.Context(), adminID, c.Param("receivableID"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSettlementResponse(settlement))
}
