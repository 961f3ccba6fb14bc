package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caixazul/treasury_backend/internal/core/domain"
	portssvc "github.com/caixazul/treasury_backend/internal/core/ports/services"
	"github.com/caixazul/treasury_backend/internal/dto"
)

// payableHandler handles the payables (despesas) endpoints.
type payableHandler struct {
	payableService portssvc.PayableSvcFacade
}

func newPayableHandler(payableService portssvc.PayableSvcFacade) *payableHandler {
	return &payableHandler{payableService: payableService}
}

// registerPayableRoutes sets up the payable routes.
func registerPayableRoutes(group *gin.RouterGroup, payableService portssvc.PayableSvcFacade) {
	h := newPayableHandler(payableService)

	payables := group.Group("/despesas")
	{
		payables.POST("", h.createPayable)
		payables.GET("", h.listPayables)
		payables.GET("/:payableID", h.getPayable)
		payables.GET("/:payableID/liquidacoes", h.listSettlements)
		payables.POST("/:payableID/liquidacoes", h.settlePayable)
	}
}

func (h *payableHandler) createPayable(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePayableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	payable, err := h.payableService.CreatePayable(c.Request.Context(), adminID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToPayableResponse(payable))
}

func (h *payableHandler) getPayable(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	payable, err := h.payableService.GetPayableByID(c.Request.Context(), adminID, c.Param("payableID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPayableResponse(payable))
}

func (h *payableHandler) listPayables(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	statuses := statusFilter(c)
	payables, err := h.payableService.ListPayables(c.Request.Context(), adminID, statuses)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]dto.PayableResponse, len(payables))
	for i := range payables {
		out[i] = dto.ToPayableResponse(&payables[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *payableHandler) listSettlements(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	settlements, err := h.payableService.ListSettlements(c.Request.Context(), adminID, c.Param("payableID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementResponses(settlements))
}

func (h *payableHandler) settlePayable(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	settlement, err := h.payableService.SettlePayable(c.Request.Context(), adminID, c.Param("payableID"), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSettlementResponse(settlement))
}

// statusFilter reads the repeatable status query parameter.
func statusFilter(c *gin.Context) []domain.SettlementStatus {
	values := c.QueryArray("status")
	if len(values) == 0 {
		return nil
	}
	statuses := make([]domain.SettlementStatus, len(values))
	for i, v := range values {
		statuses[i] = domain.SettlementStatus(v)
	}
	return statuses
}
