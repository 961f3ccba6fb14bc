package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/caixazul/treasury_backend/internal/core/ports/services"
	"github.com/caixazul/treasury_backend/internal/dto"
	"github.com/caixazul/treasury_backend/internal/middleware"
)

// movementHandler handles the bank-movement ledger endpoints.
type movementHandler struct {
	movementService portssvc.MovementSvcFacade
}

func newMovementHandler(movementService portssvc.MovementSvcFacade) *movementHandler {
	return &movementHandler{movementService: movementService}
}

// registerMovementRoutes sets up the movement ledger routes.
func registerMovementRoutes(group *gin.RouterGroup, movementService portssvc.MovementSvcFacade) {
	h := newMovementHandler(movementService)

	movements := group.Group("/movimentacoes")
	{
		movements.POST("", h.createMovement)
		movements.GET("", h.listMovements)
		movements.POST("/transferencia", h.createTransfer)
		movements.POST("/conciliacao", h.setReconciled)
		movements.POST("/:movementID/estorno", h.reverseMovement)
	}
}

func (h *movementHandler) createMovement(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	movement, err := h.movementService.CreateManualMovement(c.Request.Context(), adminID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}

func (h *movementHandler) listMovements(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListMovementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}
	from, _ := time.Parse(dto.DateLayout, params.From)
	to, _ := time.Parse(dto.DateLayout, params.To)

	movements, err := h.movementService.ListMovements(c.Request.Context(), adminID, params.BankAccountID, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToMovementResponses(movements))
}

func (h *movementHandler) createTransfer(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	legs, err := h.movementService.CreateTransfer(c.Request.Context(), adminID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToMovementResponses(legs))
}

func (h *movementHandler) setReconciled(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	if err := h.movementService.SetReconciled(c.Request.Context(), adminID, req.MovementIDs, req.Reconciled); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *movementHandler) reverseMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	adminID, ok := requireUserID(c)
	if !ok {
		return
	}
	movementID := c.Param("movementID")

	var req dto.ReverseMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Reversal reason is required"})
		return
	}

	counterEntry, err := h.movementService.ReverseMovement(c.Request.Context(), adminID, movementID, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	logger.Info("Movement reversed via API",
		slog.String("movement_id", movementID),
		slog.String("counter_entry_id", counterEntry.MovementID))
	c.JSON(http.StatusCreated, dto.ToMovementResponse(counterEntry))
}
