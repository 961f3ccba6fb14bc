package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/caixazul/treasury_backend/internal/core/ports/services"
	"github.com/caixazul/treasury_backend/internal/dto"
)

// bankAccountHandler handles the bank account endpoints.
type bankAccountHandler struct {
	accountService portssvc.BankAccountSvcFacade
}

func newBankAccountHandler(accountService portssvc.BankAccountSvcFacade) *bankAccountHandler {
	return &bankAccountHandler{accountService: accountService}
}

// registerBankAccountRoutes sets up the bank account routes.
func registerBankAccountRoutes(group *gin.RouterGroup, accountService portssvc.BankAccountSvcFacade) {
	h := newBankAccountHandler(accountService)

	accounts := group.Group("/contas-bancarias")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:accountID", h.getAccount)
	}
}

func (h *bankAccountHandler) createAccount(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	account, err := h.accountService.CreateBankAccount(c.Request.Context(), adminID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

func (h *bankAccountHandler) getAccount(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetBankAccountByID(c.Request.Context(), adminID, c.Param("accountID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

func (h *bankAccountHandler) listAccounts(c *gin.Context) {
	adminID, ok := requireUserID(c)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListBankAccounts(c.Request.Context(), adminID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBankAccountResponses(accounts))
}
