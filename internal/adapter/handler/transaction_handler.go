package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/srgjo27/club_membership/internal/core/domain"
	"github.com/srgjo27/club_membership/internal/core/services"
)

type TransactionHandler struct {
	svc *services.LedgerService
}

func NewTransactionHandler(svc *services.LedgerService) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

// POST /v1/transactions
func (h *TransactionHandler) Post(c *gin.Context) {
	var in struct {
		MembershipID string  `json:"membership_id" binding:"required"`
		Amount       float64 `json:"amount"`
		Type         string  `json:"type" binding:"required"`
		Description  string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	membershipID, err := uuid.Parse(in.MembershipID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid membership_id"})
		return
	}

	tx, err := h.svc.Post(c.Request.Context(), membershipID, in.Amount, domain.TransactionType(in.Type), in.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

// GET /v1/transactions?membership_id=
func (h *TransactionHandler) List(c *gin.Context) {
	var membershipID *uuid.UUID
	if raw := c.Query("membership_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid membership_id"})
			return
		}
		membershipID = &id
	}

	transactions, err := h.svc.ListTransactions(c.Request.Context(), membershipID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, transactions)
}
