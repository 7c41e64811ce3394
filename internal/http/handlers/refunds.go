package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seaferry/internal/domain/models"
)

type refundRequest struct {
	BookingID int64  `json:"booking_id"`
	Reason    string `json:"reason"`
}

// POST /api/refunds
func (a *API) RequestRefund(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	var req refundRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	refund, err := a.refunds(c).Request(rc, req.BookingID, req.Reason)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"refund": refund})
}

// GET /api/refunds
func (a *API) ListRefunds(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	filter := models.RefundFilter{Status: c.Query("status")}
	p := pagination(c)
	refunds, err := a.refunds(c).List(rc, filter, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"refunds": refunds, "pagination": p})
}

// GET /api/refunds/:id
func (a *API) GetRefund(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	refund, err := a.refunds(c).Get(rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"refund": refund})
}

type refundProcessRequest struct {
	Action     string `json:"action"`
	AdminNotes string `json:"admin_notes"`
}

// POST /api/refunds/:id/process (admin)
func (a *API) ProcessRefund(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req refundProcessRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	refund, err := a.refunds(c).Process(id, req.Action, req.AdminNotes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"refund": refund})
}
