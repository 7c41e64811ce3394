package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seaferry/internal/domain/models"
)

// GET /api/payments (admin)
func (a *API) ListPayments(c *gin.Context) {
	filter := models.PaymentFilter{
		Status: c.Query("status"),
		Method: c.Query("method"),
		Date:   c.Query("date"),
	}
	p := pagination(c)
	payments, err := a.payments(c).List(filter, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments, "pagination": p})
}

type paymentStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/payments/:id/status (admin)
func (a *API) UpdatePaymentStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req paymentStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	payment, err := a.payments(c).UpdateStatus(id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payment": payment})
}
