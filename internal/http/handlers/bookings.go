package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seaferry/internal/domain/models"
)

// POST /api/bookings
func (a *API) CreateBooking(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	var in models.CreateBookingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	booking, err := a.bookings(c).Create(c.Request.Context(), rc, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bookingView(booking, booking.TotalCents))
}

// GET /api/bookings
func (a *API) ListBookings(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	filter := models.BookingFilter{
		RouteID:    queryInt64(c, "route_id"),
		Status:     c.Query("status"),
		TravelDate: c.Query("date"),
	}
	p := pagination(c)
	bookings, err := a.bookings(c).List(rc, filter, p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "pagination": p})
}

// GET /api/bookings/:id
func (a *API) GetBooking(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	booking, err := a.bookings(c).Get(rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingView(booking, booking.TotalCents))
}

// GET /api/bookings/reference/:code
func (a *API) GetBookingByReference(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	booking, err := a.bookings(c).GetByReference(rc, c.Param("code"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingView(booking, booking.TotalCents))
}

// POST /api/bookings/:id/confirm (admin)
func (a *API) ConfirmBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	booking, err := a.bookings(c).Confirm(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingView(booking, booking.TotalCents))
}

// POST /api/bookings/:id/complete (admin)
func (a *API) CompleteBooking(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	booking, err := a.bookings(c).Complete(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingView(booking, booking.TotalCents))
}

// POST /api/bookings/:id/cancel
func (a *API) CancelBooking(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	booking, err := a.bookings(c).Cancel(c.Request.Context(), rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookingView(booking, booking.TotalCents))
}

// GET /api/bookings/:id/ticket
func (a *API) GetBookingTicket(c *gin.Context) {
	rc, ok := requestContext(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}
	blob, name, err := a.tickets(c).Generate(rc, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, "application/pdf", blob)
}
