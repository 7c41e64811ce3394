package services

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"

	"seaferry/internal/domain"
	"seaferry/internal/domain/models"
	"seaferry/internal/repositories"
	"seaferry/internal/utils"
)

// TicketService renders the boarding ticket PDF for confirmed or completed
// bookings.
type TicketService struct {
	Bookings repositories.BookingRepository
	Routes   repositories.RouteRepository
	Payments repositories.PaymentRepository

	RequestID string
	Loader    func(int64) (ticketData, error)
}

type ticketData struct {
	Reference     string
	Status        string
	Origin        string
	Destination   string
	VesselName    string
	TravelDate    string
	DepartureTime string
	Passengers    int
	TotalCents    int64
	PaymentMethod string
}

// Generate returns the ticket PDF bytes and a download filename.
func (s TicketService) Generate(rc domain.RequestContext, bookingID int64) ([]byte, string, error) {
	data, ownerID, err := s.load(rc, bookingID)
	if err != nil {
		return nil, "", err
	}
	if !rc.IsAdmin() && ownerID != int64(rc.UserID) {
		return nil, "", domain.ForbiddenError{Msg: "not your booking"}
	}
	if data.Status != models.BookingConfirmed && data.Status != models.BookingCompleted {
		return nil, "", domain.ValidationError{Field: "status", Msg: "ticket available for confirmed or completed bookings only"}
	}
	utils.LogEvent(s.RequestID, "ticket", "generate", fmt.Sprintf("booking_id=%d", bookingID))
	return buildTicketPDF(data)
}

func (s TicketService) load(rc domain.RequestContext, bookingID int64) (ticketData, int64, error) {
	if s.Loader != nil {
		d, err := s.Loader(bookingID)
		return d, int64(rc.UserID), err
	}

	b, err := s.Bookings.GetByID(bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return ticketData{}, 0, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return ticketData{}, 0, domain.InternalError{Err: err}
	}

	data := ticketData{
		Reference:     b.Reference,
		Status:        b.Status,
		TravelDate:    b.TravelDate,
		DepartureTime: b.DepartureTime,
		Passengers:    b.Passengers,
		TotalCents:    b.TotalCents,
	}
	if rt, err := s.Routes.GetByID(b.RouteID); err == nil {
		data.Origin = rt.Origin
		data.Destination = rt.Destination
		if rt.Vessel != nil {
			data.VesselName = rt.Vessel.Name
		}
	}
	if p, err := s.Payments.GetByBookingID(b.ID); err == nil {
		data.PaymentMethod = p.Method
	}
	return data, b.UserID, nil
}

func buildTicketPDF(d ticketData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Ferry Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "FERRY TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Reference   : %s", safe(d.Reference, "-")),
		fmt.Sprintf("Route       : %s -> %s", safe(d.Origin, "-"), safe(d.Destination, "-")),
		fmt.Sprintf("Vessel      : %s", safe(d.VesselName, "-")),
		fmt.Sprintf("Date / Time : %s %s", safe(d.TravelDate, "-"), safe(d.DepartureTime, "-")),
		fmt.Sprintf("Passengers  : %d", d.Passengers),
		fmt.Sprintf("Total       : %s", utils.FormatMoney(d.TotalCents)),
		fmt.Sprintf("Payment     : %s", safe(d.PaymentMethod, "-")),
		fmt.Sprintf("Status      : %s", safe(d.Status, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "Present this ticket with a valid ID at boarding.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Err: err}
	}
	name := fmt.Sprintf("ticket-%s.pdf", strings.ToLower(safe(d.Reference, "booking")))
	return buf.Bytes(), name, nil
}

func safe(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
