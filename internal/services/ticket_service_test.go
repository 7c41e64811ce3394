package services

import (
	"bytes"
	"testing"

	"seaferry/internal/domain"
	"seaferry/internal/domain/models"
)

func ticketLoader(status string) func(int64) (ticketData, error) {
	return func(int64) (ticketData, error) {
		return ticketData{
			Reference:     "SF-TESTREF1",
			Status:        status,
			Origin:        "Harbor Town",
			Destination:   "Isle Port",
			VesselName:    "MV Seastar",
			TravelDate:    "2026-09-10",
			DepartureTime: "08:30",
			Passengers:    3,
			TotalCents:    15000,
			PaymentMethod: "card",
		}, nil
	}
}

func TestTicketGenerate(t *testing.T) {
	svc := TicketService{Loader: ticketLoader(models.BookingConfirmed)}
	rc := domain.RequestContext{UserID: 42, Role: models.RoleCustomer}

	blob, name, err := svc.Generate(rc, 11)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if name != "ticket-sf-testref1.pdf" {
		t.Fatalf("filename = %q, want ticket-sf-testref1.pdf", name)
	}
	if len(blob) == 0 || !bytes.HasPrefix(blob, []byte("%PDF")) {
		t.Fatalf("output is not a PDF, got %d bytes", len(blob))
	}
}

func TestTicketGenerateCompletedBooking(t *testing.T) {
	svc := TicketService{Loader: ticketLoader(models.BookingCompleted)}
	if _, _, err := svc.Generate(domain.RequestContext{UserID: 42, Role: models.RoleCustomer}, 11); err != nil {
		t.Fatalf("Generate for completed booking: %v", err)
	}
}

func TestTicketGenerateRequiresConfirmed(t *testing.T) {
	for _, status := range []string{models.BookingPending, models.BookingCancelled} {
		svc := TicketService{Loader: ticketLoader(status)}
		if _, _, err := svc.Generate(domain.RequestContext{UserID: 42, Role: models.RoleCustomer}, 11); !domain.IsValidation(err) {
			t.Fatalf("%s booking: got %v, want validation error", status, err)
		}
	}
}
