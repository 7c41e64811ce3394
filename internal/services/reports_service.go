package services

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"seaferry/internal/domain"
	"seaferry/internal/domain/models"
	"seaferry/internal/utils"
)

// ReportsService produces the admin reporting reads: revenue by day, popular
// routes, and the bookings export blob (CSV or XLSX).
type ReportsService struct {
	DB *sql.DB

	RequestID string
}

// RevenueRow is one day of completed-payment revenue.
type RevenueRow struct {
	Date         string `json:"date"`
	Bookings     int    `json:"bookings"`
	RevenueCents int64  `json:"revenue_cents"`
}

// RevenueReport aggregates completed payments between from and to inclusive.
type RevenueReport struct {
	From       string       `json:"from"`
	To         string       `json:"to"`
	Rows       []RevenueRow `json:"rows"`
	TotalCents int64        `json:"total_cents"`
}

// PopularRoute counts bookings and seats per route.
type PopularRoute struct {
	RouteID     int64  `json:"route_id"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Bookings    int    `json:"bookings"`
	Seats       int    `json:"seats"`
}

func normalizeRange(from, to string) (string, string, error) {
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from != "" {
		if _, err := utils.ParseDate(from); err != nil {
			return "", "", domain.ValidationError{Field: "from", Msg: "must be YYYY-MM-DD"}
		}
	} else {
		from = "1970-01-01"
	}
	if to != "" {
		if _, err := utils.ParseDate(to); err != nil {
			return "", "", domain.ValidationError{Field: "to", Msg: "must be YYYY-MM-DD"}
		}
	} else {
		to = "9999-12-31"
	}
	return from, to, nil
}

// Revenue sums completed payments grouped by payment day.
func (s ReportsService) Revenue(from, to string) (RevenueReport, error) {
	from, to, err := normalizeRange(from, to)
	if err != nil {
		return RevenueReport{}, err
	}

	rows, err := s.DB.Query(`
		SELECT DATE(p.created_at) AS day, COUNT(*), COALESCE(SUM(p.amount_cents), 0)
		FROM payments p
		WHERE p.status = ? AND DATE(p.created_at) BETWEEN ? AND ?
		GROUP BY day
		ORDER BY day`,
		models.PaymentCompleted, from, to)
	if err != nil {
		return RevenueReport{}, domain.InternalError{Err: err}
	}
	defer rows.Close()

	report := RevenueReport{From: from, To: to}
	for rows.Next() {
		var r RevenueRow
		if err := rows.Scan(&r.Date, &r.Bookings, &r.RevenueCents); err != nil {
			return RevenueReport{}, domain.InternalError{Err: err}
		}
		report.Rows = append(report.Rows, r)
		report.TotalCents += r.RevenueCents
	}
	if err := rows.Err(); err != nil {
		return RevenueReport{}, domain.InternalError{Err: err}
	}
	return report, nil
}

// PopularRoutes orders routes by booking count, excluding cancellations.
func (s ReportsService) PopularRoutes(limit int) ([]PopularRoute, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	rows, err := s.DB.Query(`
		SELECT r.id, r.origin, r.destination, COUNT(b.id), COALESCE(SUM(b.passengers), 0)
		FROM routes r
		JOIN bookings b ON b.route_id = r.id AND b.status <> ?
		GROUP BY r.id, r.origin, r.destination
		ORDER BY COUNT(b.id) DESC, r.id
		LIMIT ?`,
		models.BookingCancelled, limit)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	defer rows.Close()

	var out []PopularRoute
	for rows.Next() {
		var p PopularRoute
		if err := rows.Scan(&p.RouteID, &p.Origin, &p.Destination, &p.Bookings, &p.Seats); err != nil {
			return nil, domain.InternalError{Err: err}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return out, nil
}

type exportRow struct {
	Reference     string
	Origin        string
	Destination   string
	TravelDate    string
	DepartureTime string
	Passengers    int
	TotalCents    int64
	Status        string
	PaymentStatus string
}

var exportHeader = []string{
	"reference", "origin", "destination", "travel_date", "departure_time",
	"passengers", "total", "status", "payment_status",
}

// ExportBookings renders the bookings export for the travel-date range.
// Format is "csv" or "xlsx"; the returned values are blob, filename and
// content type.
func (s ReportsService) ExportBookings(from, to, format string) ([]byte, string, string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		return nil, "", "", domain.ValidationError{Field: "format", Msg: "must be csv or xlsx"}
	}

	from, to, err := normalizeRange(from, to)
	if err != nil {
		return nil, "", "", err
	}

	rows, err := s.DB.Query(`
		SELECT b.reference, r.origin, r.destination, b.travel_date, b.departure_time,
			b.passengers, b.total_cents, b.status, COALESCE(p.status, '')
		FROM bookings b
		JOIN routes r ON r.id = b.route_id
		LEFT JOIN payments p ON p.booking_id = b.id
		WHERE b.travel_date BETWEEN ? AND ?
		ORDER BY b.travel_date, b.departure_time, b.id`,
		from, to)
	if err != nil {
		return nil, "", "", domain.InternalError{Err: err}
	}
	defer rows.Close()

	var data []exportRow
	for rows.Next() {
		var r exportRow
		if err := rows.Scan(&r.Reference, &r.Origin, &r.Destination, &r.TravelDate, &r.DepartureTime,
			&r.Passengers, &r.TotalCents, &r.Status, &r.PaymentStatus); err != nil {
			return nil, "", "", domain.InternalError{Err: err}
		}
		data = append(data, r)
	}
	if err := rows.Err(); err != nil {
		return nil, "", "", domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "reports", "export_bookings",
		fmt.Sprintf("rows=%d format=%s", len(data), format))

	if format == "xlsx" {
		blob, err := buildBookingsXLSX(data)
		if err != nil {
			return nil, "", "", err
		}
		return blob, "bookings.xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	}

	blob, err := buildBookingsCSV(data)
	if err != nil {
		return nil, "", "", err
	}
	return blob, "bookings.csv", "text/csv", nil
}

func (r exportRow) cells() []string {
	return []string{
		r.Reference, r.Origin, r.Destination, r.TravelDate, r.DepartureTime,
		strconv.Itoa(r.Passengers), utils.FormatMoney(r.TotalCents), r.Status, r.PaymentStatus,
	}
}

func buildBookingsCSV(data []exportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	for _, r := range data {
		if err := w.Write(r.cells()); err != nil {
			return nil, domain.InternalError{Err: err}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return buf.Bytes(), nil
}

func buildBookingsXLSX(data []exportRow) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Bookings"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	for col, h := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, r := range data {
		for col, v := range r.cells() {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return buf.Bytes(), nil
}
