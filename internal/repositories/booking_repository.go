package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"seaferry/internal/domain"
	"seaferry/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

const bookingColumns = `id, reference, route_id, vessel_id, user_id, travel_date, departure_time,
	passengers, total_cents, status, COALESCE(special_requirements, ''), created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.Reference, &b.RouteID, &b.VesselID, &b.UserID,
		&b.TravelDate, &b.DepartureTime, &b.Passengers, &b.TotalCents,
		&b.Status, &b.SpecialRequest, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

// BookedSeats sums passengers of live bookings for the exact
// route/date/time slot. Cancelled bookings release their seats.
func (r BookingRepository) BookedSeats(routeID int64, travelDate, departureTime string) (int, error) {
	var booked int
	err := r.DB.QueryRow(`
		SELECT COALESCE(SUM(passengers), 0)
		FROM bookings
		WHERE route_id=? AND travel_date=? AND departure_time=? AND status <> ?`,
		routeID, travelDate, departureTime, models.BookingCancelled,
	).Scan(&booked)
	return booked, err
}

// BookedSeatsTx is the transactional variant used during creation. FOR UPDATE
// serializes concurrent creations on the same slot so the capacity check and
// the insert are atomic.
func (r BookingRepository) BookedSeatsTx(tx *sql.Tx, routeID int64, travelDate, departureTime string) (int, error) {
	var booked int
	err := tx.QueryRow(`
		SELECT COALESCE(SUM(passengers), 0)
		FROM bookings
		WHERE route_id=? AND travel_date=? AND departure_time=? AND status <> ?
		FOR UPDATE`,
		routeID, travelDate, departureTime, models.BookingCancelled,
	).Scan(&booked)
	return booked, err
}

// CreateTx inserts a booking inside the creation transaction.
func (r BookingRepository) CreateTx(tx *sql.Tx, b models.Booking) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO bookings
			(reference, route_id, vessel_id, user_id, travel_date, departure_time,
			 passengers, total_cents, status, special_requirements, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		b.Reference, b.RouteID, b.VesselID, b.UserID, b.TravelDate, b.DepartureTime,
		b.Passengers, b.TotalCents, b.Status, b.SpecialRequest)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r BookingRepository) GetByID(id int64) (models.Booking, error) {
	row := r.DB.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE id=?`, id)
	return scanBooking(row)
}

func (r BookingRepository) GetByReference(reference string) (models.Booking, error) {
	row := r.DB.QueryRow(`SELECT `+bookingColumns+` FROM bookings WHERE reference=?`, reference)
	return scanBooking(row)
}

// List returns bookings matching the filter, newest first.
func (r BookingRepository) List(f models.BookingFilter, p *domain.Pagination) ([]models.Booking, error) {
	p.Normalize()

	where := []string{"1=1"}
	args := []any{}
	if f.UserID > 0 {
		where = append(where, "user_id = ?")
		args = append(args, f.UserID)
	}
	if f.RouteID > 0 {
		where = append(where, "route_id = ?")
		args = append(args, f.RouteID)
	}
	if s := strings.TrimSpace(f.Status); s != "" {
		where = append(where, "status = ?")
		args = append(args, s)
	}
	if s := strings.TrimSpace(f.TravelDate); s != "" {
		where = append(where, "travel_date = ?")
		args = append(args, s)
	}
	cond := strings.Join(where, " AND ")

	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM bookings WHERE `+cond, args...).Scan(&p.Total); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE %s ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		bookingColumns, cond)
	args = append(args, p.PageSize, p.Offset())

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateStatusGuarded transitions a booking only when its current status is
// one of from. Returns false when no row matched, which callers surface as a
// transition conflict.
func (r BookingRepository) UpdateStatusGuarded(id int64, from []string, to string) (bool, error) {
	if len(from) == 0 {
		return false, fmt.Errorf("empty source status set")
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(from)), ",")
	args := []any{to, id}
	for _, s := range from {
		args = append(args, s)
	}
	res, err := r.DB.Exec(
		`UPDATE bookings SET status=?, updated_at=NOW() WHERE id=? AND status IN (`+placeholders+`)`,
		args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
