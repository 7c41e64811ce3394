package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"seaferry/internal/domain"
	"seaferry/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

const paymentColumns = `id, booking_id, method, amount_cents, status, transaction_id, created_at`

func scanPayment(row interface{ Scan(...any) error }) (models.Payment, error) {
	var p models.Payment
	err := row.Scan(&p.ID, &p.BookingID, &p.Method, &p.AmountCents, &p.Status, &p.TransactionID, &p.CreatedAt)
	return p, err
}

// CreateTx inserts the payment row created alongside a booking.
func (r PaymentRepository) CreateTx(tx *sql.Tx, p models.Payment) (int64, error) {
	res, err := tx.Exec(`
		INSERT INTO payments (booking_id, method, amount_cents, status, transaction_id, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())`,
		p.BookingID, p.Method, p.AmountCents, p.Status, p.TransactionID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	row := r.DB.QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE id=?`, id)
	return scanPayment(row)
}

func (r PaymentRepository) GetByBookingID(bookingID int64) (models.Payment, error) {
	row := r.DB.QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE booking_id=? ORDER BY id DESC LIMIT 1`, bookingID)
	return scanPayment(row)
}

// List returns payments matching the filter, newest first.
func (r PaymentRepository) List(f models.PaymentFilter, p *domain.Pagination) ([]models.Payment, error) {
	p.Normalize()

	where := []string{"1=1"}
	args := []any{}
	if s := strings.TrimSpace(f.Status); s != "" {
		where = append(where, "status = ?")
		args = append(args, s)
	}
	if s := strings.TrimSpace(f.Method); s != "" {
		where = append(where, "method = ?")
		args = append(args, s)
	}
	if s := strings.TrimSpace(f.Date); s != "" {
		where = append(where, "DATE(created_at) = ?")
		args = append(args, s)
	}
	cond := strings.Join(where, " AND ")

	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM payments WHERE `+cond, args...).Scan(&p.Total); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM payments WHERE %s ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		paymentColumns, cond)
	args = append(args, p.PageSize, p.Offset())

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Payment
	for rows.Next() {
		pay, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, pay)
	}
	return out, rows.Err()
}

// UpdateStatusGuarded moves a payment between statuses; false means the
// payment was not in the expected source status.
func (r PaymentRepository) UpdateStatusGuarded(id int64, from []string, to string) (bool, error) {
	if len(from) == 0 {
		return false, fmt.Errorf("empty source status set")
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(from)), ",")
	args := []any{to, id}
	for _, s := range from {
		args = append(args, s)
	}
	res, err := r.DB.Exec(
		`UPDATE payments SET status=? WHERE id=? AND status IN (`+placeholders+`)`,
		args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
