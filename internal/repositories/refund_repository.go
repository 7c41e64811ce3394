package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"seaferry/internal/domain"
	"seaferry/internal/domain/models"
)

type RefundRepository struct {
	DB *sql.DB
}

const refundColumns = `id, booking_id, payment_id, amount_cents, reason, status,
	COALESCE(admin_notes, ''), requested_at, approved_at, processed_at`

func scanRefund(row interface{ Scan(...any) error }) (models.Refund, error) {
	var (
		rf        models.Refund
		approved  sql.NullTime
		processed sql.NullTime
	)
	err := row.Scan(
		&rf.ID, &rf.BookingID, &rf.PaymentID, &rf.AmountCents, &rf.Reason,
		&rf.Status, &rf.AdminNotes, &rf.RequestedAt, &approved, &processed,
	)
	if err != nil {
		return models.Refund{}, err
	}
	if approved.Valid {
		t := approved.Time
		rf.ApprovedAt = &t
	}
	if processed.Valid {
		t := processed.Time
		rf.ProcessedAt = &t
	}
	return rf, nil
}

func (r RefundRepository) Create(rf models.Refund) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO refunds (booking_id, payment_id, amount_cents, reason, status, requested_at)
		VALUES (?, ?, ?, ?, ?, NOW())`,
		rf.BookingID, rf.PaymentID, rf.AmountCents, rf.Reason, rf.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r RefundRepository) GetByID(id int64) (models.Refund, error) {
	row := r.DB.QueryRow(`SELECT `+refundColumns+` FROM refunds WHERE id=?`, id)
	return scanRefund(row)
}

func (r RefundRepository) GetByBookingID(bookingID int64) (models.Refund, error) {
	row := r.DB.QueryRow(`SELECT `+refundColumns+` FROM refunds WHERE booking_id=? LIMIT 1`, bookingID)
	return scanRefund(row)
}

// List returns refunds matching the filter, newest first. UserID filters via
// the owning booking.
func (r RefundRepository) List(f models.RefundFilter, p *domain.Pagination) ([]models.Refund, error) {
	p.Normalize()

	where := []string{"1=1"}
	args := []any{}
	if s := strings.TrimSpace(f.Status); s != "" {
		where = append(where, "rf.status = ?")
		args = append(args, s)
	}
	if f.UserID > 0 {
		where = append(where, "b.user_id = ?")
		args = append(args, f.UserID)
	}
	cond := strings.Join(where, " AND ")

	if err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM refunds rf JOIN bookings b ON b.id = rf.booking_id WHERE `+cond, args...,
	).Scan(&p.Total); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT rf.id, rf.booking_id, rf.payment_id, rf.amount_cents, rf.reason, rf.status,
			COALESCE(rf.admin_notes, ''), rf.requested_at, rf.approved_at, rf.processed_at
		FROM refunds rf
		JOIN bookings b ON b.id = rf.booking_id
		WHERE %s
		ORDER BY rf.requested_at DESC, rf.id DESC
		LIMIT ? OFFSET ?`, cond)
	args = append(args, p.PageSize, p.Offset())

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Refund
	for rows.Next() {
		rf, err := scanRefund(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rf)
	}
	return out, rows.Err()
}

// Approve moves a pending refund to approved/rejected and stamps approved_at.
func (r RefundRepository) Resolve(id int64, to, adminNotes string) (bool, error) {
	if to != models.RefundApproved && to != models.RefundRejected {
		return false, fmt.Errorf("invalid resolution status %q", to)
	}
	res, err := r.DB.Exec(`
		UPDATE refunds SET status=?, admin_notes=?, approved_at=NOW()
		WHERE id=? AND status=?`,
		to, adminNotes, id, models.RefundPending)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Process moves an approved refund to processed and stamps processed_at.
func (r RefundRepository) Process(id int64, adminNotes string) (bool, error) {
	res, err := r.DB.Exec(`
		UPDATE refunds SET status=?, admin_notes=?, processed_at=NOW()
		WHERE id=? AND status=?`,
		models.RefundProcessed, adminNotes, id, models.RefundApproved)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
