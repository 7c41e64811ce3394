package repositories

import (
	"database/sql"
	"time"

	"seaferry/internal/domain/models"
)

type PasswordResetRepository struct {
	DB *sql.DB
}

func (r PasswordResetRepository) Create(t models.PasswordResetToken) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO password_reset_tokens (user_id, digest, expires_at, used)
		VALUES (?, ?, ?, 0)`,
		t.UserID, t.Digest, t.ExpiresAt)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetValid returns the token matching digest when it is unused and unexpired.
func (r PasswordResetRepository) GetValid(digest string, now time.Time) (models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	err := r.DB.QueryRow(`
		SELECT id, user_id, digest, expires_at, used
		FROM password_reset_tokens
		WHERE digest=? AND used=0 AND expires_at > ?`,
		digest, now,
	).Scan(&t.ID, &t.UserID, &t.Digest, &t.ExpiresAt, &t.Used)
	return t, err
}

func (r PasswordResetRepository) MarkUsed(id int64) error {
	res, err := r.DB.Exec(`UPDATE password_reset_tokens SET used=1 WHERE id=? AND used=0`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return err
}
