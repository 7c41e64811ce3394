package repositories

import (
	"database/sql"

	"seaferry/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

const userColumns = `id, name, email, COALESCE(phone, ''), password_hash, role, status`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Role, &u.Status)
	return u, err
}

func (r UserRepository) GetByID(id int64) (models.User, error) {
	row := r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id=?`, id)
	return scanUser(row)
}

func (r UserRepository) GetByEmail(email string) (models.User, error) {
	row := r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email=?`, email)
	return scanUser(row)
}

func (r UserRepository) Create(u models.User) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO users (name, email, phone, password_hash, role, status)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.Name, u.Email, u.Phone, u.PasswordHash, u.Role, u.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r UserRepository) UpdatePassword(userID int64, passwordHash string) error {
	res, err := r.DB.Exec(`UPDATE users SET password_hash=? WHERE id=?`, passwordHash, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return err
}
