package repositories

import (
	"database/sql"

	"seaferry/internal/domain/models"
)

type VesselRepository struct {
	DB *sql.DB
}

func (r VesselRepository) List() ([]models.Vessel, error) {
	rows, err := r.DB.Query(`SELECT id, name, capacity, COALESCE(image_url, '') FROM vessels ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Vessel
	for rows.Next() {
		var v models.Vessel
		if err := rows.Scan(&v.ID, &v.Name, &v.Capacity, &v.ImageURL); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r VesselRepository) GetByID(id int64) (models.Vessel, error) {
	var v models.Vessel
	err := r.DB.QueryRow(
		`SELECT id, name, capacity, COALESCE(image_url, '') FROM vessels WHERE id=?`, id,
	).Scan(&v.ID, &v.Name, &v.Capacity, &v.ImageURL)
	return v, err
}

func (r VesselRepository) Create(v models.Vessel) (int64, error) {
	res, err := r.DB.Exec(
		`INSERT INTO vessels (name, capacity, image_url) VALUES (?, ?, ?)`,
		v.Name, v.Capacity, v.ImageURL)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r VesselRepository) Update(v models.Vessel) error {
	res, err := r.DB.Exec(
		`UPDATE vessels SET name=?, capacity=?, image_url=? WHERE id=?`,
		v.Name, v.Capacity, v.ImageURL, v.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return err
}

func (r VesselRepository) Delete(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM vessels WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return err
}
