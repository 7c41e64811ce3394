package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"seaferry/internal/domain"
	"seaferry/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
}

const routeColumns = `r.id, r.origin, r.destination, r.price_cents, r.duration_minutes,
	COALESCE(r.schedule, ''), r.status, r.vessel_id,
	v.id, v.name, v.capacity, COALESCE(v.image_url, '')`

func scanRoute(row interface{ Scan(...any) error }) (models.Route, error) {
	var (
		rt       models.Route
		vs       models.Vessel
		schedule string
	)
	err := row.Scan(
		&rt.ID, &rt.Origin, &rt.Destination, &rt.PriceCents, &rt.DurationMinutes,
		&schedule, &rt.Status, &rt.VesselID,
		&vs.ID, &vs.Name, &vs.Capacity, &vs.ImageURL,
	)
	if err != nil {
		return models.Route{}, err
	}
	rt.Schedule = models.SplitSchedule(schedule)
	rt.Vessel = &vs
	return rt, nil
}

// List returns routes with embedded vessels, filtered and paginated.
func (r RouteRepository) List(f models.RouteFilter, p *domain.Pagination) ([]models.Route, error) {
	p.Normalize()

	where := []string{"1=1"}
	args := []any{}
	if s := strings.TrimSpace(f.Status); s != "" {
		where = append(where, "r.status = ?")
		args = append(args, s)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		where = append(where, "(r.origin LIKE ? OR r.destination LIKE ?)")
		like := "%" + s + "%"
		args = append(args, like, like)
	}
	cond := strings.Join(where, " AND ")

	if err := r.DB.QueryRow(
		`SELECT COUNT(*) FROM routes r JOIN vessels v ON v.id = r.vessel_id WHERE `+cond, args...,
	).Scan(&p.Total); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM routes r
		JOIN vessels v ON v.id = r.vessel_id
		WHERE %s
		ORDER BY r.origin, r.destination
		LIMIT ? OFFSET ?`, routeColumns, cond)
	args = append(args, p.PageSize, p.Offset())

	rows, err := r.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Route
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// GetByID returns a single route with its vessel.
func (r RouteRepository) GetByID(id int64) (models.Route, error) {
	row := r.DB.QueryRow(`
		SELECT `+routeColumns+`
		FROM routes r
		JOIN vessels v ON v.id = r.vessel_id
		WHERE r.id = ?`, id)
	return scanRoute(row)
}

// Create inserts a route and returns its id.
func (r RouteRepository) Create(rt models.Route) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO routes (origin, destination, price_cents, duration_minutes, schedule, status, vessel_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rt.Origin, rt.Destination, rt.PriceCents, rt.DurationMinutes,
		models.JoinSchedule(rt.Schedule), rt.Status, rt.VesselID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update overwrites a route's editable fields.
func (r RouteRepository) Update(rt models.Route) error {
	res, err := r.DB.Exec(`
		UPDATE routes
		SET origin=?, destination=?, price_cents=?, duration_minutes=?, schedule=?, status=?, vessel_id=?
		WHERE id=?`,
		rt.Origin, rt.Destination, rt.PriceCents, rt.DurationMinutes,
		models.JoinSchedule(rt.Schedule), rt.Status, rt.VesselID, rt.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return err
}

// Delete removes a route.
func (r RouteRepository) Delete(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM routes WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return err
}
