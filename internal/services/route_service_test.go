package services

import (
	"database/sql"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"seaferry/internal/domain"
	"seaferry/internal/domain/models"
	"seaferry/internal/repositories"
)

func newRouteService(db *sql.DB) RouteService {
	return RouteService{
		Routes:  repositories.RouteRepository{DB: db},
		Vessels: repositories.VesselRepository{DB: db},
	}
}

func expectVesselByID(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(regexp.QuoteMeta("FROM vessels WHERE id=?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity", "image_url"}).
			AddRow(int64(3), "MV Seastar", 40, ""))
}

func validRoute() models.Route {
	return models.Route{
		Origin:          "Harbor Town",
		Destination:     "Isle Port",
		PriceCents:      5000,
		DurationMinutes: 45,
		Schedule:        []string{"08:30", "14:00"},
		VesselID:        3,
	}
}

func TestRouteCreate(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newRouteService(db)

	expectVesselByID(mock)
	mock.ExpectExec("INSERT INTO routes").
		WithArgs("Harbor Town", "Isle Port", int64(5000), 45, "08:30,14:00", models.RouteActive, int64(3)).
		WillReturnResult(sqlmock.NewResult(7, 1))
	expectRouteLookup(mock)

	got, err := svc.Create(validRoute())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Empty status defaults to active.
	if got.Status != models.RouteActive {
		t.Fatalf("Status = %q, want active", got.Status)
	}
	if got.Vessel == nil || got.Vessel.Capacity != 40 {
		t.Fatalf("vessel = %+v, want embedded with capacity", got.Vessel)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRouteCreateValidation(t *testing.T) {
	mutations := []struct {
		name string
		mut  func(*models.Route)
		db   bool
	}{
		{"blank origin", func(r *models.Route) { r.Origin = "  " }, false},
		{"blank destination", func(r *models.Route) { r.Destination = "" }, false},
		{"zero price", func(r *models.Route) { r.PriceCents = 0 }, false},
		{"zero duration", func(r *models.Route) { r.DurationMinutes = 0 }, false},
		{"bad schedule entry", func(r *models.Route) { r.Schedule = []string{"8am"} }, false},
		{"bad status", func(r *models.Route) { r.Status = "paused" }, false},
		{"unknown vessel", func(r *models.Route) { r.VesselID = 99 }, true},
	}
	for _, tc := range mutations {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			if tc.db {
				mock.ExpectQuery(regexp.QuoteMeta("FROM vessels WHERE id=?")).
					WillReturnError(sql.ErrNoRows)
			}
			rt := validRoute()
			tc.mut(&rt)
			if _, err := newRouteService(db).Create(rt); !domain.IsValidation(err) {
				t.Fatalf("got %v, want validation error", err)
			}
		})
	}
}

func TestRouteGet(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newRouteService(db)

	if _, err := svc.Get(0); !domain.IsValidation(err) {
		t.Fatalf("zero id: got %v, want validation error", err)
	}

	mock.ExpectQuery("FROM routes r").WillReturnError(sql.ErrNoRows)
	if _, err := svc.Get(99); !domain.IsNotFound(err) {
		t.Fatalf("missing route: got %v, want not found", err)
	}
}

func TestRouteDelete(t *testing.T) {
	db, mock := newMockDB(t)
	svc := newRouteService(db)

	mock.ExpectExec("DELETE FROM routes").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	if err := svc.Delete(7); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	mock.ExpectExec("DELETE FROM routes").
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := svc.Delete(99); !domain.IsNotFound(err) {
		t.Fatalf("missing route: got %v, want not found", err)
	}
}
