package services

import (
	"context"
	"testing"
	"time"

	"busbooking/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func expectAdminStatsQueries(mock sqlmock.Sqlmock, totalBookings int) {
	mock.ExpectQuery("FROM bookings\\s+WHERE created_at >=").
		WillReturnRows(sqlmock.NewRows([]string{"c", "cf", "pd", "cl"}).AddRow(totalBookings, totalBookings, 0, 0))
	mock.ExpectQuery("FROM bookings WHERE status = 'confirmed'").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(125000))
	mock.ExpectQuery("FROM passengers").
		WillReturnRows(sqlmock.NewRows([]string{"c"}).AddRow(42))
	mock.ExpectQuery("FROM profiles").
		WillReturnRows(sqlmock.NewRows([]string{"c", "a", "n"}).AddRow(30, 2, 5))
	mock.ExpectQuery("FROM reviews").
		WillReturnRows(sqlmock.NewRows([]string{"c", "avg"}).AddRow(12, 4.3))
	mock.ExpectQuery("FROM bus_trips").
		WillReturnRows(sqlmock.NewRows([]string{"c", "u", "s"}).AddRow(20, 15, 1))
}

func TestAdminStats_ServedFromCacheUntilStale(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectAdminStatsQueries(mock, 7)

	svc := NewStatsService(repositories.StatsRepo{DB: db}, time.Hour)

	first, err := svc.AdminStats(context.Background())
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if first.TotalBookings != 7 {
		t.Fatalf("total bookings %d, want 7", first.TotalBookings)
	}

	// second call inside MaxAge must not touch the database
	second, err := svc.AdminStats(context.Background())
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if second != first {
		t.Fatalf("snapshot changed between cached reads")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdminStats_RefreshReplacesSnapshot(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectAdminStatsQueries(mock, 7)
	expectAdminStatsQueries(mock, 9)

	svc := NewStatsService(repositories.StatsRepo{DB: db}, time.Hour)

	if _, err := svc.AdminStats(context.Background()); err != nil {
		t.Fatalf("prime: %v", err)
	}
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	snap, err := svc.AdminStats(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if snap.TotalBookings != 9 {
		t.Fatalf("total bookings %d, want 9 after refresh", snap.TotalBookings)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
