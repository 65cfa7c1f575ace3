package repositories

import (
	"context"
	"testing"

	"busbooking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMarkRead_UpdatesUnreadRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT `read` FROM notifications").
		WithArgs("n1", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"read"}).AddRow(false))
	mock.ExpectExec("UPDATE notifications SET `read` = 1").
		WithArgs("n1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NotificationRepo{DB: db}
	if err := repo.MarkRead(context.Background(), "n1", "u1"); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkRead_AlreadyReadIsNoOp(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// no UPDATE expected: re-marking a read notification changes nothing
	mock.ExpectQuery("SELECT `read` FROM notifications").
		WithArgs("n1", "u1").
		WillReturnRows(sqlmock.NewRows([]string{"read"}).AddRow(true))

	repo := NotificationRepo{DB: db}
	if err := repo.MarkRead(context.Background(), "n1", "u1"); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMarkRead_MissingOrForeignNotification(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT `read` FROM notifications").
		WithArgs("n1", "someone-else").
		WillReturnRows(sqlmock.NewRows([]string{"read"}))

	repo := NotificationRepo{DB: db}
	err = repo.MarkRead(context.Background(), "n1", "someone-else")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListByUser_PassesLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM notifications WHERE user_id = \\?").
		WithArgs("u1", 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "message", "type", "read", "created_at"}))

	repo := NotificationRepo{DB: db}
	list, err := repo.ListByUser(context.Background(), "u1", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", list)
	}
}
