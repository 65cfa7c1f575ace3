package api

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"busbooking/internal/config"
	"busbooking/internal/http/handlers"
	"busbooking/internal/realtime"
	"busbooking/internal/repositories"
	"busbooking/internal/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) (*gin.Engine, *handlers.Handler, sqlmock.Sqlmock, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}

	env := config.Env{JWTSecret: testSecret, JWTExpiry: time.Hour}
	h := &handlers.Handler{
		DB:  db,
		Env: env,

		Users:         repositories.UserRepo{DB: db},
		Profiles:      repositories.ProfileRepo{DB: db},
		Trips:         repositories.TripRepo{DB: db},
		Bookings:      repositories.BookingRepo{DB: db},
		Passengers:    repositories.PassengerRepo{DB: db},
		Reviews:       repositories.ReviewRepo{DB: db},
		Notifications: repositories.NotificationRepo{DB: db},
		Companies:     repositories.CompanyRepo{DB: db},
		Payments:      repositories.PaymentRepo{DB: db},

		Stats:  services.NewStatsService(repositories.StatsRepo{DB: db}, time.Hour),
		Broker: realtime.NewBroker(),
	}
	return NewRouter(env, h), h, mock, func() { db.Close() }
}

func signToken(t *testing.T, userID, role string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := tok.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestSearchTrips_PublicAndCaseInsensitive(t *testing.T) {
	r, _, mock, cleanup := newTestRouter(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("FROM bus_trips WHERE LOWER\\(departure_city\\) LIKE \\?").
		WithArgs("%paris%", "%lyon%").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "departure_city", "arrival_city", "departure_time", "arrival_time",
			"price", "available_seats", "created_at", "updated_at",
		}).AddRow("t1", "Paris", "Lyon", now, now.Add(5*time.Hour), int64(2900), 12, now, now))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/trips/search?departure=PARIS&arrival=Lyon&sort=price", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	var body struct {
		Trips []json.RawMessage `json:"trips"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Trips) != 1 {
		t.Fatalf("expected 1 trip, got %d", len(body.Trips))
	}
}

func TestSearchTrips_RejectsBadDateAndSort(t *testing.T) {
	r, _, _, cleanup := newTestRouter(t)
	defer cleanup()

	for _, path := range []string{
		"/api/trips/search?date=14-07-2025",
		"/api/trips/search?sort=rating",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d, want 400", path, w.Code)
		}
	}
}

func TestProtectedRoute_WithoutTokenRedirectsToAuth(t *testing.T) {
	r, _, _, cleanup := newTestRouter(t)
	defer cleanup()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["redirect"] != "/auth" {
		t.Fatalf("redirect %q, want /auth", body["redirect"])
	}
}

func TestAdminRoute_NonAdminRedirectsHome(t *testing.T) {
	r, _, mock, cleanup := newTestRouter(t)
	defer cleanup()

	// role is re-read from the profiles table, not trusted from the token
	mock.ExpectQuery("SELECT role FROM profiles WHERE id = \\?").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("user"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", "admin"))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status %d, want 403", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["redirect"] != "/" {
		t.Fatalf("redirect %q, want /", body["redirect"])
	}
}

func TestAdminRoute_AdminPassesGuard(t *testing.T) {
	r, _, mock, cleanup := newTestRouter(t)
	defer cleanup()

	mock.ExpectQuery("SELECT role FROM profiles WHERE id = \\?").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("admin"))
	mock.ExpectQuery("FROM profiles ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "username", "phone_number", "address", "preferred_language", "role", "created_at", "updated_at",
		}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", "admin"))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
}

func expectBookingRow(mock sqlmock.Sqlmock, bookingID, ownerID string) {
	now := time.Now()
	mock.ExpectQuery("FROM bookings WHERE id = \\?").
		WithArgs(bookingID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "trip_id", "user_id", "passenger_count", "total_price", "status", "contact_phone", "created_at", "updated_at",
		}).AddRow(bookingID, "t1", ownerID, 1, int64(2900), "confirmed", "+33600000000", now, now))
}

func TestETicket_ForeignBookingIsForbidden(t *testing.T) {
	r, _, mock, cleanup := newTestRouter(t)
	defer cleanup()

	expectBookingRow(mock, "b1", "someone-else")
	mock.ExpectQuery("SELECT role FROM profiles WHERE id = \\?").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("user"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/b1/e-ticket", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", "user"))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status %d, want 403", w.Code)
	}
}

func TestETicket_DemotedAdminLosesForeignAccess(t *testing.T) {
	r, _, mock, cleanup := newTestRouter(t)
	defer cleanup()

	// the token still claims admin; the profiles row says otherwise
	expectBookingRow(mock, "b1", "someone-else")
	mock.ExpectQuery("SELECT role FROM profiles WHERE id = \\?").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("user"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/b1/e-ticket", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", "admin"))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status %d, want 403", w.Code)
	}
}

func TestETicket_AdminFetchesForeignBooking(t *testing.T) {
	r, _, mock, cleanup := newTestRouter(t)
	defer cleanup()

	now := time.Now()
	expectBookingRow(mock, "b1", "someone-else")
	mock.ExpectQuery("SELECT role FROM profiles WHERE id = \\?").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("admin"))
	// the ticket build re-loads booking, trip and passengers
	expectBookingRow(mock, "b1", "someone-else")
	mock.ExpectQuery("FROM bus_trips WHERE id = \\?").
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "departure_city", "arrival_city", "departure_time", "arrival_time",
			"price", "available_seats", "created_at", "updated_at",
		}).AddRow("t1", "Paris", "Lyon", now, now.Add(5*time.Hour), int64(2900), 12, now, now))
	mock.ExpectQuery("FROM passengers WHERE booking_id = \\?").
		WithArgs("b1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "first_name", "last_name", "created_at"}).
			AddRow("p1", "b1", "Ana", "Martin", now))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/b1/e-ticket", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", "admin"))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF-") {
		t.Fatalf("response is not a PDF")
	}
}

func TestStreamEvents_OutlivesServerWriteTimeout(t *testing.T) {
	r, h, _, cleanup := newTestRouter(t)
	defer cleanup()

	srv := httptest.NewUnstartedServer(r)
	srv.Config.WriteTimeout = 250 * time.Millisecond
	srv.Start()
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/events?table=bus_trips&token=" + signToken(t, "u1", "user"))
	if err != nil {
		t.Fatalf("open stream: %v", err)
	}
	defer resp.Body.Close()

	lines := make(chan string, 8)
	go func() {
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			if line := sc.Text(); strings.HasPrefix(line, "data:") {
				lines <- line
			}
		}
		close(lines)
	}()

	time.Sleep(100 * time.Millisecond)
	h.Broker.Publish(realtime.Event{Table: "bus_trips", Type: realtime.EventInsert, RowID: "t-early"})
	waitForEventLine(t, lines, "t-early")

	// well past the server WriteTimeout: the stream stays writable because
	// the handler clears this response's write deadline
	time.Sleep(400 * time.Millisecond)
	h.Broker.Publish(realtime.Event{Table: "bus_trips", Type: realtime.EventInsert, RowID: "t-late"})
	waitForEventLine(t, lines, "t-late")
}

func waitForEventLine(t *testing.T, lines <-chan string, rowID string) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				t.Fatalf("stream closed before %s arrived", rowID)
			}
			if strings.Contains(line, rowID) {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", rowID)
		}
	}
}
