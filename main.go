package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"busbooking/internal/config"
	api "busbooking/internal/http"
	"busbooking/internal/http/handlers"
	"busbooking/internal/realtime"
	"busbooking/internal/repositories"
	"busbooking/internal/scheduler"
	"busbooking/internal/services"
	"busbooking/migrations"

	"github.com/gin-gonic/gin"
)

func main() {
	env, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := config.ConnectDB(env)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := migrations.Up(db); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	broker := realtime.NewBroker()
	statsRepo := repositories.StatsRepo{DB: db}
	stats := services.NewStatsService(statsRepo, env.StatsRefresh)

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

		Stats:  stats,
		Broker: broker,
	}

	r := api.NewRouter(env, h)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go scheduler.New(stats, env.StatsRefresh).Start(ctx)

	go func() {
		log.Printf("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}

	log.Println("server stopped cleanly.")
}
