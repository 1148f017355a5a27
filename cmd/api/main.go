package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"reminder-service/internal/config"
	"reminder-service/internal/handler"
	"reminder-service/internal/middleware"
	"reminder-service/internal/migrations"
	"reminder-service/internal/notify"
	"reminder-service/internal/repository"
	"reminder-service/internal/service"
)

func main() {
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Apply embedded migrations
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatalf("Failed to set migration dialect: %v", err)
	}
	if err := goose.Up(db, "."); err != nil {
		logger.Fatalf("Failed to apply migrations: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	sink := notify.NewLogSink(logger, 256)
	defer sink.Close()
	svc := service.NewService(repo, logger, sink, cfg.JWTSecret)
	h := handler.NewHandler(svc, logger)

	// Setup router
	r := mux.NewRouter()

	// Public routes, rate limited per client IP
	rl := middleware.NewRateLimiter(5, 10)
	public := r.PathPrefix("/").Subrouter()
	public.Use(middleware.RateLimit(rl))
	public.HandleFunc("/registeruser", h.Register).Methods("POST")
	public.HandleFunc("/loginuser", h.Login).Methods("POST")

	// Listing all reminders is ungated
	r.HandleFunc("/getallreminder", h.GetReminders).Methods("GET")

	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.Authorize(cfg.JWTSecret, repo, logger))
	authRouter.HandleFunc("/addreminder", h.AddReminder).Methods("POST")
	authRouter.HandleFunc("/getreminders/{id}", h.GetReminder).Methods("GET")
	authRouter.HandleFunc("/updatereminder/{reminderId}", h.UpdateReminder).Methods("PUT")
	authRouter.HandleFunc("/deletereminder/{reminderId}", h.DeleteReminder).Methods("DELETE")
	authRouter.HandleFunc("/upcomingreminder/{id}", h.UpcomingReminder).Methods("GET")
	authRouter.HandleFunc("/pushnotification/{id}", h.PushNotification).Methods("GET")

	// Daily due-today notification sweep
	c := cron.New()
	if _, err := c.AddFunc(cfg.NotifyCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := svc.SweepDueToday(ctx); err != nil {
			logger.Errorf("Notification sweep failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Failed to schedule notification sweep: %v", err)
	}
	c.Start()
	// wait for a running sweep to finish before the sink closes behind it
	defer func() { <-c.Stop().Done() }()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Shutdown failed: %v", err)
	}
}
