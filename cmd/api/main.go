package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/gomail.v2"

	"github.com/dentalcare/clinic-api/internal/config"
	appointmenthandler "github.com/dentalcare/clinic-api/internal/handler/appointment"
	authhandler "github.com/dentalcare/clinic-api/internal/handler/auth"
	patienthandler "github.com/dentalcare/clinic-api/internal/handler/patient"
	settingshandler "github.com/dentalcare/clinic-api/internal/handler/settings"
	"github.com/dentalcare/clinic-api/internal/repository/postgres"
	"github.com/dentalcare/clinic-api/internal/router"
	appointmentsvc "github.com/dentalcare/clinic-api/internal/service/appointment"
	attachmentsvc "github.com/dentalcare/clinic-api/internal/service/attachment"
	authsvc "github.com/dentalcare/clinic-api/internal/service/auth"
	notificationsvc "github.com/dentalcare/clinic-api/internal/service/notification"
	patientsvc "github.com/dentalcare/clinic-api/internal/service/patient"
	settingssvc "github.com/dentalcare/clinic-api/internal/service/settings"
	"github.com/dentalcare/clinic-api/pkg/auth"
	"github.com/dentalcare/clinic-api/pkg/logger"
	"github.com/dentalcare/clinic-api/pkg/metrics"
	"github.com/dentalcare/clinic-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Log.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	userRepo := postgres.NewUserRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)
	patientFileRepo := postgres.NewPatientFileRepository(db)

	tokens := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	mailer := gomail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)

	authService := authsvc.NewService(userRepo, tokens, security.NewBcryptHasher(bcrypt.DefaultCost))
	patientService := patientsvc.NewService(patientRepo)
	appointmentService := appointmentsvc.NewService(appointmentRepo)
	settingsService := settingssvc.NewService(settingsRepo)
	notificationService := notificationsvc.NewService(mailer, cfg.SMTP.From)
	attachmentService := attachmentsvc.NewService(
		patientFileRepo,
		patientRepo,
		cfg.Uploads.Dir,
		cfg.Uploads.MaxSizeMB,
		cfg.Uploads.Extensions,
	)

	m := metrics.New("clinic")

	engine := router.New(cfg, log, db, tokens, m, router.Handlers{
		Auth:    authhandler.NewHandler(authService),
		Patient: patienthandler.NewHandler(patientService, attachmentService),
		Appointment: appointmenthandler.NewHandler(
			appointmentService,
			patientService,
			settingsService,
			notificationService,
			attachmentService,
		),
		Settings: settingshandler.NewHandler(settingsService),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSec) * time.Second,
	}

	go func() {
		log.WithFields(map[string]interface{}{"addr": server.Addr}).Info("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err, "server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error(err, "forced shutdown")
	}
	log.Info("server stopped")
}
