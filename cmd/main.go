package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_appointment"
	createSlotHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_slot"
	createSlotsBulkHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/create_slots_bulk"
	deleteSlotHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/delete_slot"
	getAllAppointmentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_all_appointments"
	getAppointmentHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_available_slots"
	getMyAppointmentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_my_appointments"
	getSlotsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_slots"
	getStylistAppointmentsHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/get_stylist_appointments"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-SalonService/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/SMC-SalonService/internal/api/middleware"
	"github.com/m04kA/SMC-SalonService/internal/config"
	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/internal/infra/storage/memory"
	appointmentsService "github.com/m04kA/SMC-SalonService/internal/service/appointments"
	authService "github.com/m04kA/SMC-SalonService/internal/service/auth"
	slotsService "github.com/m04kA/SMC-SalonService/internal/service/slots"
	cancelAppointmentUC "github.com/m04kA/SMC-SalonService/internal/usecase/cancel_appointment"
	createAppointmentUC "github.com/m04kA/SMC-SalonService/internal/usecase/create_appointment"
	publishSlotsUC "github.com/m04kA/SMC-SalonService/internal/usecase/publish_slots"
	"github.com/m04kA/SMC-SalonService/pkg/clock"
	"github.com/m04kA/SMC-SalonService/pkg/logger"
	"github.com/m04kA/SMC-SalonService/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SalonService...")
	log.Info("Configuration loaded from config.toml (storage=%s)", cfg.Storage.Driver)

	policy, err := cfg.Booking.Policy()
	if err != nil {
		log.Fatal("Invalid booking policy: %v", err)
	}
	log.Info("Booking policy: location=%s, daily capacity=%d, cancellation window=%s",
		policy.Zone(), policy.DailySlotCapacity, policy.CancellationWindow)

	// Метрики (nil - выключены, все вызовы становятся no-op)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	clk := clock.Real{}

	store, err := openStorage(cfg, metricsCollector, clk, log)
	if err != nil {
		log.Fatal("Failed to open storage: %v", err)
	}
	defer store.close()

	// Инициализируем сервисы
	authSvc := authService.NewService(
		store.users,
		cfg.Auth.JWTSecret,
		cfg.Auth.TokenTTL(),
		policy.InactivityPeriod,
		clk,
		log,
	)
	appointmentSvc := appointmentsService.NewService(
		store.appointments,
		store.catalog,
		store.tx,
		log,
	)
	slotSvc := slotsService.NewService(store.slots, store.tx, log)

	if store.memory != nil && cfg.Storage.SeedDemo {
		seedDemo(store.memory, authSvc, log)
	}

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		store.users,
		store.catalog,
		store.slots,
		store.appointments,
		store.tx,
		clk,
		metricsCollector,
		log,
	)
	cancelAppointmentUseCase := cancelAppointmentUC.NewUseCase(
		store.appointments,
		store.slots,
		store.tx,
		clk,
		policy,
		metricsCollector,
		log,
	)
	publishSlotsUseCase := publishSlotsUC.NewUseCase(
		store.catalog,
		store.slots,
		store.tx,
		clk,
		policy,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(cancelAppointmentUseCase, log)
	getMyAppointments := getMyAppointmentsHandler.NewHandler(appointmentSvc, log)
	getStylistAppointments := getStylistAppointmentsHandler.NewHandler(appointmentSvc, log)
	getAllAppointments := getAllAppointmentsHandler.NewHandler(appointmentSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	createSlot := createSlotHandler.NewHandler(publishSlotsUseCase, log)
	createSlotsBulk := createSlotsBulkHandler.NewHandler(publishSlotsUseCase, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)
	getSlots := getSlotsHandler.NewHandler(slotSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(slotSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	auth := func(h http.HandlerFunc, roles ...domain.Role) http.Handler {
		return middleware.Auth(authSvc, log, roles...)(h)
	}

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/slots", getSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/available", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (Authorization: Bearer <jwt>)
	// ============================================================

	// --- Слоты (админ) ---
	api.Handle("/slots", auth(createSlot.Handle, domain.RoleAdmin)).Methods(http.MethodPost)
	api.Handle("/slots/bulk", auth(createSlotsBulk.Handle, domain.RoleAdmin)).Methods(http.MethodPost)
	api.Handle("/slots/{id}", auth(deleteSlot.Handle, domain.RoleAdmin)).Methods(http.MethodDelete)

	// --- Записи ---
	// Порядок важен: /my и /stylist/{id} раньше /{id}
	api.Handle("/appointments", auth(createAppointment.Handle, domain.RoleCustomer)).Methods(http.MethodPost)
	api.Handle("/appointments", auth(getAllAppointments.Handle, domain.RoleAdmin)).Methods(http.MethodGet)
	api.Handle("/appointments/my", auth(getMyAppointments.Handle, domain.RoleCustomer)).Methods(http.MethodGet)
	api.Handle("/appointments/stylist/{stylistId}",
		auth(getStylistAppointments.Handle, domain.RoleStylist, domain.RoleAdmin)).Methods(http.MethodGet)
	api.Handle("/appointments/{id}/cancel",
		auth(cancelAppointment.Handle, domain.RoleCustomer, domain.RoleAdmin)).Methods(http.MethodPatch)
	api.Handle("/appointments/{id}/status", auth(updateAppointmentStatus.Handle, domain.RoleAdmin)).Methods(http.MethodPatch)
	api.Handle("/appointments/{id}",
		auth(getAppointment.Handle, domain.RoleCustomer, domain.RoleStylist, domain.RoleAdmin)).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// seedDemo наполняет хранилище в памяти и печатает токены для ручной проверки
func seedDemo(store *memory.Store, authSvc *authService.Service, log *logger.Logger) {
	demo := memory.SeedDemo(store)

	for _, u := range []domain.User{demo.Admin, demo.Customer} {
		token, err := authSvc.IssueToken(u.ID, u.Email, u.Role)
		if err != nil {
			log.Error("Failed to issue demo token for %s: %v", u.Email, err)
			continue
		}
		log.Info("Demo %s id=%s token=%s", u.Role, u.ID, token)
	}

	log.Info("Demo stylist id=%s, services: %s (%s), %s (%s)",
		demo.Stylist.ID,
		demo.Services[0].Name, demo.Services[0].ID,
		demo.Services[1].Name, demo.Services[1].ID)
}
