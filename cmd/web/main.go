package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	consumerhandlers "clinic/cmd/consumers/handlers"
	"clinic/cmd/web/config"
	"clinic/cmd/web/handlers"
	"clinic/cmd/web/validator"
	"clinic/internal/appointment"
	"clinic/internal/audit"
	"clinic/internal/booking"
	"clinic/internal/catalog"
	"clinic/internal/events"
	"clinic/internal/health"
	"clinic/internal/ledger"
	"clinic/internal/metrics"
	"clinic/internal/notification"
	"clinic/internal/readmodels"
	"clinic/internal/recovery"
	"clinic/internal/user"
	"clinic/kit/broker"
	"clinic/kit/db"
	"clinic/kit/external_payment_gateway"
	"clinic/kit/observability"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	logger := observability.NewLogger()
	defer func() { _ = logger.Sync() }()
	restore := logger.RedirectStdLog()
	defer restore()

	if err := run(*configPath, logger); err != nil {
		logger.Error("web server stopped with error", "error", err.Error())
		os.Exit(1)
	}
}

func run(configPath string, logger *observability.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	storage, closeStorage, err := openStorage(cfg.Storage)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer closeStorage()

	journal, err := db.OpenJournal(cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	defer func() { _ = journal.Close() }()

	auditSvc, err := audit.Open(logger, cfg.Audit.Path)
	if err != nil {
		return fmt.Errorf("audit: %w", err)
	}
	defer func() { _ = auditSvc.Close() }()

	metricsKit := observability.NewMetrics()
	bus := broker.New()
	defer bus.Close()

	catalogRepo := catalog.NewSQLRepository(storage)
	catalogSvc := catalog.NewService(catalogRepo)
	appointmentSvc := appointment.NewService(bus, journal, appointment.NewSQLRepository(storage), catalogSvc, metricsKit)
	ledgerSvc := ledger.NewService(ledger.NewSQLRepository(storage))
	userRepo := user.NewSQLRepository(storage)
	userSvc := user.NewService(storage, userRepo, bus, journal, metricsKit)
	recoverySvc := recovery.NewService(logger, journal, bus, metricsKit)
	notificationSvc := notification.NewService(logger)

	projector := readmodels.NewProjector()
	if err := projector.Replay(context.Background(), journal); err != nil {
		return fmt.Errorf("read model replay: %w", err)
	}

	fake := external_payment_gateway.NewFakeGateway()
	fake.Latency = cfg.Gateway.Latency
	gateway := external_payment_gateway.NewCircuitBreakerGateway(fake, external_payment_gateway.CircuitBreakerConfig{
		FailureThreshold: cfg.Gateway.Breaker.FailureThreshold,
		SuccessThreshold: cfg.Gateway.Breaker.SuccessThreshold,
		OpenTimeout:      cfg.Gateway.Breaker.OpenTimeout,
	})

	bookingSvc := booking.NewService(storage, catalogSvc, appointmentSvc, ledgerSvc, gateway,
		booking.WithPublisher(bus),
		booking.WithStore(journal),
		booking.WithEscalator(recoverySvc),
		booking.WithMetrics(metricsKit),
		booking.WithGatewayTimeout(cfg.Gateway.Timeout),
	)

	if err := seed(context.Background(), cfg, catalogSvc, userSvc); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	healthSvc := health.NewService(cfg.Health.TTL, cfg.Health.CheckTimeout, map[string]health.CheckFunc{
		"storage": func(ctx context.Context) error {
			_, err := userRepo.CountByRole(ctx, user.RoleAdmin)
			return err
		},
		"journal": journal.Ping,
		"gateway": gateway.Check,
	})

	subscribe(bus, logger, auditSvc, recoverySvc, notificationSvc, projector)

	jsonV := validator.NewJSON()
	mux := http.NewServeMux()
	handlers.Routes(mux,
		handlers.NewAppointment(jsonV, appointmentSvc, ledgerSvc, projector),
		handlers.NewPayment(jsonV, bookingSvc, healthSvc),
		handlers.NewUser(jsonV, userSvc),
		handlers.NewHealth(healthSvc),
		handlers.NewMetrics(metrics.NewService(metricsKit)),
	)

	srv := &http.Server{Addr: cfg.HTTP.Addr, Handler: mux, ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web server started", "addr", srv.Addr, "storage", cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("web server stopped", "pending_escalations", len(recoverySvc.Pending()))
	return nil
}

func openStorage(cfg config.Storage) (db.TxClient, func(), error) {
	switch cfg.Driver {
	case "memory":
		var opts []db.MemoryOption
		if cfg.MemoryPath != "" {
			opts = append(opts, db.WithJSONFile(cfg.MemoryPath), db.WithJSONPersistence(cfg.MemoryPath))
		}
		c, err := db.NewMemoryClient(opts...)
		if err != nil {
			return nil, nil, err
		}
		return c, func() {}, nil
	default:
		c, err := db.OpenBolt(cfg.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.Close() }, nil
	}
}

func seed(ctx context.Context, cfg *config.Config, catalogSvc *catalog.CatalogService, userSvc *user.Service) error {
	for _, s := range cfg.Catalog.Services {
		if _, err := catalogSvc.Upsert(ctx, catalog.UpsertRequest{
			ID:          s.ID,
			Title:       s.Title,
			Price:       s.Price,
			Currency:    s.Currency,
			Description: s.Description,
		}); err != nil {
			return fmt.Errorf("service %s: %w", s.ID, err)
		}
	}
	for _, u := range cfg.Users {
		if _, err := userSvc.Upsert(ctx, user.UpsertRequest{
			ID:    u.ID,
			Email: u.Email,
			Name:  u.Name,
			Role:  user.Role(u.Role),
		}); err != nil {
			return fmt.Errorf("user %s: %w", u.ID, err)
		}
	}
	return nil
}

func subscribe(
	bus *broker.Bus,
	logger *observability.Logger,
	auditSvc *audit.Service,
	recoverySvc *recovery.Service,
	notificationSvc *notification.Service,
	projector *readmodels.Projector,
) {
	auditHandler := consumerhandlers.NewAuditEvent(auditSvc, recoverySvc)
	notificationHandler := consumerhandlers.NewNotificationEvent(notificationSvc)
	recoveryHandler := consumerhandlers.NewRecoveryEvent(logger, recoverySvc)

	paid := events.AppointmentPaid{}.Name()
	all := []string{
		events.AppointmentBooked{}.Name(),
		events.PaymentAuthorized{}.Name(),
		paid,
		events.PaymentEscalated{}.Name(),
		events.UserRoleChanged{}.Name(),
	}

	bus.SubscribeAll(auditHandler.HandleAny, all...)
	bus.SubscribeAll(projector.Apply, all...)
	bus.Subscribe(paid, notificationHandler.HandleAppointmentPaid)
	bus.Subscribe(paid, recoveryHandler.HandleAppointmentPaid)
}
