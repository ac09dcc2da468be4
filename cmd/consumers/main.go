package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	consumerhandlers "clinic/cmd/consumers/handlers"
	"clinic/cmd/consumers/config"
	"clinic/internal/audit"
	"clinic/internal/events"
	"clinic/internal/metrics"
	"clinic/internal/readmodels"
	"clinic/internal/recovery"
	"clinic/kit/broker"
	"clinic/kit/db"
	"clinic/kit/observability"
)

// The consumers binary replays the event journal through the subscriber
// handlers. It rebuilds the read model, the counters and the escalation queue
// and, when audit.path is set, rewrites the audit trail.
func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	logger := observability.NewLogger()
	defer func() { _ = logger.Sync() }()
	restore := logger.RedirectStdLog()
	defer restore()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("config error", "error", err.Error())
		os.Exit(1)
	}

	journal, err := db.OpenJournal(cfg.Journal.Path)
	if err != nil {
		logger.Error("journal open error", "path", cfg.Journal.Path, "error", err.Error())
		os.Exit(1)
	}
	defer func() { _ = journal.Close() }()

	auditSvc := audit.NewService(logger)
	if cfg.Audit.Path != "" {
		auditSvc, err = audit.Open(logger, cfg.Audit.Path)
		if err != nil {
			logger.Error("audit open error", "path", cfg.Audit.Path, "error", err.Error())
			os.Exit(1)
		}
	}
	defer func() { _ = auditSvc.Close() }()

	metricsKit := observability.NewMetrics()
	recoverySvc := recovery.NewService(logger, nil, nil, nil)
	projector := readmodels.NewProjector()

	bus := broker.New()
	defer bus.Close()

	auditHandler := consumerhandlers.NewAuditEvent(auditSvc, recoverySvc)
	metricsHandler := consumerhandlers.NewMetricsEvent(metricsKit)
	recoveryHandler := consumerhandlers.NewRecoveryEvent(logger, recoverySvc)

	all := []string{
		events.AppointmentBooked{}.Name(),
		events.PaymentAuthorized{}.Name(),
		events.AppointmentPaid{}.Name(),
		events.PaymentEscalated{}.Name(),
		events.UserRoleChanged{}.Name(),
	}
	bus.SubscribeAll(auditHandler.HandleAny, all...)
	bus.SubscribeAll(metricsHandler.HandleAny, all...)
	bus.SubscribeAll(projector.Apply, all...)
	bus.Subscribe(events.PaymentEscalated{}.Name(), recoveryHandler.HandlePaymentEscalated)
	bus.Subscribe(events.AppointmentPaid{}.Name(), recoveryHandler.HandleAppointmentPaid)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("replay started", "name", cfg.Name, "journal", cfg.Journal.Path)
	sum, err := replay(ctx, journal, bus)
	if err != nil {
		logger.Error("replay error", "error", err.Error(), "records", sum.Records)
		os.Exit(1)
	}

	pending := make([]string, 0)
	for _, e := range recoverySvc.Pending() {
		pending = append(pending, e.AppointmentID)
	}
	logger.Info("replay finished",
		"records", sum.Records,
		"skipped", sum.Skipped,
		"failed", sum.Failed,
		"by_event", sum.ByEvent,
		"appointments", projector.Len(),
		"audit_written", auditSvc.Written(),
		"pending_escalations", pending,
		"metrics", metrics.NewService(metricsKit).Snapshot(),
	)
}
