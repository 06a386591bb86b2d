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
	"time"

	appinventory "github.com/Zhima-Mochi/ims/internal/application/inventory"
	apporder "github.com/Zhima-Mochi/ims/internal/application/order"
	"github.com/Zhima-Mochi/ims/internal/application/orchestrator"
	apppayment "github.com/Zhima-Mochi/ims/internal/application/payment"
	appsubscription "github.com/Zhima-Mochi/ims/internal/application/subscription"
	"github.com/Zhima-Mochi/ims/internal/config"
	"github.com/Zhima-Mochi/ims/internal/infrastructure/audit"
	"github.com/Zhima-Mochi/ims/internal/infrastructure/export"
	"github.com/Zhima-Mochi/ims/internal/infrastructure/memory"
	infraobs "github.com/Zhima-Mochi/ims/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/ims/internal/infrastructure/observability/oteltrace"
	"github.com/Zhima-Mochi/ims/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/ims/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/ims/internal/infrastructure/outbox"
	"github.com/Zhima-Mochi/ims/internal/observability"
	httppresentation "github.com/Zhima-Mochi/ims/internal/presentation/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	demo := flag.Bool("demo", false, "run the fixed demonstration flow and exit")
	flag.Parse()

	cfg := config.Load()

	logger := zaplogger.New(cfg.LogLevel,
		observability.F("service", "ims"),
		observability.F("env", cfg.Env),
	)
	logger.Info("config_loaded",
		observability.F("project", config.ProjectName),
		observability.F("version", config.Version),
		observability.F("env", cfg.Env),
		observability.F("database_url", cfg.DatabaseURL),
	)

	registry := prometrics.New("ims", "")
	counters := map[observability.MetricKey]observability.Counter{
		observability.MWorkflowRequests: registry.Counter(observability.MWorkflowRequests,
			"Total number of workflow invocations.", "workflow", "outcome"),
		observability.MHTTPRequests: registry.Counter(observability.MHTTPRequests,
			"Total number of HTTP requests.", "method", "route", "status"),
		observability.MDomainEvents: registry.Counter(observability.MDomainEvents,
			"Count of domain events consumed by the audit worker.", "event"),
		observability.MExportedRecords: registry.Counter(observability.MExportedRecords,
			"Count of records written to CSV exports.", "set"),
	}
	histograms := map[observability.MetricKey]observability.Histogram{
		observability.MWorkflowDuration: registry.Histogram(observability.MWorkflowDuration,
			"Duration of workflow execution in seconds.", nil, "workflow"),
		observability.MHTTPRequestDuration: registry.Histogram(observability.MHTTPRequestDuration,
			"Duration of HTTP requests in seconds.", nil, "method", "route", "status"),
	}
	tel := infraobs.New(oteltrace.New("ims"), logger, counters, histograms)

	// In-memory event bus (acts as outbox/event publisher for demo)
	bus := outbox.NewBus(logger)
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	inventoryService := appinventory.NewService(memory.NewInventoryRepository(), bus, logger)
	orderService := apporder.NewService(memory.NewOrderRepository(), inventoryService, bus, logger)
	paymentService := apppayment.NewService(memory.NewPaymentRepository(), bus, logger)
	subscriptionService := appsubscription.NewService(memory.NewSubscriptionRepository(), bus, logger)

	auditWorker := audit.New(bus, tel)
	auditWorker.Start()

	orch := orchestrator.New(
		inventoryService,
		orderService,
		paymentService,
		subscriptionService,
		export.New(cfg.ExportDir),
		cfg.PlanPrices,
		tel,
	)

	if *demo {
		if err := orch.RunDemo(context.Background()); err != nil {
			fmt.Fprintln(os.Stderr, "demo failed:", err)
			os.Exit(1)
		}
		return
	}

	handler := httppresentation.NewHandler(orch, tel)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", httppresentation.ObservabilityMiddleware(logger, tel)(handler.Router()))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http_server_start",
			observability.F("addr", server.Addr),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error",
				observability.F("error", err),
			)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_error",
			observability.F("error", err),
		)
	} else {
		logger.Info("http_server_stopped")
	}
}
