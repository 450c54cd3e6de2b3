package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	salesevents "github.com/openretail/pos-api-server/internal/domains/sales/adapters/events"
	salesmemory "github.com/openretail/pos-api-server/internal/domains/sales/adapters/memory"
	salesobservability "github.com/openretail/pos-api-server/internal/domains/sales/adapters/observability"
	salespostgres "github.com/openretail/pos-api-server/internal/domains/sales/adapters/persistence/postgres"
	salesapp "github.com/openretail/pos-api-server/internal/domains/sales/application"
	salesports "github.com/openretail/pos-api-server/internal/domains/sales/ports"
	platformkafka "github.com/openretail/pos-api-server/internal/platform/kafka"
	"github.com/openretail/pos-api-server/internal/platform/migrations"
	platformobservability "github.com/openretail/pos-api-server/internal/platform/observability"
	platformpostgres "github.com/openretail/pos-api-server/internal/platform/postgres"
	salesactivities "github.com/openretail/pos-api-server/internal/platform/temporal/activities/sales"
	durablesales "github.com/openretail/pos-api-server/internal/durable/temporal/workflows/sales"
)

func main() {
	ctx := context.Background()
	const serviceName = "pos-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	orderRepo, cleanupRepo := buildOrderRepository(ctx, logger)
	defer cleanupRepo()

	var publisher salesports.EventPublisher
	if brokers := platformkafka.BrokersFromEnv(); len(brokers) > 0 {
		kafkaPublisher := salesevents.NewKafkaPublisher(logger, platformkafka.TopicFromEnv(""), brokers...)
		defer func() { _ = kafkaPublisher.Close() }()
		publisher = kafkaPublisher
	}

	// The activity service completes carts directly; the orchestrator
	// stays unset so activities never re-enter the workflow.
	salesService := salesobservability.New(
		salesapp.NewService(orderRepo, publisher, envOrDefault("ORDER_SEQUENCE_START", "100")),
		salesobservability.WithLogger(logger),
		salesobservability.WithTracer(instruments.Tracer("domains.sales.application")),
		salesobservability.WithMeter(instruments.Meter("domains.sales.application")),
	)
	activities := salesactivities.NewActivities(salesService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, durablesales.OrderCompletionTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(durablesales.OrderCompletionWorkflow, workflow.RegisterOptions{Name: durablesales.OrderCompletionWorkflowName})
	w.RegisterActivityWithOptions(activities.CompleteCart, activity.RegisterOptions{Name: salesactivities.CompleteCartActivityName})

	logger.Info("worker listening", slog.String("taskQueue", durablesales.OrderCompletionTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildOrderRepository(ctx context.Context, logger *slog.Logger) (salesports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		logger.Warn("POSTGRES_DSN not set or unreachable, worker falling back to in-memory order repository")
		return salesmemory.NewRepository(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("worker failed to run database migrations, falling back to memory", slog.String("error", err.Error()))
		cleanup()
		return salesmemory.NewRepository(), func() {}
	}
	logger.Info("worker order repository configured with postgres")
	return salespostgres.NewRepository(db), cleanup
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
