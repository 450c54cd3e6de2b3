package api

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	catalogcache "github.com/openretail/pos-api-server/internal/domains/catalog/adapters/cache"
	catalogmemory "github.com/openretail/pos-api-server/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/openretail/pos-api-server/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/openretail/pos-api-server/internal/domains/catalog/application"
	catalogports "github.com/openretail/pos-api-server/internal/domains/catalog/ports"
	salesevents "github.com/openretail/pos-api-server/internal/domains/sales/adapters/events"
	salesmemory "github.com/openretail/pos-api-server/internal/domains/sales/adapters/memory"
	salesobservability "github.com/openretail/pos-api-server/internal/domains/sales/adapters/observability"
	salesmongo "github.com/openretail/pos-api-server/internal/domains/sales/adapters/persistence/mongo"
	salespostgres "github.com/openretail/pos-api-server/internal/domains/sales/adapters/persistence/postgres"
	salesremote "github.com/openretail/pos-api-server/internal/domains/sales/adapters/remote"
	salesworkflows "github.com/openretail/pos-api-server/internal/domains/sales/adapters/workflows"
	salesapp "github.com/openretail/pos-api-server/internal/domains/sales/application"
	salesports "github.com/openretail/pos-api-server/internal/domains/sales/ports"
	settingsmemory "github.com/openretail/pos-api-server/internal/domains/settings/adapters/memory"
	settingspostgres "github.com/openretail/pos-api-server/internal/domains/settings/adapters/persistence/postgres"
	settingsapp "github.com/openretail/pos-api-server/internal/domains/settings/application"
	settingsports "github.com/openretail/pos-api-server/internal/domains/settings/ports"
	usermemory "github.com/openretail/pos-api-server/internal/domains/users/adapters/memory"
	userobservability "github.com/openretail/pos-api-server/internal/domains/users/adapters/observability"
	userpostgres "github.com/openretail/pos-api-server/internal/domains/users/adapters/persistence/postgres"
	userapp "github.com/openretail/pos-api-server/internal/domains/users/application"
	userports "github.com/openretail/pos-api-server/internal/domains/users/ports"
	"github.com/openretail/pos-api-server/internal/platform/migrations"
	platformmongo "github.com/openretail/pos-api-server/internal/platform/mongo"
	platformobservability "github.com/openretail/pos-api-server/internal/platform/observability"
	platformpostgres "github.com/openretail/pos-api-server/internal/platform/postgres"
	platformredis "github.com/openretail/pos-api-server/internal/platform/redis"
	transporthttp "github.com/openretail/pos-api-server/internal/transport/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const serviceName = "pos-api"

// Run wires the adapters selected by the environment and serves the API.
// Every external dependency is optional: without postgres, mongo, redis,
// kafka or temporal the server degrades to in-memory adapters and inline
// order completion.
func Run() {
	ctx := context.Background()
	cfg := LoadConfig()

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

	db, cleanupDB := connectPostgres(ctx, cfg, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			logger.Error("failed to run database migrations", slog.String("error", err.Error()))
			return
		}
	}

	orderRepo, cleanupOrders := buildOrderRepository(ctx, cfg, db, logger)
	defer cleanupOrders()

	publisher, cleanupPublisher := buildEventPublisher(cfg, logger)
	defer cleanupPublisher()

	salesCore := salesapp.NewService(orderRepo, publisher, cfg.OrderSequenceStart)
	salesService := salesobservability.New(
		salesCore,
		salesobservability.WithLogger(logger),
		salesobservability.WithTracer(instruments.Tracer("domains.sales.application")),
		salesobservability.WithMeter(instruments.Meter("domains.sales.application")),
	)

	var orchestrator salesports.WorkflowOrchestrator = salesworkflows.NewInlineOrderWorkflows(salesService)
	if temporalClient, err := connectTemporalClient(instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, completing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orchestrator = salesworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal order completion enabled", slog.String("namespace", envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace)))
	}
	salesCore.UseOrchestrator(orchestrator)

	redisClient, cleanupRedis := platformredis.ConnectFromEnv(ctx, logger)
	defer cleanupRedis()
	catalogService := catalogapp.NewService(buildProductRepository(db, redisClient, logger))

	userRepo, sessionStore := buildUserAdapters(cfg, db, logger)
	userService := userobservability.New(
		userapp.NewService(userRepo, sessionStore),
		userobservability.WithLogger(logger),
		userobservability.WithTracer(instruments.Tracer("domains.users.application")),
		userobservability.WithMeter(instruments.Meter("domains.users.application")),
	)

	settingsService := settingsapp.NewService(buildSettingsRepository(db, logger), cfg.Currency)

	router := transporthttp.NewRouter(serviceName, transporthttp.Handlers{
		Orders:   transporthttp.NewOrdersAPI(salesService, orderRepo),
		Products: transporthttp.NewProductsAPI(catalogService),
		Users:    transporthttp.NewUsersAPI(userService),
		Settings: transporthttp.NewSettingsAPI(settingsService),
	})

	addr := ":" + cfg.Port
	logger.Info("POS API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("POS API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
	}
}

func connectPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func()) {
	if cfg.PostgresDSN == "" {
		return nil, func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, relational adapters disabled", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, relational adapters disabled", slog.String("error", err.Error()))
		return nil, func() {}
	}
	return db, func() { _ = sqlDB.Close() }
}

// buildOrderRepository picks the order store: postgres when a relational
// connection exists, then mongo, then the remote orders API, then memory.
func buildOrderRepository(ctx context.Context, cfg Config, db *gorm.DB, logger *slog.Logger) (salesports.Repository, func()) {
	if db != nil {
		logger.Info("order repository configured with postgres")
		return salespostgres.NewRepository(db), func() {}
	}
	if cfg.MongoURI != "" {
		mongoDB, err := platformmongo.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			logger.Warn("failed to connect to mongo, trying next order backend", slog.String("error", err.Error()))
		} else {
			logger.Info("order repository configured with mongo", slog.String("database", cfg.MongoDatabase))
			cleanup := func() {
				disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = mongoDB.Client().Disconnect(disconnectCtx)
			}
			return salesmongo.NewRepository(mongoDB), cleanup
		}
	}
	if cfg.OrdersAPIBaseURL != "" {
		remote, err := salesremote.NewClient(cfg.OrdersAPIBaseURL, &http.Client{Timeout: 10 * time.Second})
		if err != nil {
			logger.Warn("invalid orders API base URL, falling back to memory", slog.String("error", err.Error()))
		} else {
			logger.Info("order repository configured with remote orders API", slog.String("baseURL", cfg.OrdersAPIBaseURL))
			return remote, func() {}
		}
	}
	logger.Warn("no order backend configured, falling back to in-memory order repository")
	return salesmemory.NewRepository(), func() {}
}

func buildEventPublisher(cfg Config, logger *slog.Logger) (salesports.EventPublisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Warn("KAFKA_BROKERS not set, order completion events disabled")
		return nil, func() {}
	}
	publisher := salesevents.NewKafkaPublisher(logger, cfg.KafkaOrdersTopic, cfg.KafkaBrokers...)
	logger.Info("order completion events configured with kafka", slog.Int("brokers", len(cfg.KafkaBrokers)))
	return publisher, func() { _ = publisher.Close() }
}

func buildProductRepository(db *gorm.DB, redisClient *redis.Client, logger *slog.Logger) catalogports.Repository {
	var repo catalogports.Repository
	if db != nil {
		logger.Info("product repository configured with postgres")
		repo = catalogpostgres.NewRepository(db)
	} else {
		logger.Warn("no relational backend configured, falling back to in-memory product repository")
		repo = catalogmemory.NewRepository()
	}
	if redisClient != nil {
		logger.Info("product cache configured with redis")
		return catalogcache.NewCachedRepository(repo, redisClient)
	}
	return repo
}

func buildUserAdapters(cfg Config, db *gorm.DB, logger *slog.Logger) (userports.Repository, userports.SessionStore) {
	if db != nil {
		logger.Info("user repository configured with postgres")
		return userpostgres.NewRepository(db), userpostgres.NewSessionStore(db, cfg.SessionTTL)
	}
	logger.Warn("no relational backend configured, falling back to in-memory user repository")
	return usermemory.NewRepository(), usermemory.NewSessionStore()
}

func buildSettingsRepository(db *gorm.DB, logger *slog.Logger) settingsports.Repository {
	if db != nil {
		return settingspostgres.NewRepository(db)
	}
	logger.Warn("no relational backend configured, falling back to in-memory settings repository")
	return settingsmemory.NewRepository()
}

func connectTemporalClient(instruments *platformobservability.Instruments) (client.Client, error) {
	if isTruthy(os.Getenv("TEMPORAL_DISABLED")) {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	address := envDefault("TEMPORAL_ADDRESS", client.DefaultHostPort)
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  address,
		Namespace: envDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
