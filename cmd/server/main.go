package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/leadlane/backend/internal/application/crmsync"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/leadlane/backend/internal/infrastructure/auth"
	"github.com/leadlane/backend/internal/infrastructure/cache"
	"github.com/leadlane/backend/internal/infrastructure/config"
	"github.com/leadlane/backend/internal/infrastructure/crm/clients"
	"github.com/leadlane/backend/internal/infrastructure/crm/hubspot"
	"github.com/leadlane/backend/internal/infrastructure/crm/salesforce"
	"github.com/leadlane/backend/internal/infrastructure/crm/sapb1"
	"github.com/leadlane/backend/internal/infrastructure/event"
	"github.com/leadlane/backend/internal/infrastructure/logger"
	"github.com/leadlane/backend/internal/infrastructure/persistence"
	"github.com/leadlane/backend/internal/infrastructure/scheduler"
	"github.com/leadlane/backend/internal/infrastructure/telemetry"
	"github.com/leadlane/backend/internal/interfaces/http/handler"
	"github.com/leadlane/backend/internal/interfaces/http/middleware"
	"github.com/leadlane/backend/internal/interfaces/http/router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	_ "github.com/leadlane/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			LeadLane CRM Sync API
//	@version		1.0
//	@description	Bidirectional sync between LeadLane records and tenant CRM systems (HubSpot, Salesforce, Pipedrive, SAP Business One)

//	@contact.name	LeadLane Engineering
//	@contact.url	https://github.com/leadlane/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting LeadLane CRM sync",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := telemetry.NewSyncMetrics(registry)

	// Database
	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.RegisterGormTracing(db.DB, tracerProvider, log); err != nil {
		log.Warn("Database tracing unavailable", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Refresh lock: in-process always, Redis on top when several replicas run
	var locker crm.RefreshLocker = cache.NewKeyedMutex()
	if cfg.Sync.RedisLockEnabled {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisClient.Close()
		}()
		locker = cache.NewLayeredLocker(locker,
			cache.NewRedisLocker(redisClient, cfg.Sync.RedisLockTTL, cfg.Sync.RedisLockWait, log))
		log.Info("Distributed refresh lock enabled", zap.String("redis", cfg.Redis.Addr()))
	}

	// Repositories
	connectionRepo := persistence.NewGormConnectionRepository(db.DB)
	mappingRepo := persistence.NewGormFieldMappingRepository(db.DB)
	webhookLedger := persistence.NewGormWebhookEventRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	contactRepo := persistence.NewGormContactRepository(db.DB)
	opportunityRepo := persistence.NewGormOpportunityRepository(db.DB)
	linkRepos := persistence.NewGormLinkRepositories(db.DB)

	// Credentials and mapping
	store := crmsync.NewCredentialsStore(crmsync.CredentialsStoreConfig{
		Repo:      connectionRepo,
		Locker:    locker,
		ClockSkew: cfg.Sync.ClockSkew,
		Metrics:   metrics,
		Logger:    log,
	})
	engine := crmsync.NewMappingEngine(crmsync.MappingEngineConfig{
		Repo:   mappingRepo,
		Cache:  cache.NewMappingCache(cfg.Sync.MappingCacheSize, cfg.Sync.MappingCacheTTL),
		Logger: log,
	})
	mappingService := crmsync.NewMappingService(mappingRepo, engine, log)

	// Vendor clients
	hubspotConfig := &hubspot.Config{
		BaseURL:      cfg.CRM.HubSpot.BaseURL,
		AuthorizeURL: cfg.CRM.HubSpot.AuthorizeURL,
		TokenURL:     cfg.CRM.HubSpot.TokenURL,
		ClientID:     cfg.CRM.HubSpot.ClientID,
		ClientSecret: cfg.CRM.HubSpot.ClientSecret,
		RedirectURI:  cfg.CRM.HubSpot.RedirectURI,
		Scopes:       cfg.CRM.HubSpot.Scopes,
		Timeout:      cfg.Sync.HTTPTimeout,
	}
	var hubspotOAuth *hubspot.OAuthClient
	if oauthClient, err := hubspot.NewOAuthClient(hubspotConfig, nil); err != nil {
		log.Warn("HubSpot OAuth not configured; connect and token refresh are unavailable", zap.Error(err))
	} else {
		hubspotOAuth = oauthClient
	}

	refreshers := map[crm.System]crm.RefreshFunc{}
	var authorizer crmsync.OAuthAuthorizer
	if hubspotOAuth != nil {
		refreshers[crm.SystemHubSpot] = hubspotOAuth.RefreshFunc()
		authorizer = hubspotOAuth
	}

	factory := clients.NewFactory(clients.FactoryConfig{
		HubSpot:      hubspotConfig,
		HubSpotOAuth: hubspotOAuth,
		Mapper:       engine,
		Salesforce: salesforce.Config{
			InstanceURL: cfg.CRM.Salesforce.InstanceURL,
			APIVersion:  cfg.CRM.Salesforce.APIVersion,
		},
		SAPB1: sapb1.Config{
			ServiceLayerURL: cfg.CRM.SAPB1.ServiceLayerURL,
			CompanyDB:       cfg.CRM.SAPB1.CompanyDB,
		},
		Enabled: enabledSystems(cfg.CRM),
		Timeout: cfg.Sync.HTTPTimeout,
		Logger:  log,
	})

	// Sync pipeline
	syncService := crmsync.NewSyncService(crmsync.SyncServiceConfig{
		Credentials: store,
		Factory:     factory,
		Refreshers:  refreshers,
		Links:       linkRepos,
		Metrics:     metrics,
		Logger:      log,
	})
	listener := crmsync.NewSyncListener(store, syncService, log)

	dispatcher := event.NewAsyncDispatcher(event.AsyncDispatcherConfig{
		Workers:   cfg.Sync.DispatcherWorkers,
		QueueSize: cfg.Sync.DispatcherQueue,
		Drops:     metrics,
		Logger:    log,
	})
	dispatcher.Subscribe(crmsync.NewCompanySyncHandler(companyRepo, listener, log))
	dispatcher.Subscribe(crmsync.NewContactSyncHandler(contactRepo, listener, log))
	dispatcher.Subscribe(crmsync.NewOpportunitySyncHandler(opportunityRepo, listener, log))
	dispatcher.Subscribe(crmsync.NewActivitySyncHandler(listener, log))
	if err := dispatcher.Start(ctx); err != nil {
		log.Fatal("Failed to start event dispatcher", zap.Error(err))
	}

	webhookProcessor := crmsync.NewWebhookProcessor(crmsync.WebhookProcessorConfig{
		Ledger:       webhookLedger,
		Engine:       engine,
		Companies:    companyRepo,
		Contacts:     contactRepo,
		AccountLinks: linkRepos[crm.LinkKindAccount],
		ContactLinks: linkRepos[crm.LinkKindContact],
		Metrics:      metrics,
		Logger:       log,
	})

	connectionService := crmsync.NewConnectionService(crmsync.ConnectionServiceConfig{
		Store:        store,
		HubSpotOAuth: authorizer,
		States:       auth.NewOAuthStateSigner(stateSecret(cfg)),
		Logger:       log,
	})
	resyncService := crmsync.NewResyncService(companyRepo, listener,
		linkRepos[crm.LinkKindAccount], linkRepos[crm.LinkKindContact], linkRepos[crm.LinkKindOpportunity])

	// Proactive token refresh
	var refreshJob *scheduler.TokenRefreshJob
	if cfg.Refresh.Enabled && len(refreshers) > 0 {
		targets := make([]scheduler.RefreshTarget, 0, len(refreshers))
		for system, refresh := range refreshers {
			targets = append(targets, scheduler.RefreshTarget{System: system, Refresh: refresh})
		}
		refreshJob, err = scheduler.NewTokenRefreshJob(scheduler.TokenRefreshJobConfig{
			Schedule:  cfg.Refresh.Schedule,
			Lookahead: cfg.Refresh.Lookahead,
			Targets:   targets,
		}, store, log)
		if err != nil {
			log.Fatal("Invalid token refresh schedule", zap.Error(err))
		}
		if err := refreshJob.Start(ctx); err != nil {
			log.Fatal("Failed to start token refresh job", zap.Error(err))
		}
	}

	// HTTP
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	jwtService := auth.NewJWTService(cfg.JWT)
	ginEngine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := ginEngine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware order: request logger (assigns the request ID), recovery,
	// tracing, metrics, security headers and CORS
	ginEngine.Use(logger.GinMiddleware(log))
	ginEngine.Use(logger.Recovery(log))
	ginEngine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     tracerProvider.Enabled(),
	}))
	ginEngine.Use(middleware.SpanAttributes(), middleware.SpanErrorMarker())
	ginEngine.Use(middleware.HTTPMetrics(metrics))
	ginEngine.Use(middleware.Secure())
	ginEngine.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.HTTP.CORSAllowOrigins)))

	ginEngine.GET("/health", healthHandler(db))
	ginEngine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})))

	// Swagger documentation endpoint
	ginEngine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r := router.NewRouter(ginEngine, router.WithAPIVersion("v1"))
	r.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	r.Register(router.CRMRoutes(router.CRMHandlers{
		Webhook: handler.NewCRMWebhookHandler(
			hubspot.NewSignatureVerifier(cfg.CRM.HubSpot.WebhookSecret, cfg.CRM.HubSpot.PublicBaseURL, cfg.Sync.WebhookTolerance),
			webhookProcessor,
			cfg.HTTP.WebhookMaxBody,
		),
		Connection:   handler.NewCRMConnectionHandler(connectionService),
		Admin:        handler.NewCRMAdminHandler(connectionService),
		FieldMapping: handler.NewCRMFieldMappingHandler(mappingService),
		Sync:         handler.NewCRMSyncHandler(resyncService),
		Changes:      handler.NewCRMChangeHandler(crmsync.NewChangeNotifier(dispatcher, log)),
	}, router.CRMGuards{
		Auth: middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			Validator: jwtService,
			Logger:    log,
		}),
		TenantMatch: middleware.RequireTenantMatch("tenant_id"),
		Admin:       middleware.RequireAdmin(jwtService),
	})...)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        ginEngine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if refreshJob != nil {
		if err := refreshJob.Stop(shutdownCtx); err != nil {
			log.Warn("Token refresh job did not stop cleanly", zap.Error(err))
		}
	}
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Warn("Event dispatcher did not drain", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// enabledSystems lists the CRM systems switched on in configuration
func enabledSystems(cfg config.CRMConfig) []crm.System {
	var systems []crm.System
	if cfg.HubSpot.Enabled {
		systems = append(systems, crm.SystemHubSpot)
	}
	if cfg.Salesforce.Enabled {
		systems = append(systems, crm.SystemSalesforce)
	}
	if cfg.SAPB1.Enabled {
		systems = append(systems, crm.SystemSAPB1)
	}
	return systems
}

// stateSecret keys the OAuth state signer with the HubSpot app secret,
// falling back to the JWT secret when no app is configured
func stateSecret(cfg *config.Config) string {
	if cfg.CRM.HubSpot.ClientSecret != "" {
		return cfg.CRM.HubSpot.ClientSecret
	}
	return cfg.JWT.Secret
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.FromContext(c.Request.Context()).Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
