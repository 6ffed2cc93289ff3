package main

import (
	"context"

	"voltworks/internal/booking"
	"voltworks/internal/dashboard/handler"
	"voltworks/internal/dashboard/service"
	"voltworks/internal/guard"
	"voltworks/internal/logout"
	"voltworks/internal/notify"
	"voltworks/internal/querycache"
	"voltworks/internal/session"
	"voltworks/internal/uistate"
	"voltworks/pkg/app"
	"voltworks/pkg/client"
	"voltworks/pkg/config"
)

const ServiceName = "dashboard"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.Client.GracefulShutdown()

	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)

	// Session state and per-user UI state persist in MongoDB so a redeploy
	// does not sign everybody out.
	sessionStore := session.NewStore(
		session.NewMongoRepository(db),
		[]byte(cfg.JWTSecret),
		cfg.SessionTTL,
		cfg.Log,
	)
	uiState := uistate.NewMongoRepository(db)

	cache := querycache.New(cfg.CacheFreshFor, cfg.CacheRetainFor)
	center := notify.NewCenter(cfg.NotificationTTL)
	views := service.NewViewRegistry(sessionStore, cfg.PageSize, cfg.SearchDebounce)

	appointmentAPI := client.NewAppointmentClient(cfg.APIBaseURL, cfg.APITimeout)
	paymentAPI := client.NewPaymentClient(cfg.APIBaseURL, cfg.APITimeout)
	catalogAPI := client.NewCatalogClient(cfg.APIBaseURL, cfg.APITimeout)
	authAPI := client.NewAuthClient(cfg.AuthBaseURL, cfg.APITimeout)

	appointments := service.NewAppointmentService(
		appointmentAPI,
		paymentAPI,
		booking.NewValidator(cfg.Log),
		cache,
		uiState,
		cfg.Log,
	)
	catalog := service.NewCatalogService(catalogAPI, cache, uiState, cfg.Log)
	admin := service.NewAdminService(appointments, catalog, cfg.Log)

	watcher := logout.NewWatcher(logout.WatcherConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaSessionTopic,
		GroupID: cfg.KafkaGroupID,
	}, sessionStore, center, cfg.Log)

	watcherCtx, stopWatcher := context.WithCancel(context.Background())
	go func() {
		if err := watcher.Run(watcherCtx); err != nil && watcherCtx.Err() == nil {
			cfg.Log.Error("Session event watcher stopped", "error", err)
		}
	}()

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg,
		handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
		guard.Middleware(sessionStore, cfg.Log),
		handler.NewAuthHandler(authAPI, sessionStore, center, views, cfg.SessionTTL, cfg.Log),
		handler.NewMetaHandler(catalog, cfg.Log),
		handler.NewCustomerHandler(appointments, catalog, views, center, cfg.PageSize, cfg.Log),
		handler.NewStaffHandler(appointments, catalog, views, cfg.PageSize, cfg.Log),
		handler.NewTechnicianHandler(appointments, catalog, views, cfg.PageSize, cfg.Log),
		handler.NewAdminHandler(admin, cfg.PageSize, cfg.Log),
	)
	serverApp.Manage(cache, center, views, stopFunc(func() {
		stopWatcher()
		if err := watcher.Close(); err != nil {
			cfg.Log.Warn("Failed to close session event watcher", "error", err)
		}
	}))

	cfg.Log.Info("Starting dashboard gateway")
	serverApp.Run()
}

type stopFunc func()

func (f stopFunc) Stop() { f() }
