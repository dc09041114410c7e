package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"itufk/config"
	"itufk/cron"
	"itufk/database"
	eventRepo "itufk/database/repository/event"
	memberRepo "itufk/database/repository/member"
	reminderRepo "itufk/database/repository/reminder"
	"itufk/handlers"
	"itufk/middleware"
	"itufk/routes"
	"itufk/services/event"
	"itufk/services/notification"
	"itufk/services/reminder"
	"itufk/services/session"
	"itufk/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	rootCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	mongoClient, err := database.InitDB(rootCtx)
	if err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}
	authCache, err := utils.GetAuthCacheClient()
	if err != nil {
		logger.Fatal("main: failed to connect to the session cache", zap.Error(err))
	}
	utils.StartHealthMonitor(rootCtx, []*redis.Client{authCache}, mongoClient)

	// repositories.
	db := database.Database()
	members := memberRepo.NewMongoMemberRepo(db)
	events := eventRepo.NewMongoEventRepo(db)
	records, err := reminderRepo.NewMongoReminderRepo(db, config.AppConfig.ReminderUniqueDayIndex)
	if err != nil {
		logger.Fatal("main: failed to prepare reminder store", zap.Error(err))
	}

	// push delivery.
	var sink notification.Sink
	var pushWorker *cron.PushWorker
	var queueClient *asynq.Client
	fcmClient, err := utils.FirebaseInit(rootCtx)
	if err != nil {
		logger.Warn("main: Firebase unavailable, reminders will be in-app only", zap.Error(err))
	} else {
		fcm, err := notification.NewFCMSink(fcmClient, logger)
		if err != nil {
			logger.Fatal("main: failed to create FCM sink", zap.Error(err))
		}
		sink = fcm
		if config.AppConfig.PushQueueEnabled {
			queueClient = asynq.NewClient(cron.RedisOpt())
			sink = cron.NewQueuedSink(queueClient)
			pushWorker = cron.NewPushWorker(fcm, logger)
			pushWorker.Start(rootCtx)
		}
	}

	// reminders and sessions.
	clock := reminder.NewSystemClock(config.ReminderLocation())
	dispatcher := reminder.NewDispatcher(records, members, sink, clock, logger)
	opts := reminder.Options{
		Hour: config.AppConfig.ReminderHour,
		Window: reminder.Window{
			MinDays: config.AppConfig.ReminderWindowMinDays,
			MaxDays: config.AppConfig.ReminderWindowMaxDays,
		},
		Logger: logger,
	}
	factory := func(memberID string) (*reminder.Scheduler, error) {
		return reminder.NewScheduler(memberID, events, members, dispatcher, clock, opts)
	}
	sessions := session.NewManager(rootCtx, members, session.NewRedisTokenCache(authCache), factory,
		config.AppConfig.SessionTTL, logger)
	sessions.StartSweeper(rootCtx, config.AppConfig.SessionSweep)

	// handlers.
	sessionHandler := handlers.NewSessionHandler(sessions)
	eventHandler := handlers.NewEventHandler(&event.DefaultEventService{Repo: events})
	pushTokenHandler := handlers.NewPushTokenHandler(members)
	reminderHandler := handlers.NewReminderHandler(records, sessions)

	handlerBundle := &handlers.HandlerBundle{
		Auth: sessions,

		LoginHandler:  sessionHandler.LoginHandler,
		LogoutHandler: sessionHandler.LogoutHandler,

		ListEventsHandler:    eventHandler.ListEventsHandler,
		MarkAnnouncedHandler: eventHandler.MarkAnnouncedHandler,

		RegisterPushTokenHandler:   pushTokenHandler.RegisterPushTokenHandler,
		UnregisterPushTokenHandler: pushTokenHandler.UnregisterPushTokenHandler,

		ListRemindersHandler: reminderHandler.ListRemindersHandler,
		GetScheduleHandler:   reminderHandler.GetScheduleHandler,
		ScanNowHandler:       reminderHandler.ScanNowHandler,

		HealthHandler: handlers.HealthHandler,
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	sessions.Shutdown()
	if pushWorker != nil {
		pushWorker.Shutdown()
	}
	if queueClient != nil {
		_ = queueClient.Close()
	}
	stopBackground()
	if err := mongoClient.Disconnect(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
