package main

import (
	"math/rand"
	"os"
	"time"

	"github.com/venturelens/assessment-engine/internal/catalog"
	"github.com/venturelens/assessment-engine/internal/config"
	"github.com/venturelens/assessment-engine/internal/events"
	"github.com/venturelens/assessment-engine/internal/handlers"
	"github.com/venturelens/assessment-engine/internal/services"
	"github.com/venturelens/assessment-engine/internal/store"
	"github.com/venturelens/assessment-engine/internal/utils"
	"github.com/venturelens/assessment-engine/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "development" {
		logger = utils.NewDevelopmentLogger()
	} else {
		logger = utils.NewDefaultLogger()
	}
	slogger := utils.ToSlogLogger(logger)

	// Session snapshots live in redis when available; the in-memory
	// store keeps a single-node dev setup working without one.
	var sessions store.SessionStore
	if client, err := pkg.NewRedisClient(cfg); err != nil {
		logger.Warn("redis unavailable, using in-memory session store", "error", err)
		sessions = store.NewMemoryStore()
	} else {
		sessions = store.NewRedisStore(client, time.Duration(cfg.SessionTTLMinutes)*time.Minute)
	}

	publisher := events.NewChannelEventPublisher(events.PublisherConfig{
		TopicName: cfg.EventTopic,
		Logger:    slogger,
	})
	defer publisher.Close()

	bank := catalog.DefaultBank()
	planner := services.NewStrategyPlanner(slogger)

	assemblerOpts := []services.AssemblerOption{
		services.WithDefaultQuestionCount(cfg.DefaultQuestionCount),
	}
	if cfg.RandomQuestionCount {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		assemblerOpts = append(assemblerOpts, services.WithRng(rng.Float64))
	}
	assembler := services.NewWorksheetAssembler(bank, slogger, assemblerOpts...)

	scorer := services.NewResponseScorer(slogger)
	controller := services.NewAdaptationController(scorer, slogger)
	sessionService := services.NewSessionService(planner, assembler, controller, sessions, publisher, slogger)
	exportService := services.NewExportService(slogger)

	sessionHandler := handlers.NewSessionHandler(sessionService, exportService, logger)
	router := handlers.SetupRouter(sessionHandler, logger)

	logger.Info("starting assessment engine", "port", cfg.Port, "environment", cfg.Environment)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
