package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/mbruton/festival-manager/internal/config"
	"github.com/mbruton/festival-manager/internal/database"
	"github.com/mbruton/festival-manager/internal/handler"
	"github.com/mbruton/festival-manager/internal/middleware"
	"github.com/mbruton/festival-manager/internal/queue"
	"github.com/mbruton/festival-manager/internal/repository"
	"github.com/mbruton/festival-manager/internal/router"
	"github.com/mbruton/festival-manager/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := newLogger(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.InitSchema(ctx); err != nil {
		cancel()
		log.Fatal("init schema", zap.Error(err))
	}
	cancel()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unreachable, public rate limiting disabled")
	}

	var events service.Publisher = service.NopPublisher{}
	if cfg.AMQPURL != "" {
		events = service.NewAMQPPublisher(cfg.AMQPURL, log)
		go queue.StartContractConsumer(cfg.AMQPURL, log)
	}

	users := repository.NewUserRepo(db)
	venues := repository.NewVenueRepo(db)
	festivals := repository.NewFestivalRepo(db)
	stages := repository.NewStageRepo(db)
	artists := repository.NewArtistRepo(db)
	performances := repository.NewPerformanceRepo(db)
	volunteers := repository.NewVolunteerRepo(db)
	vendors := repository.NewVendorRepo(db)
	budget := repository.NewBudgetRepo(db)
	documents := repository.NewDocumentRepo(db)
	contracts := repository.NewContractRepo(db)
	todos := repository.NewTodoRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLogger(log))

	h := router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, users),
		Users:     handler.NewUserHandler(users),
		Venues:    handler.NewVenueHandler(venues),
		Festivals: handler.NewFestivalHandler(festivals),
		Stages:    handler.NewStageHandler(stages),
		Artists:   handler.NewArtistHandler(artists),
		Schedule:  handler.NewScheduleHandler(performances, stages),
		Volunteer: handler.NewVolunteerHandler(volunteers),
		Vendors:   handler.NewVendorHandler(vendors),
		Budget:    handler.NewBudgetHandler(budget),
		Documents: handler.NewDocumentHandler(documents),
		Contracts: handler.NewContractHandler(contracts, artists, festivals, performances, events),
		Todos:     handler.NewTodoHandler(todos),
		Health:    handler.NewHealthHandler(db),
	}

	publicLimit := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)
	router.Register(e, h, cfg.JWTSecret, users, publicLimit)

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// newLogger picks the zap preset for the environment: structured JSON in
// prod, human-readable everywhere else.
func newLogger(env string) (*zap.Logger, error) {
	if env == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
