package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/cinema-ticket-booking/internal/config"
	"github.com/iliyamo/cinema-ticket-booking/internal/database"
	"github.com/iliyamo/cinema-ticket-booking/internal/handler"
	"github.com/iliyamo/cinema-ticket-booking/internal/logger"
	"github.com/iliyamo/cinema-ticket-booking/internal/middleware"
	"github.com/iliyamo/cinema-ticket-booking/internal/queue"
	"github.com/iliyamo/cinema-ticket-booking/internal/repository"
	"github.com/iliyamo/cinema-ticket-booking/internal/router"
	"github.com/iliyamo/cinema-ticket-booking/internal/service"
	"github.com/iliyamo/cinema-ticket-booking/internal/session"
)

func main() {
	_ = godotenv.Load() // .env is optional
	cfg := config.Load()

	log, err := logger.New(os.Stdout, cfg.LogFile)
	if err != nil {
		panic(err)
	}
	defer log.Close()
	if cfg.Env == "dev" {
		log.SetLevel(logger.DEBUG)
	}

	db, err := database.Open(cfg.DSN())
	if err != nil {
		log.Errorf("DATABASE", "open: %v", err)
		os.Exit(1)
	}
	defer db.Close()
	log.LogDatabase("CONNECT", "-", "mysql connection ready")

	if cfg.DBAutoMigrate {
		if err := migrate(cfg.DSN()); err != nil {
			log.Errorf("DATABASE", "migrate: %v", err)
			os.Exit(1)
		}
	}

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb == nil {
		log.Warn("REDIS", "unreachable; sessions kept in memory, rate limiting and poster cache disabled")
	} else {
		defer rdb.Close()
	}

	// storage
	genres := repository.NewGenreRepo(db)
	halls := repository.NewHallRepo(db)
	files := repository.NewFileRepo(db)
	films := repository.NewFilmRepo(db)
	filmSessions := repository.NewFilmSessionRepo(db)
	tickets := repository.NewTicketRepo(db)
	users := repository.NewUserRepo(db)

	// services
	genreSvc := service.NewGenreService(genres)
	hallSvc := service.NewHallService(halls)
	filmSvc := service.NewFilmService(films, genreSvc)
	sessionSvc := service.NewFilmSessionService(filmSessions, filmSvc, hallSvc)
	publisher := queue.NewPublisher(cfg.AMQPURL, log)
	ticketSvc := service.NewTicketService(tickets, sessionSvc, publisher, log)
	userSvc := service.NewUserService(users, cfg.BcryptCost)
	fileSvc := service.NewFileService(files, cfg.FilesDir)
	store := session.New(rdb, cfg.SessionTTL)

	renderer, err := handler.NewRenderer()
	if err != nil {
		log.Errorf("API", "templates: %v", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.LoadSession(cfg.SessionSecret, store, log))

	router.RegisterRoutes(e)
	router.RegisterPages(e, router.Handlers{
		Films:    handler.NewFilmHandler(filmSvc, sessionSvc, log),
		Sessions: handler.NewSessionHandler(sessionSvc, log),
		Tickets:  handler.NewTicketHandler(ticketSvc, sessionSvc, log),
		Users:    handler.NewUserHandler(userSvc, store, cfg.SessionSecret, cfg.SessionTTL, log),
		Files:    handler.NewFileHandler(fileSvc, log),
	}, router.Middlewares{
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, log),
		FileCache: middleware.NewFileCache(config.LoadFileCacheConfig(), rdb),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The consumer reconnects on its own; it only returns once ctx is done.
	consumer := queue.NewConsumer(cfg.AMQPURL, queue.DefaultLogPath, log)
	go func() {
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Errorf("QUEUE", "consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	go func() {
		log.Infof("SYSTEM", "listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("SYSTEM", "server: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("SYSTEM", "shutdown: %v", err)
	}
	log.Info("SYSTEM", "shutdown complete")
}

func migrate(dsn string) error {
	m, err := database.NewMigrator(dsn)
	if err != nil {
		return err
	}
	defer m.Close()
	return m.Up()
}
