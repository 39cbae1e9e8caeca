package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	redisclient "github.com/ngocanhdo/engkids-backend/internal/clients/redis"
	"github.com/ngocanhdo/engkids-backend/internal/db"
	"github.com/ngocanhdo/engkids-backend/internal/platform/logger"
	"github.com/ngocanhdo/engkids-backend/internal/platform/media"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Media    media.Store
	Sessions redisclient.SessionStore
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	dbService, err := db.NewService(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("database automigrate: %w", err)
	}
	theDB := dbService.DB()

	if cfg.SeedOnBoot {
		if err := db.SeedStarterContent(log, theDB); err != nil {
			log.Warn("starter content seed failed", "error", err)
		}
	}

	sessions, err := redisclient.NewSessionStore(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init session store: %w", err)
	}

	reposet := wireRepos(theDB, log)

	serviceset, store, err := wireServices(ctx, theDB, log, cfg, reposet, sessions)
	if err != nil {
		sessions.Close()
		log.Sync()
		return nil, err
	}

	handlerset := wireHandlers(serviceset)
	mw := wireMiddleware(log, serviceset)
	router := wireRouter(log, cfg, handlerset, mw)

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		Media:    store,
		Sessions: sessions,
	}, nil
}

func (a *App) Run() error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Router.Run(a.Cfg.HTTPAddr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Sessions != nil {
		if err := a.Sessions.Close(); err != nil && a.Log != nil {
			a.Log.Warn("session store close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
