package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TheReasonWePlay/FTVN-sub001/apperrors"
	"github.com/TheReasonWePlay/FTVN-sub001/config"
	"github.com/TheReasonWePlay/FTVN-sub001/db"
	"github.com/TheReasonWePlay/FTVN-sub001/logger"
	"github.com/TheReasonWePlay/FTVN-sub001/session"
	"github.com/TheReasonWePlay/FTVN-sub001/worker"
)

// Ctx and H shorten handler signatures.
type Ctx = gin.Context
type H = gin.H

// App aggregates the process-wide dependencies.
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Repo   *db.Repo
	Pool   *worker.Pool
	Config *config.Config

	appSess *session.AppSessionStore
}

func (a *App) AppSessions() *session.AppSessionStore { return a.appSess }

// New connects the database and redis, optionally migrates, and builds the router.
func New(ctx context.Context, cfg *config.Config) (_ *App, err error) {
	var undo cleanups
	defer func() {
		if err != nil {
			undo.run()
		}
	}()

	dbConn, err := db.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	undo.add(func() { db.Close(dbConn) })

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(dbConn); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	undo.add(func() { _ = rdb.Close() })
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	pool, err := worker.New("dashboard", cfg.Worker.DashboardPoolSize)
	if err != nil {
		return nil, err
	}

	a := &App{
		Router:  NewRouter(cfg.Server),
		DB:      dbConn,
		RDB:     rdb,
		Repo:    db.NewRepo(dbConn),
		Pool:    pool,
		Config:  cfg,
		appSess: session.NewAppSessionStore(rdb, cfg.Session.TTL),
	}

	if err := BootstrapFirstAdmin(ctx, cfg.Bootstrap, a.Repo); err != nil {
		logger.Error("bootstrap admin failed", zap.Error(err))
	}
	return a, nil
}

// NewRouter builds the engine with the global middleware chain.
func NewRouter(cfg config.ServerConfig) *gin.Engine {
	if cfg.Development() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	useCORS(r, cfg.AllowedOrigins)
	r.Use(gin.Recovery(), RequestID(), RequestLogger(), ErrorHandler(cfg.Development()))

	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperrors.NotFound("route %s %s not found", c.Request.Method, c.Request.URL.Path))
	})
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, H{"ok": true}) })
	return r
}

// cleanups undoes partially built state, last acquired first.
type cleanups []func()

func (c *cleanups) add(f func()) { *c = append(*c, f) }

func (c cleanups) run() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

// Close releases the pool, redis and the database handle.
func (a *App) Close() {
	a.Pool.Release(a.Config.Server.ShutdownTimeout)
	_ = a.RDB.Close()
	db.Close(a.DB)
}
