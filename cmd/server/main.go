package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/willtroppe/callrep/cmd/bootstrap"
	handlers "github.com/willtroppe/callrep/internal/handler"
	"github.com/willtroppe/callrep/pkg/config"
	"github.com/willtroppe/callrep/pkg/logger"
	"github.com/willtroppe/callrep/pkg/middleware"
	"github.com/willtroppe/callrep/pkg/utils"
)

type CallRepApp struct {
	db       *gorm.DB
	handlers *handlers.Handlers
}

func NewCallRepApp(db *gorm.DB) *CallRepApp {
	return &CallRepApp{
		db:       db,
		handlers: handlers.NewHandlers(db),
	}
}

func (app *CallRepApp) RegisterRoutes(r *gin.Engine) {
	app.handlers.Register(r)
}

func main() {
	// 1. Parse Command Line Parameters
	mode := flag.String("mode", "", "running environment (development, test, production)")
	initSQL := flag.String("init-sql", "", "path to database init .sql script (optional)")
	flag.Parse()

	// 2. Set Environment Variables
	if *mode != "" {
		os.Setenv("APP_ENV", *mode)
	}

	// 3. Load Global Configuration
	if err := config.Load(); err != nil {
		panic("config load failed: " + err.Error())
	}

	// 4. Load Log Configuration
	if err := logger.Init(&config.GlobalConfig.Log, config.GlobalConfig.Mode); err != nil {
		panic(err)
	}
	defer logger.Sync()

	// 5. Print Configuration
	bootstrap.LogConfigInfo()

	// 6. Load Data Source
	db, err := bootstrap.SetupDatabase(os.Stdout, &bootstrap.Options{
		InitSQLPath: *initSQL,
		AutoMigrate: true,
		SeedNonProd: os.Getenv("APP_ENV") != "production",
	})
	if err != nil {
		logger.Error("database setup failed", zap.Error(err))
		return
	}

	// 7. New App
	app := NewCallRepApp(db)

	// 8. Initialize Gin Routing
	if config.GlobalConfig.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// Disable automatic redirects to avoid CORS issues caused by 307 redirects
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false

	// 9. Use Middleware
	// Cookie Register
	if secret := config.GlobalConfig.SessionSecret; secret != "" {
		r.Use(middleware.WithCookieSession(secret, config.GlobalConfig.SessionMaxAge))
	} else {
		r.Use(middleware.WithMemSession(utils.RandText(32)))
	}

	// Cors Handle Middleware
	r.Use(middleware.CorsMiddleware())

	// Logger Handle Middleware
	r.Use(middleware.LoggerMiddleware(zap.L()))

	// 10. Register Routes
	app.RegisterRoutes(r)

	// 11. Start HTTP Server
	addr := config.GlobalConfig.Addr
	if addr == "" {
		addr = ":8080"
	}
	httpServer := &http.Server{
		Addr:           addr,
		Handler:        r,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB
	}

	logger.Info("Starting HTTP server", zap.String("addr", addr))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("HTTP server run failed", zap.Error(err))
	}
}
