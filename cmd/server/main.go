package main

import (
	"context"
	"log"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/jsend/api/handler"
	"github.com/fastygo/jsend/internal/config"
	"github.com/fastygo/jsend/internal/middleware"
	"github.com/fastygo/jsend/internal/router"
	"github.com/fastygo/jsend/internal/services/lifecycle"
	"github.com/fastygo/jsend/pkg/httpcontext"
	"github.com/fastygo/jsend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	appCtx, stop := manager.Listen(context.Background())
	defer stop()

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)
	callbackParam := cfg.CallbackParam()

	handlers := router.Handlers{
		Health:   apiHandler.NewHealthHandler(cfg.AppName, cfg.Environment, ctxAdapter, zapLogger, callbackParam),
		Envelope: apiHandler.NewEnvelopeHandler(ctxAdapter, zapLogger, callbackParam),
	}

	var auth router.Middleware
	if cfg.JWT.Secret != "" {
		auth = middleware.JWTAuth(cfg.JWT.Secret, cfg.JWT.Issuer, zapLogger)
	} else {
		zapLogger.Warn("JWT_SECRET not set, API routes are unauthenticated")
	}
	r := router.New(handlers, auth)

	server := &fasthttp.Server{
		Handler: middleware.Chain(r.Handler,
			middleware.AccessLog(zapLogger),
			middleware.Recover(zapLogger),
		),
		ReadTimeout:        cfg.HTTP.ReadTimeout,
		WriteTimeout:       cfg.HTTP.WriteTimeout,
		IdleTimeout:        cfg.HTTP.IdleTimeout,
		MaxRequestBodySize: cfg.HTTP.MaxBodySize,
		Name:               cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started",
			zap.String("address", cfg.Address()),
			zap.Bool("jsonp", cfg.JSONP.Enabled),
		)
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
