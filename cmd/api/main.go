package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "loanlink-backend/internal/adapter/http"
	identityadp "loanlink-backend/internal/adapter/identity"
	mw "loanlink-backend/internal/adapter/middleware"
	paymentadp "loanlink-backend/internal/adapter/payment"
	"loanlink-backend/internal/adapter/repository/gormstore"
	"loanlink-backend/internal/config"
	"loanlink-backend/internal/domain/identity"
	"loanlink-backend/internal/infrastructure/cache"
	"loanlink-backend/internal/infrastructure/db"
	"loanlink-backend/internal/logger"
	"loanlink-backend/internal/usecase/access"
	ucApp "loanlink-backend/internal/usecase/application"
	ucOffer "loanlink-backend/internal/usecase/offer"
	ucPayment "loanlink-backend/internal/usecase/payment"
	ucUser "loanlink-backend/internal/usecase/user"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		log.Fatalf("load .env: %v", err)
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger.Initialize(cfg.LogLevel, cfg.LogFormat)
	lg := logger.WithService("loanlink-api")
	for _, w := range cfg.Warnings() {
		lg.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// store
	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN(), cfg.DBLogLevel)
	if err != nil {
		lg.Error("open database", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		lg.Error("database handle", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()
	if err := gormstore.AutoMigrate(gdb); err != nil {
		lg.Error("migrate", "error", err)
		os.Exit(1)
	}

	users := gormstore.NewUserRepository(gdb)
	offers := gormstore.NewOfferRepository(gdb)
	apps := gormstore.NewApplicationRepository(gdb)
	tx := gormstore.NewGormUoW(gdb)

	// usecases
	userUC := ucUser.NewUsecase(users)
	offerUC := ucOffer.NewUsecase(offers)
	appUC := ucApp.NewUsecase(apps, offers, tx)
	payUC := ucPayment.NewUsecase(apps, appUC, paymentadp.NewStripeGateway(cfg.StripeSecretKey, nil), ucPayment.Config{
		FeeAmountMinor: cfg.FeeCents,
		FeeCurrency:    cfg.FeeCurrency,
		ClientDomain:   cfg.ClientDomain,
	})

	if cfg.BootstrapAdminEmail != "" {
		promoted, err := userUC.BootstrapAdmin(ctx, cfg.BootstrapAdminEmail)
		if err != nil {
			lg.Error("bootstrap admin", "email", cfg.BootstrapAdminEmail, "error", err)
			os.Exit(1)
		}
		if promoted {
			lg.Info("bootstrap admin granted", "email", cfg.BootstrapAdminEmail)
		}
	}

	verifier, err := newVerifier(ctx, cfg)
	if err != nil {
		lg.Error("identity provider", "provider", cfg.AuthProvider, "error", err)
		os.Exit(1)
	}
	gate := access.NewGate(verifier, users)

	var idem echo.MiddlewareFunc
	if cfg.RedisAddr != "" {
		rdb, err := cache.OpenRedis(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			lg.Error("redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		idem = mw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, mw.CallerScope)
	} else {
		lg.Info("REDIS_ADDR not set; Idempotency-Key headers are ignored")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpadp.ErrorHandler
	e.Validator = httpadp.NewValidator()
	e.Use(
		middleware.Recover(),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     []string{cfg.CORSOrigin},
			AllowHeaders:     []string{echo.HeaderAuthorization, echo.HeaderContentType, mw.HeaderIdempotencyKey},
			AllowCredentials: true,
		}),
		middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{Timeout: cfg.RequestTimeout}),
		middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
			LogMethod:  true,
			LogURI:     true,
			LogStatus:  true,
			LogLatency: true,
			LogError:   true,
			LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
				attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
				if v.Error != nil {
					attrs = append(attrs, "error", v.Error)
				}
				lg.InfoContext(c.Request().Context(), "request", attrs...)
				return nil
			},
		}),
	)

	httpadp.RegisterRoutes(e, httpadp.Handlers{
		Health:       httpadp.NewHandler(sqlDB),
		Offers:       httpadp.NewOfferHandler(offerUC),
		Applications: httpadp.NewApplicationHandler(appUC),
		Users:        httpadp.NewUserHandler(userUC),
		Payments:     httpadp.NewPaymentHandler(payUC),
	}, gate, idem)

	go func() {
		addr := ":" + cfg.AppPort
		lg.Info("listening", "addr", addr, "db", cfg.DBDriver, "auth", cfg.AuthProvider)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		lg.Error("shutdown", "error", err)
	}
	lg.Info("bye")
}

func newVerifier(ctx context.Context, cfg *config.Config) (identity.Verifier, error) {
	switch cfg.AuthProvider {
	case config.AuthJWT:
		return identityadp.NewJWTVerifier(cfg.JWTSecret)
	default:
		return identityadp.NewFirebaseVerifier(ctx, cfg.FirebaseCredentialsFile, cfg.FirebaseProjectID)
	}
}
