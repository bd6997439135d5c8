package main

import (
	"context"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/betconta/betconta/cmd/betconta/cache"
	"github.com/betconta/betconta/cmd/betconta/config"
	"github.com/betconta/betconta/cmd/betconta/db"
	"github.com/betconta/betconta/cmd/betconta/models"
	"github.com/betconta/betconta/cmd/betconta/routers"
	"github.com/betconta/betconta/cmd/betconta/service"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize zap logger: %v", err)
	}
	defer func() {
		logger.Sync()
		if r := recover(); r != nil {
			logger.Fatal("unexpected application shutdown", zap.Any("panic", r))
		}
	}()

	cfg, err := config.New()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	withdrawalFee, err := decimal.NewFromString(cfg.WithdrawalFee)
	if err != nil {
		logger.Fatal("invalid withdrawal fee", zap.Error(err))
	}
	commission, err := decimal.NewFromString(cfg.ReferralCommission)
	if err != nil {
		logger.Fatal("invalid referral commission", zap.Error(err))
	}

	dbConn, err := db.Init(cfg.DatabaseURI)
	if err != nil {
		logger.Fatal("failed to connect to the database", zap.Error(err))
	}
	defer func() {
		logger.Info("closing database connection")
		dbConn.Close()
	}()

	if err := db.Migrate(dbConn); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userRepo := db.NewUserRepoPG(dbConn)
	adminRepo := db.NewAdminRepoPG(dbConn)
	txRepo := db.NewTransactionRepoPG(dbConn)
	accountRepo := db.NewAccountRepoPG(dbConn)
	qrRepo := db.NewQrCodeRepoPG(dbConn)
	affiliateRepo := db.NewAffiliateRepoPG(dbConn)

	userService := service.NewUserService(userRepo)
	adminService := service.NewAdminService(adminRepo, userRepo)
	pixClient := &service.HTTPPixClient{Client: &http.Client{}}
	paymentService := service.NewPaymentService(txRepo, userRepo, pixClient, withdrawalFee)
	accountService := service.NewAccountService(accountRepo, userRepo, commission)
	qrCodeService := service.NewQrCodeService(qrRepo)
	affiliateService := service.NewAffiliateService(affiliateRepo, userRepo)
	cepClient := service.NewCEPClient(&http.Client{}, cfg.CEPBaseURL, cache.New[models.Address](cfg.CEPCacheTTL))

	if err := adminService.EnsureAdmin(ctx, cfg.AdminLogin, cfg.AdminPassword); err != nil {
		logger.Fatal("failed to bootstrap admin account", zap.Error(err))
	}

	h := routers.NewHandler(
		userService,
		adminService,
		paymentService,
		accountService,
		qrCodeService,
		affiliateService,
		cepClient,
		routers.HandlerConfig{
			Secret:          []byte(cfg.JWTSecret),
			SessionTTL:      cfg.SessionTTL,
			SessionCacheTTL: cfg.SessionCacheTTL,
		},
		logger,
	)
	r := routers.SetupRoutersWithLogger(h, logger)

	if cfg.PixProviderAddress != "" {
		paymentService.StartSettlementWorker(ctx, cfg.PixProviderAddress, cfg.PixPollInterval, logger)
	}

	logger.Info("server started", zap.String("address", cfg.RunAddress))
	if err := http.ListenAndServe(cfg.RunAddress, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
