package main

import (
	"cmp"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/paperdesk/portfolio-sync/internal/config"
	"github.com/paperdesk/portfolio-sync/internal/logger"
	"github.com/paperdesk/portfolio-sync/internal/model"
	"github.com/paperdesk/portfolio-sync/internal/postgres"
	"github.com/paperdesk/portfolio-sync/internal/pricecache"
	"github.com/paperdesk/portfolio-sync/internal/scheduler"
	"github.com/paperdesk/portfolio-sync/internal/server"
	"github.com/paperdesk/portfolio-sync/internal/settings"
	"github.com/paperdesk/portfolio-sync/internal/snapshot"
	"github.com/paperdesk/portfolio-sync/internal/statement"
	"github.com/paperdesk/portfolio-sync/internal/trading"
)

const (
	_cfgFilePath = "./configs/sync.yaml"
	_userID      = "default"
)

func main() {
	zapLogger, loggerSync, err := logger.NewZapLogger(logger.Debug)
	if err != nil {
		log.Fatalf("%s: can't init logger", err)
	}
	defer loggerSync()

	if err := godotenv.Load(); err != nil {
		zapLogger.Warnf("can't detect .env file")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.LoadConfig(_cfgFilePath)
	if err != nil {
		zapLogger.Fatalf("%s: can't load cfg", err)
	}

	db, err := postgres.NewDB(postgres.NewConfigFromEnv().Setup())
	if err != nil {
		zapLogger.Fatalf("%s: can't connect to postgres", err)
	}
	defer db.Close()

	store := settings.NewStore(db, zapLogger)
	userSettings, err := store.Load(ctx, _userID)
	if err != nil {
		zapLogger.Fatalf("%s: can't load user settings", err)
	}
	if userSettings.DisplayCurrency == "" {
		userSettings.DisplayCurrency = cfg.Display.Currency
	}

	sessionToken := cmp.Or(os.Getenv("ENGINE_SESSION_TOKEN"), userSettings.SessionToken)
	if sessionToken != userSettings.SessionToken {
		userSettings.SessionToken = sessionToken
		if err := store.Save(ctx, userSettings); err != nil {
			zapLogger.Warnf("%s: can't persist session token", err)
		}
	}

	client := trading.NewClient(cfg.Engine, sessionToken, zapLogger)

	pairs, err := client.ListPairs(ctx)
	if err != nil {
		zapLogger.Fatalf("%s: can't load trading pairs catalog", err)
	}
	catalog := model.NewCatalog(pairs)
	zapLogger.Infof("loaded %d trading pairs", catalog.Len())

	prices := pricecache.NewCache(client, zapLogger)
	snapshots := snapshot.NewHolder(client, zapLogger)
	statements := statement.NewService(client, snapshots, zapLogger)

	priceSched := scheduler.New("prices", cfg.Sync.PriceInterval, func(ctx context.Context) error {
		var errs []error
		for _, pair := range pairs {
			if !pair.IsActive {
				continue
			}
			if _, err := prices.Refresh(ctx, pair); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}, zapLogger)

	portfolioSched := scheduler.New("portfolio", cfg.Sync.PortfolioInterval, func(ctx context.Context) error {
		_, err := snapshots.Refresh(ctx)
		return err
	}, zapLogger)

	if err := priceSched.Start(ctx); err != nil {
		zapLogger.Fatalf("%s: can't start price scheduler", err)
	}
	if err := portfolioSched.Start(ctx); err != nil {
		zapLogger.Fatalf("%s: can't start portfolio scheduler", err)
	}
	defer func() {
		priceSched.Stop()
		portfolioSched.Stop()
		prices.Close()
		snapshots.Close()
	}()

	handler := server.NewHandler(
		func() model.Catalog { return catalog },
		prices,
		snapshots,
		statements,
		client,
		store,
		portfolioSched,
		zapLogger,
	)

	srv := server.NewHTTPServer(ctx, cfg.Server.Port, handler.Routes())
	zapLogger.Infof("serving dashboard api on :%s", cfg.Server.Port)

	if err := srv.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zapLogger.Errorf("%s: server stopped", err)
	}
}
