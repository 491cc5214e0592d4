package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/youruser/talingchan-deck/internal/api"
	"github.com/youruser/talingchan-deck/internal/cards"
	"github.com/youruser/talingchan-deck/internal/config"
	"github.com/youruser/talingchan-deck/internal/export"
	"github.com/youruser/talingchan-deck/internal/logging"
	"github.com/youruser/talingchan-deck/internal/session"
	"github.com/youruser/talingchan-deck/internal/util"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Must(false).Fatal("failed to load config", zap.Error(err))
	}
	log, err := logging.New(cfg.Debug)
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load cards in the background; the API reports loading until done.
	src, closeSrc := cfg.CatalogSource(cfg.DataDir, log)
	defer closeSrc()
	catalog := cards.NewCatalog()
	go catalog.Load(ctx, src, log)

	sessions := session.NewStore(cfg.DeckRules(), cfg.Routing(), log)
	defer sessions.Close()

	srv := api.NewServer(
		catalog,
		sessions,
		export.NewTournamentClient(cfg.APIURL, cfg.HTTP.ExportTimeout.Duration, log),
		export.NewImageRenderer(util.NewHTTPClient(cfg.HTTP.CatalogTimeout.Duration), log),
		log,
	)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	api.RegisterRoutes(r, srv)

	httpServer := &http.Server{Addr: cfg.Listen, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn("shutdown", zap.Error(err))
		}
	}()

	log.Info("starting server", zap.String("addr", cfg.Listen), zap.String("api_url", cfg.APIURL))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server stopped", zap.Error(err))
	}
}
