package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"

	"github.com/jimiolaniyan/socialmedia"
	"github.com/jimiolaniyan/socialmedia/auth"
	"github.com/jimiolaniyan/socialmedia/config"
	"github.com/jimiolaniyan/socialmedia/logger"
	"github.com/jimiolaniyan/socialmedia/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.WithError(err).Fatal("invalid logging configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	s, err := openStore(ctx, cfg)
	cancel()
	if err != nil {
		log.WithError(err).WithField("driver", cfg.StoreDriver).Fatal("could not open store")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(s),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.WithFields(log.Fields{"port": cfg.Port, "driver": cfg.StoreDriver}).Info("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel = context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
	if err := s.close(ctx); err != nil {
		log.WithError(err).Error("error closing store")
	}
	log.Info("server stopped")
}

func newRouter(s *store) http.Handler {
	recorder := metrics.Recorder{}
	accounts := auth.NewService(s.accounts, recorder)
	messages := socialmedia.NewService(s.messages, s.accounts, recorder)

	router := httprouter.New()
	auth.RegisterRoutes(router, accounts)
	socialmedia.RegisterRoutes(router, messages)
	router.Handler(http.MethodGet, "/metrics", metrics.Handler())
	router.HandlerFunc(http.MethodGet, "/healthz", handleHealth)
	router.Handler(http.MethodGet, "/readyz", readyHandler(s.ping))

	return metrics.InstrumentHandler(logger.Middleware(router))
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func readyHandler(ping func(ctx context.Context) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()

		if err := ping(ctx); err != nil {
			logger.FromContext(r.Context()).WithError(err).Warn("store not ready")
			http.Error(w, "store not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
}
