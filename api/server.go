package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/lexisearch/clients/thesauri"
	"github.com/meghashyamc/lexisearch/config"
	"github.com/meghashyamc/lexisearch/db/kvdb"
	"github.com/meghashyamc/lexisearch/db/searchdb"
	"github.com/meghashyamc/lexisearch/logger"
	"github.com/meghashyamc/lexisearch/metrics"
	"github.com/meghashyamc/lexisearch/services/lexical"
	"github.com/meghashyamc/lexisearch/validation"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	cfg        *config.Config
	router     *gin.Engine
	httpServer *http.Server
	kvdb       kvdb.DB
	searchdb   searchdb.DB
	annotator  *lexical.Annotator
	validator  *validation.Validator
	logger     logger.Logger
}

func Run(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)

	defer cancel()

	s := &server{
		cfg:    cfg,
		logger: logger.New(cfg.GetLogLevel()),
	}
	if err := s.setupDependencies(); err != nil {
		s.closeDependencies()
		return err
	}
	s.setupRouter()
	s.setupHTTPServer()
	s.setupGracefulShutdown(ctx)

	return nil
}

func (s *server) setupDependencies() error {
	searchDB, err := searchdb.New(s.logger, s.cfg)
	if err != nil {
		s.logger.Error("error creating searchDB", "err", err.Error())
		return err
	}
	s.searchdb = searchDB
	if err := s.searchdb.BuildIndex(searchdb.ReferenceDocuments); err != nil {
		s.logger.Error("error indexing reference documents", "err", err.Error())
		return err
	}

	s.annotator, err = NewAnnotator(s.cfg, s.logger, func(db kvdb.DB) { s.kvdb = db })
	if err != nil {
		s.logger.Error("error creating annotator", "err", err.Error())
		return err
	}

	s.validator, err = validation.New(s.logger)
	if err != nil {
		s.logger.Error("error creating validator", "err", err.Error())
		return err
	}

	return nil

}

// NewAnnotator builds the lexical annotator described by cfg: a ThesauriUltra
// client, optionally behind the on-disk lookup cache. onCacheOpened receives
// the cache database so the caller can close it.
func NewAnnotator(cfg *config.Config, logger logger.Logger, onCacheOpened func(kvdb.DB)) (*lexical.Annotator, error) {
	client, err := thesauri.NewClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	var lookup lexical.Lookup = client
	if cfg.IsCacheEnabled() {
		cacheDB, err := kvdb.New(logger, cfg)
		if err != nil {
			return nil, fmt.Errorf("could not open lookup cache: %w", err)
		}
		if onCacheOpened != nil {
			onCacheOpened(cacheDB)
		}
		lookup = lexical.NewCachedLookup(client, cacheDB, cfg.GetCacheTTL(), metrics.LookupCacheTotal, logger)
		logger.Info("lookup cache enabled", "path", cfg.GetKVDBPath(), "ttl", cfg.GetCacheTTL().String())
	}

	return lexical.New(lookup, logger, lexical.WithPoolSize(cfg.GetLookupConcurrency()))
}

func (s *server) setupRouter() {
	router := newRouter()

	router.Use(loggingMiddleware(s.logger))
	router.Use(metrics.Middleware())

	setupRoutes(router, s.logger, s.searchdb, s.annotator, s.validator)

	s.router = router
}

func (s *server) setupHTTPServer() {

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%s", s.cfg.GetPort()),
		Handler:           s.router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpServer
	s.logger.Info("search API listening", "addr", httpServer.Addr)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()
}

func (s *server) setupGracefulShutdown(ctx context.Context) {

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		s.logger.Info("starting to shut down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("error shutting down http server", "err", err)
		}
		s.closeDependencies()
		s.logger.Info("shut down http server successfully")
	}()

	wg.Wait()
}

func (s *server) closeDependencies() {
	if s.annotator != nil {
		s.annotator.Release()
	}
	if s.kvdb != nil {
		if err := s.kvdb.Close(); err != nil {
			s.logger.Error("error closing kvDB", "err", err.Error())
		}
	}
	if s.searchdb != nil {
		if err := s.searchdb.Close(); err != nil {
			s.logger.Error("error closing searchDB", "err", err.Error())
		}
	}
}
