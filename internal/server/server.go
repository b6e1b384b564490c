package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/proposalarchitect/speakerscout/config"
	"github.com/proposalarchitect/speakerscout/provider"
	"github.com/proposalarchitect/speakerscout/session"
	"github.com/proposalarchitect/speakerscout/session/inmemory"
	sessredis "github.com/proposalarchitect/speakerscout/session/redis"
	webfetch "github.com/proposalarchitect/speakerscout/tools/web_fetch"
	websearch "github.com/proposalarchitect/speakerscout/tools/web_search"
)

// Run wires the full pipeline and serves it until the listener stops.
func Run(cfg *config.Config) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"success": false, "error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	if cfg.Telemetry.Enabled {
		e.GET(cfg.Telemetry.MetricsPath, echo.WrapHandler(promhttp.Handler()))
	}

	llm, err := provider.NewProvider(provider.Client(cfg.LLM.Type), provider.Options{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		ChatModel:      cfg.LLM.ChatModel,
		EmbeddingModel: cfg.LLM.EmbeddingModel,
		Timeout:        cfg.LLM.Timeout,
	})
	if err != nil {
		return err
	}

	store, err := newSessionStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var searcher websearch.WebSearcher
	if cfg.Search.APIKey != "" {
		searcher, err = websearch.NewWebSearcher(websearch.Provider(cfg.Search.Provider), cfg.Search.APIKey)
		if err != nil {
			return err
		}
	}

	var fetcher webfetch.WebFetcher
	if cfg.Fetch.Enabled {
		fetcher, err = webfetch.NewWebFetcher(webfetch.ChromedpFetcherType, cfg.Fetch.Timeout, cfg.Fetch.MaxChars)
		if err != nil {
			return err
		}
	}

	svc := NewService(cfg, llm, store, searcher, fetcher)
	h := &ScoreHandler{Service: svc}
	h.Register(e.Group("/api"))

	return e.Start(cfg.Server.Address)
}

func newSessionStore(cfg *config.Config) (session.Store, error) {
	switch session.StoreType(cfg.Session.Backend) {
	case session.InMemoryStore:
		return inmemory.New(cfg.Session.TTL), nil
	case session.RedisStore:
		return sessredis.New(context.Background(), sessredis.Options{
			Addr:     cfg.Session.Redis.Addr,
			Password: cfg.Session.Redis.Password,
			DB:       cfg.Session.Redis.DB,
			TTL:      cfg.Session.TTL,
		})
	default:
		return nil, fmt.Errorf("unsupported session backend: %s", cfg.Session.Backend)
	}
}
