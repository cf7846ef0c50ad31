// CLAUDE:SUMMARY CLI entry point for domdrive — MCP stdio server over a managed Chrome, optional HTTP surface.
// Command domdrive exposes schema-driven browser control over MCP stdio.
//
// Usage:
//
//	domdrive                               # MCP stdio server, blank browser
//	domdrive -url https://example.com      # open and activate a page first
//	domdrive -config domdrive.yaml         # full configuration
//	domdrive -http :8086                   # also serve the HTTP surface
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/domdrive/actions"
	"github.com/hazyhaar/domdrive/browser"
	"github.com/hazyhaar/domdrive/internal/config"
	"github.com/hazyhaar/domdrive/shield"
	"github.com/hazyhaar/domdrive/snapshot"
	"github.com/hazyhaar/domdrive/surface"
)

func main() {
	configPath := flag.String("config", "", "path to domdrive.yaml config file")
	startURL := flag.String("url", "", "open this URL at startup")
	httpAddr := flag.String("http", "", "serve the HTTP surface on this address (overrides config)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	// stdout carries the MCP stream; logs go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *configPath, *startURL, *httpAddr); err != nil {
		logger.Error("domdrive: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, configPath, startURL, httpAddr string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if startURL != "" {
		cfg.StartURL = startURL
	}
	if httpAddr != "" {
		cfg.HTTP.Addr = httpAddr
	}

	reg := surface.NewRegistry()

	stealth := browser.LevelHeadless
	if cfg.Browser.Stealth == "headful" {
		stealth = browser.LevelHeadful
	}
	mgr := browser.NewManager(browser.Config{
		RemoteURL:        cfg.Browser.Remote,
		MemoryLimit:      cfg.Browser.MemoryLimit,
		RecycleInterval:  cfg.Browser.RecycleInterval,
		ResourceBlocking: cfg.Browser.ResourceBlocking,
		Stealth:          stealth,
		XvfbDisplay:      cfg.Browser.XvfbDisplay,
		XvfbGeometry:     cfg.Browser.XvfbGeometry,
		Logger:           logger,
	}, reg)
	if _, err := mgr.Start(ctx); err != nil {
		return err
	}
	defer mgr.Close()

	if cfg.StartURL != "" {
		if _, err := mgr.OpenTab(ctx, cfg.StartURL); err != nil {
			logger.Warn("domdrive: start url", "url", cfg.StartURL, "error", err)
		}
	}

	snap := snapshot.New(reg, snapshot.Config{
		SnippetLimit:  cfg.Snapshot.SnippetLimit,
		MarkdownLimit: cfg.Snapshot.MarkdownLimit,
		Logger:        logger,
	})
	exec := actions.New(reg, snap, actions.Config{
		NavigateSettle:    cfg.Executor.NavigateSettle,
		ClickSettle:       cfg.Executor.ClickSettle,
		TypeSettle:        cfg.Executor.TypeSettle,
		PollInterval:      cfg.Executor.PollInterval,
		ExtraRiskKeywords: cfg.Executor.ExtraRiskKeywords,
		Logger:            logger,
	})

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    "domdrive",
		Version: "1.0.0",
	}, nil)
	snap.RegisterMCP(srv)
	exec.RegisterMCP(srv)
	registerOpenTool(srv, mgr, logger)

	if cfg.HTTP.Addr != "" {
		httpSrv := newHTTPServer(cfg, snap, exec)
		go func() {
			logger.Info("domdrive: http listening", "addr", cfg.HTTP.Addr)
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("domdrive: http", "error", err)
			}
		}()
		defer func() {
			shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			httpSrv.Shutdown(shutCtx)
		}()
	}

	logger.Info("domdrive: mcp serving on stdio")
	return srv.Run(ctx, &mcp.StdioTransport{})
}

func newHTTPServer(cfg *config.Config, snap *snapshot.Service, exec *actions.Executor) *http.Server {
	r := chi.NewRouter()
	r.Use(shield.SecurityHeaders(shield.DefaultHeaders()))
	r.Use(shield.RequestID)
	r.Use(shield.MaxJSONBody(cfg.HTTP.MaxBodyBytes))
	r.Use(shield.BasicAuth(cfg.HTTP.AuthPasswordHash))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	snap.RegisterHTTP(r)
	exec.RegisterHTTP(r)

	return &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
