package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"feedpoll/internal/config"
	"feedpoll/internal/handler"
	transport "feedpoll/internal/http"
	"feedpoll/internal/locale"
	"feedpoll/internal/logger"
	"feedpoll/internal/network"
	"feedpoll/internal/parser"
	"feedpoll/internal/scheduler"
	"feedpoll/internal/service"
	"feedpoll/internal/snowflake"
	"feedpoll/internal/state"
)

// @title feedpoll API
// @version 1.0.0
// @description Subscribe to RSS feeds through a CORS proxy and follow the merged post list.
// @BasePath /api
func main() {
	if err := app().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func app() *cli.App {
	defaults := config.Load()
	return &cli.App{
		Name:    config.AppName,
		Usage:   "Aggregate RSS feeds through a CORS proxy and poll them for new posts",
		Version: config.AppVersion,
		Description: `Subscribe to feeds over the HTTP API, then watch the merged post list
		grow as every subscribed feed is polled with a fixed delay.

		Flags can be set via environment variables, e.g.:

		--addr => FEEDPOLL_ADDR=:8080
		--poll-interval => FEEDPOLL_POLL_INTERVAL=5s
		`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: defaults.Addr, Usage: "HTTP listen address", EnvVars: []string{"FEEDPOLL_ADDR"}},
			&cli.StringFlag{Name: "proxy-url", Value: defaults.ProxyURL, Usage: "Base URL of the allorigins proxy", EnvVars: []string{"FEEDPOLL_PROXY_URL"}},
			&cli.StringFlag{Name: "egress-proxy", Value: defaults.EgressProxy, Usage: "Optional http or socks5 proxy for outbound requests", EnvVars: []string{"FEEDPOLL_EGRESS_PROXY"}},
			// Durations come from config.Load, which also accepts plain milliseconds.
			&cli.DurationFlag{Name: "poll-interval", Value: defaults.PollInterval, Usage: "Delay between polling cycles"},
			&cli.DurationFlag{Name: "submit-timeout", Value: defaults.SubmitTimeout, Usage: "Timeout of the fetch made when a feed is submitted"},
			&cli.IntFlag{Name: "poll-concurrency", Value: defaults.PollConcurrency, Usage: "Feeds fetched at once per cycle, 0 for no limit", EnvVars: []string{"FEEDPOLL_POLL_CONCURRENCY"}},
			&cli.IntFlag{Name: "proxy-qps", Value: defaults.ProxyQPS, Usage: "Requests per second sent to the proxy, 0 for no limit", EnvVars: []string{"FEEDPOLL_PROXY_QPS"}},
			&cli.StringFlag{Name: "locale", Value: defaults.Locale, Usage: "Default language of user-facing messages", EnvVars: []string{"FEEDPOLL_LOCALE"}},
			&cli.StringFlag{Name: "log-level", Value: defaults.LogLevel, Usage: "debug, info, warn or error", EnvVars: []string{"FEEDPOLL_LOG_LEVEL"}},
			&cli.Int64Flag{Name: "node-id", Value: defaults.NodeID, Usage: "Snowflake node of this process", EnvVars: []string{"FEEDPOLL_NODE_ID"}},
			&cli.StringFlag{Name: "static-dir", Value: defaults.StaticDir, Usage: "Directory with a client page to serve", EnvVars: []string{"FEEDPOLL_STATIC_DIR"}},
		},
		Action: func(ctx *cli.Context) error {
			return serve(config.Config{
				Addr:            ctx.String("addr"),
				ProxyURL:        ctx.String("proxy-url"),
				EgressProxy:     ctx.String("egress-proxy"),
				PollInterval:    ctx.Duration("poll-interval"),
				SubmitTimeout:   ctx.Duration("submit-timeout"),
				PollConcurrency: ctx.Int("poll-concurrency"),
				ProxyQPS:        ctx.Int("proxy-qps"),
				Locale:          ctx.String("locale"),
				LogLevel:        ctx.String("log-level"),
				NodeID:          ctx.Int64("node-id"),
				StaticDir:       ctx.String("static-dir"),
			})
		},
	}
}

func serve(cfg config.Config) error {
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	ids, err := snowflake.New(cfg.NodeID)
	if err != nil {
		return fmt.Errorf("init id generator: %w", err)
	}
	translator, err := locale.New(cfg.Locale)
	if err != nil {
		return fmt.Errorf("init locale: %w", err)
	}

	store := state.New()
	fetcher := network.NewProxyFetcher(network.NewClientFactory(cfg.EgressProxy), cfg.ProxyURL, cfg.ProxyQPS)
	feedParser := parser.New()

	feedService := service.NewFeedService(store, fetcher, feedParser, ids, cfg.SubmitTimeout)
	refreshService := service.NewRefreshService(store, fetcher, feedParser, ids, cfg.PollConcurrency)
	postService := service.NewPostService(store)
	exportService := service.NewExportService(store, selfURL(cfg.Addr))
	opmlService := service.NewOPMLService(feedService, store)

	router := transport.NewRouter(transport.Handlers{
		Feed:    handler.NewFeedHandler(feedService, translator),
		Post:    handler.NewPostHandler(postService, translator),
		State:   handler.NewStateHandler(store),
		Refresh: handler.NewRefreshHandler(refreshService, translator),
		Export:  handler.NewExportHandler(exportService, translator),
		OPML:    handler.NewOPMLHandler(opmlService, translator),
		Locale:  handler.NewLocaleHandler(translator),
	}, cfg.StaticDir)

	sched := scheduler.New(refreshService, cfg.PollInterval)
	sched.Start()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "module", "main", "action", "start", "resource", "http", "result", "ok",
			"addr", cfg.Addr, "proxy_url", cfg.ProxyURL, "locale", translator.DefaultLanguage())
		if err := router.Start(cfg.Addr); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	var serveErr error
	select {
	case <-sigCh:
		logger.Info("shutting down", "module", "main", "action", "stop", "resource", "http", "result", "ok")
	case serveErr = <-errCh:
	}

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := router.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown failed", "module", "main", "action", "stop", "resource", "http", "result", "failed", "error", err)
	}

	if serveErr != nil {
		return fmt.Errorf("start server: %w", serveErr)
	}
	return nil
}

// selfURL is the link placed in exported feeds.
func selfURL(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
