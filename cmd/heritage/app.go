package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/c360studio/semstreams/natsclient"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/arp-greatteam/heritage-provenance/config"
	"github.com/arp-greatteam/heritage-provenance/graph"
	"github.com/arp-greatteam/heritage-provenance/importer"
	"github.com/arp-greatteam/heritage-provenance/query"
	"github.com/arp-greatteam/heritage-provenance/store"
)

// App wires the graph store, ingestion, and query surfaces together for the
// CLI commands.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	store      *store.Store
	queries    *query.Service
	natsClient *natsclient.Client
	publisher  *graph.Publisher
}

// NewApp creates the application. A configured NATS URL connects the graph
// publisher; without one, ingestion stays local.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{
		cfg:    cfg,
		logger: logger,
		store:  store.New(logger),
	}
	app.queries = query.New(app.store, logger)

	if cfg.NATS.URL != "" {
		client, err := connectNATS(cfg.NATS.URL, logger)
		if err != nil {
			return nil, err
		}
		app.natsClient = client
	}
	app.publisher = graph.NewPublisher(app.natsClient, logger)
	return app, nil
}

// Store exposes the underlying graph store.
func (a *App) Store() *store.Store { return a.store }

// LoadSnapshots loads every snapshot file from the data directory. A missing
// directory is fine; the graph just starts empty.
func (a *App) LoadSnapshots() {
	loaded := a.store.LoadDir(a.cfg.Store.DataDir)
	a.logger.Info("snapshots loaded", "dir", a.cfg.Store.DataDir, "files", loaded, "statements", a.store.Len())
}

// Serve loads the snapshots, starts the directory watcher and the metrics
// endpoint, and blocks until the context is canceled or a signal arrives.
func (a *App) Serve(ctx context.Context) error {
	a.LoadSnapshots()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if a.cfg.Store.WatchEnabled() {
		watcher, err := store.NewWatcher(a.store, a.cfg.Store.DataDir, a.logger)
		if err != nil {
			a.logger.Warn("snapshot watching disabled", "error", err)
		} else {
			go watcher.Run(ctx)
		}
	}

	var metricsServer *http.Server
	if addr := a.cfg.Metrics.Addr; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{Addr: addr, Handler: mux}
		go func() {
			a.logger.Info("metrics endpoint listening", "addr", addr)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				a.logger.Error("metrics endpoint failed", "error", err)
			}
		}()
	}

	a.logger.Info("heritage ready", "version", Version, "statements", a.store.Len())
	<-ctx.Done()

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}
	a.logger.Info("shutting down")
	return nil
}

// Import runs one ingestion session against the given harvest URL.
func (a *App) Import(ctx context.Context, url string) (*importer.Summary, error) {
	fetcher := importer.NewFetcher(a.cfg.Import.Timeout, a.cfg.Import.MaxContentSize)
	imp := importer.New(a.store, fetcher, a.publisher, a.logger)
	return imp.ImportURL(ctx, url)
}

// StatsReport aggregates the stats command's output.
type StatsReport struct {
	Overview     *query.Statistics       `json:"overview"`
	ByType       []query.TypeCount       `json:"by_type"`
	TopArtists   []query.ArtistSummary   `json:"top_artists"`
	TopLocations []query.LocationSummary `json:"top_locations"`
}

// Stats builds the aggregate statistics report.
func (a *App) Stats(topN int) (*StatsReport, error) {
	overview, err := a.queries.Overview()
	if err != nil {
		return nil, err
	}
	byType, err := a.queries.ByType()
	if err != nil {
		return nil, err
	}
	topArtists, err := a.queries.TopArtists(topN)
	if err != nil {
		return nil, err
	}
	topLocations, err := a.queries.TopLocations(topN)
	if err != nil {
		return nil, err
	}
	return &StatsReport{
		Overview:     overview,
		ByType:       byType,
		TopArtists:   topArtists,
		TopLocations: topLocations,
	}, nil
}

// Close releases held connections.
func (a *App) Close() {
	if a.natsClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.natsClient.Close(ctx)
	}
}

func connectNATS(url string, logger *slog.Logger) (*natsclient.Client, error) {
	if envURL := os.Getenv("NATS_URL"); envURL != "" {
		url = envURL
	}
	logger.Info("Connecting to NATS", "url", url)

	client, err := natsclient.NewClient(url,
		natsclient.WithName(appName),
		natsclient.WithMaxReconnects(-1),
		natsclient.WithReconnectWait(time.Second),
		natsclient.WithHealthInterval(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create NATS client: %w", err)
	}

	ctx := context.Background()
	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("NATS connection failed: %w", err)
	}
	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.WaitForConnection(connCtx); err != nil {
		return nil, fmt.Errorf("NATS connection failed: %w", err)
	}

	logger.Info("Connected to NATS", "url", url)
	return client, nil
}
