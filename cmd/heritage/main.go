// Package main provides the heritage binary entry point.
// Heritage is a semantic provenance graph service for cultural heritage
// collections: it ingests EDM harvests, answers pattern queries, and
// serializes the graph in standard RDF formats.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arp-greatteam/heritage-provenance/config"
	"github.com/arp-greatteam/heritage-provenance/store"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "heritage"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Cultural heritage provenance graph",
		Long: `Heritage maintains an in-memory provenance graph of cultural
heritage collections.

It provides:
- EDM harvest ingestion with session-scoped entity deduplication
- Pattern queries over artworks, artists, locations, and events
- RDF serialization (Turtle, N-Triples, RDF/XML, JSON-LD)

Committed entities are optionally published to a knowledge graph stream
over NATS.`,
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(serveCmd(&logLevel))
	cmd.AddCommand(importCmd(&logLevel))
	cmd.AddCommand(exportCmd(&logLevel))
	cmd.AddCommand(statsCmd(&logLevel))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

// setup configures logging and loads layered configuration.
func setup(logLevel string) (*config.Config, *slog.Logger, error) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.NewLoader(logger).Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, logger, nil
}

func serveCmd(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Load snapshots and serve the graph",
		Long: `Serve loads every RDF snapshot from the data directory, watches it
for changes, and keeps the graph resident until interrupted. With a
metrics address configured it also exposes Prometheus metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*logLevel)
			if err != nil {
				return err
			}
			app, err := NewApp(cfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()
			return app.Serve(cmd.Context())
		},
	}
}

func importCmd(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <url>",
		Short: "Import an EDM harvest document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*logLevel)
			if err != nil {
				return err
			}
			app, err := NewApp(cfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()

			summary, err := app.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("imported %d records, %d errored\n", summary.Imported, summary.Errored)
			for _, sample := range summary.ErrorSample {
				fmt.Printf("  error: %s\n", sample)
			}
			return nil
		},
	}
}

func exportCmd(logLevel *string) *cobra.Command {
	var formatName string

	cmd := &cobra.Command{
		Use:   "export [path]",
		Short: "Serialize the graph to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*logLevel)
			if err != nil {
				return err
			}
			app, err := NewApp(cfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()
			app.LoadSnapshots()

			name := formatName
			if name == "" {
				name = cfg.Store.ExportFormat
			}
			format, err := store.ParseFormat(name)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return app.Store().Serialize(os.Stdout, format)
			}
			return app.Store().SerializeFile(args[0], format)
		},
	}
	cmd.Flags().StringVarP(&formatName, "format", "f", "", "Serialization format (turtle, ntriples, rdfxml, jsonld)")
	return cmd
}

func statsCmd(logLevel *string) *cobra.Command {
	var topN int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print graph statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*logLevel)
			if err != nil {
				return err
			}
			app, err := NewApp(cfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()
			app.LoadSnapshots()

			report, err := app.Stats(topN)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().IntVar(&topN, "top", 10, "Rows in top-artist and top-location tables")
	return cmd
}
