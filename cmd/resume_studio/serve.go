package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/analysis"
	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/enhance"
	"github.com/jonathan/resume-studio/internal/ingest"
	"github.com/jonathan/resume-studio/internal/server"
	"github.com/jonathan/resume-studio/internal/server/ratelimit"
)

var (
	servePort       int
	serveDataFile   string
	serveUseBrowser bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for document management, ATS analysis, text enhancement, and PDF export.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on")
	serveCmd.Flags().StringVar(&serveDataFile, "data-file", "", "Path to the JSON collection file")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "browser", false, "Use headless browser for SPA job boards")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(config.Config{
		Port:       servePort,
		DataFile:   serveDataFile,
		UseBrowser: serveUseBrowser,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	client, err := newAIClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	analyzer, err := analysis.NewGeminiAnalyzer(client)
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	srv, err := server.New(server.Options{
		Port:     cfg.Port,
		Store:    st,
		Analyzer: analyzer,
		Enhancer: enhance.New(client),
		RateLimit: ratelimit.Config{
			Enabled:   !cfg.RateLimitDisabled,
			Burst:     cfg.RateLimitBurst,
			PerMinute: cfg.RateLimitPerMinute,
		},
		Ingest: ingest.Options{
			UseBrowser:     cfg.UseBrowser,
			BrowserTimeout: 30 * time.Second,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
