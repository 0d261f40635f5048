package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/ingest"
	"github.com/jonathan/resume-studio/internal/store"
)

var (
	ingestID      string
	ingestURL     string
	ingestBrowser bool
)

var ingestJobCmd = &cobra.Command{
	Use:   "ingest-job",
	Short: "Fill a document's targeting fields from a job posting URL",
	RunE:  runIngestJob,
}

func init() {
	ingestJobCmd.Flags().StringVar(&ingestID, "id", "", "Document ID (required)")
	ingestJobCmd.Flags().StringVarP(&ingestURL, "url", "u", "", "Job posting URL (required)")
	ingestJobCmd.Flags().BoolVar(&ingestBrowser, "browser", false, "Use headless browser for SPA job boards")
	_ = ingestJobCmd.MarkFlagRequired("id")
	_ = ingestJobCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(ingestJobCmd)
}

func runIngestJob(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(config.Config{UseBrowser: ingestBrowser})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	doc, err := store.Get(ctx, st, ingestID)
	if err != nil {
		return err
	}

	posting, err := ingest.FromURL(ctx, ingestURL, ingest.Options{
		UseBrowser:     cfg.UseBrowser || ingestBrowser,
		BrowserTimeout: 30 * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to ingest job posting: %w", err)
	}

	updated := posting.Apply(doc)
	if err := store.Upsert(ctx, st, updated); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Ingested job posting into %q\n", updated.Name)
	if updated.JobPosition != "" {
		fmt.Fprintf(os.Stdout, "Position: %s\n", updated.JobPosition)
	}
	if updated.Company != "" {
		fmt.Fprintf(os.Stdout, "Company: %s\n", updated.Company)
	}
	fmt.Fprintf(os.Stdout, "Description: %d characters\n", len(updated.JobDescription))
	return nil
}
