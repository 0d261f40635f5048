package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/pdf"
	"github.com/jonathan/resume-studio/internal/store"
)

var (
	exportID  string
	exportOut string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a stored document to PDF",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportID, "id", "", "Document ID (required)")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output path; defaults to <name>.pdf in the working directory")
	_ = exportCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(config.Config{})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	doc, err := store.Get(ctx, st, exportID)
	if err != nil {
		return err
	}

	data, err := pdf.Render(doc)
	if err != nil {
		return fmt.Errorf("PDF rendering failed: %w", err)
	}

	out := exportOut
	if out == "" {
		out = pdf.Filename(doc)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Wrote %s (%d bytes)\n", out, len(data))
	return nil
}
