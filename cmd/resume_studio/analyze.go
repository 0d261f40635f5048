package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/analysis"
	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/store"
)

var analyzeID string

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a stored document against its job description",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeID, "id", "", "Document ID (required)")
	_ = analyzeCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
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

	doc, err := store.Get(ctx, st, analyzeID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(doc.JobDescription) == "" {
		return fmt.Errorf("document has no job description; add one or run ingest-job first")
	}

	client, err := newAIClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	analyzer, err := analysis.NewGeminiAnalyzer(client)
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	result, err := analyzer.Analyze(ctx, analysis.InputFromDocument(doc))
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Fprintf(os.Stdout, "ATS score: %d/100\n\n", result.Score)
	fmt.Fprintf(os.Stdout, "Feedback:\n%s\n", result.Feedback)
	if len(result.MatchingKeywords) > 0 {
		fmt.Fprintf(os.Stdout, "\nMatching keywords: %s\n", strings.Join(result.MatchingKeywords, ", "))
	}
	if len(result.MissingKeywords) > 0 {
		fmt.Fprintf(os.Stdout, "Missing keywords: %s\n", strings.Join(result.MissingKeywords, ", "))
	}
	return nil
}
