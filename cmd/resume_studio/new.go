package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/store"
	"github.com/jonathan/resume-studio/internal/types"
)

var newName string

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new resume document",
	RunE:  runNew,
}

func init() {
	newCmd.Flags().StringVar(&newName, "name", "", "Document name (required)")
	_ = newCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, _ []string) error {
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

	doc := types.NewDocument(newName)
	if err := store.Upsert(ctx, st, doc); err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Created document %q\n", doc.Name)
	fmt.Fprintf(os.Stdout, "ID: %s\n", doc.ID)
	return nil
}
