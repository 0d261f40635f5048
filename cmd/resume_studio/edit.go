package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/analysis"
	"github.com/jonathan/resume-studio/internal/autosave"
	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/types"
)

var editID string

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit a document interactively with autosave and live ATS scoring",
	Long: `Open an interactive editing session. Edits are autosaved after a quiet
period and the document is re-scored against its job description in the
background. Commands:

  name <text>      set the personal name
  summary <text>   set the professional summary
  jd <text>        set the target job description
  jd clear         clear the job description
  show             print the document fields
  score            print the current ATS analysis
  status           print the save status
  quit             flush pending edits and exit`,
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editID, "id", "", "Document ID (required)")
	_ = editCmd.MarkFlagRequired("id")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, _ []string) error {
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

	client, err := newAIClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	analyzer, err := analysis.NewGeminiAnalyzer(client)
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	pipeline, err := autosave.New(autosave.Options{
		Store:    st,
		Analyzer: analyzer,
		Notify: func(ev autosave.Event) {
			fmt.Fprintf(os.Stderr, "Warning: %s failed: %v\n", ev.Stage, ev.Err)
		},
	})
	if err != nil {
		return err
	}
	defer pipeline.Close()

	doc, err := pipeline.Load(ctx, editID)
	if err != nil {
		return err
	}
	if cfg.ProfileName != "" {
		pipeline.SeedProfileName(&types.UserProfile{Name: cfg.ProfileName, Email: cfg.ProfileEmail})
	}

	fmt.Fprintf(os.Stdout, "Editing %q (%s)\n", doc.Name, pipeline.Status(time.Now()))
	fmt.Fprintln(os.Stdout, "Type a command, or 'quit' to save and exit.")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)
	for {
		fmt.Fprint(os.Stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		verb, rest, _ := strings.Cut(line, " ")
		rest = strings.TrimSpace(rest)

		switch verb {
		case "quit", "exit":
			if err := pipeline.Flush(ctx); err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, "Saved.")
			return nil

		case "status":
			fmt.Fprintln(os.Stdout, pipeline.Status(time.Now()))

		case "score":
			printAnalysis(pipeline.Analysis())

		case "show":
			printDocument(pipeline.Document())

		case "name":
			snapshot := pipeline.Document()
			snapshot.PersonalDetails.Name = rest
			pipeline.Update(snapshot)

		case "summary":
			snapshot := pipeline.Document()
			snapshot.Summary = rest
			pipeline.Update(snapshot)

		case "jd":
			snapshot := pipeline.Document()
			if rest == "clear" {
				snapshot.JobDescription = ""
			} else {
				snapshot.JobDescription = rest
			}
			pipeline.Update(snapshot)

		default:
			fmt.Fprintf(os.Stdout, "Unknown command %q\n", verb)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("input error: %w", err)
	}
	return pipeline.Flush(ctx)
}

func printAnalysis(a *types.AtsAnalysis) {
	if a.IsSentinel() {
		fmt.Fprintln(os.Stdout, a.Feedback)
		return
	}
	fmt.Fprintf(os.Stdout, "ATS score: %d/100\n%s\n", a.Score, a.Feedback)
	if len(a.MissingKeywords) > 0 {
		fmt.Fprintf(os.Stdout, "Missing keywords: %s\n", strings.Join(a.MissingKeywords, ", "))
	}
}

func printDocument(doc *types.ResumeDocument) {
	fmt.Fprintf(os.Stdout, "Name:    %s\n", doc.PersonalDetails.Name)
	fmt.Fprintf(os.Stdout, "Summary: %s\n", doc.Summary)
	fmt.Fprintf(os.Stdout, "Target:  %s", doc.JobPosition)
	if doc.Company != "" {
		fmt.Fprintf(os.Stdout, " at %s", doc.Company)
	}
	fmt.Fprintln(os.Stdout)
	fmt.Fprintf(os.Stdout, "Job description: %d characters\n", len(doc.JobDescription))
	fmt.Fprintf(os.Stdout, "Experience entries: %d, education: %d, skills: %d\n",
		len(doc.Experience), len(doc.Education), len(doc.Skills))
}
