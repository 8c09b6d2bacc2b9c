package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexdrift/lexdrift/internal/corpus"
	"github.com/lexdrift/lexdrift/internal/model"
	"github.com/lexdrift/lexdrift/internal/pipeline"
)

var (
	auditJSON    string
	auditMD      string
	auditTimeout time.Duration
	llmEnabled   bool
	llmProvider  string
	llmModel     string
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit <input.json>",
	Short: "Audit a generated answer against its retrieved chunks",
	Long: `Audit reads a JSON file holding one generated answer and the
retrieved chunks its numeric markers cite:

  {"answer": "... within 14 days [2].", "chunks": ["...", "..."]}

Every marker is judged against its chunk. A cheap lexical pass decides
the clear cases; with --llm, claims it cannot decide go to a semantic
entailment provider. Claims the evidence does not support are always
reported with a reason.

Example:
  lexdrift audit answer.json
  lexdrift audit answer.json --md audit.md
  lexdrift audit answer.json --llm --llm-provider openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	// Output flags
	auditCmd.Flags().StringVar(&auditJSON, "json", "audit.json", "output JSON path")
	auditCmd.Flags().StringVar(&auditMD, "md", "", "output Markdown path (optional)")
	auditCmd.Flags().DurationVar(&auditTimeout, "timeout", 2*time.Minute, "total timeout for the audit")

	// LLM flags
	auditCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable semantic entailment for inconclusive claims")
	auditCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	auditCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default when empty)")
}

func runAudit(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		// Get API key from environment
		switch llmProvider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}

	input, err := corpus.NewLoader().LoadAuditInput(inputPath)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Auditing answer against %d chunks\n", len(input.Chunks))
		if llmEnabled {
			fmt.Fprintf(os.Stderr, "Entailment: %s/%s\n", llmProvider, llmModel)
		}
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)
	report := p.Audit(ctx, input.Answer, input.Chunks)

	if err := p.RenderAuditReport(report, auditJSON, auditMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	return nil
}
