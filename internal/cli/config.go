package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/lexdrift/lexdrift/internal/model"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage lexdrift configuration",
	Long: `Manage lexdrift configuration.

Settings resolve in priority order: CLI flags, LEXDRIFT_* environment
variables, ~/.lexdrift/config.yaml, built-in defaults.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if file := viper.ConfigFileUsed(); file != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", file)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		data, err := yaml.Marshal(model.DefaultConfig())
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		fmt.Print(string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file to ~/.lexdrift/config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("find home directory: %w", err)
		}
		dir := filepath.Join(home, ".lexdrift")
		path := filepath.Join(dir, "config.yaml")

		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists: %s (delete it first to recreate)", path)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}

		data, err := yaml.Marshal(model.DefaultConfig())
		if err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
		header := "# lexdrift configuration. Flags and LEXDRIFT_* environment variables\n" +
			"# override anything set here. API keys are read from the environment\n" +
			"# only: OPENAI_API_KEY, ANTHROPIC_API_KEY, OLLAMA_BASE_URL.\n\n"
		if err := os.WriteFile(path, append([]byte(header), data...), 0o644); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}

		fmt.Printf("✓ Created %s\n", path)
		fmt.Println("Edit it directly, or inspect the result with 'lexdrift config show'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
