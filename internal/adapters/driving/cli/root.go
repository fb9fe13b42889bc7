// Package cli implements the medrag command-line interface. It is the
// driving adapter: commands parse flags, build services through the
// shared resource holder, and render results.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/medrag-cli/internal/config"
	"github.com/custodia-labs/medrag-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	verbose    bool
	configPath string
)

// cfg holds the loaded configuration, available to all commands after
// the persistent pre-run.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "medrag",
	Short: "Retrieval-augmented question answering over medical documents",
	Long: `medrag indexes medical documents into a local vector store and
answers questions about them using a local language model.

Documents are cleaned, tagged with medical entities, chunked, and
embedded via Ollama into Qdrant. Answers are generated from the
retrieved passages and can be scored for quality.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)

		path := configPath
		if path == "" {
			defaultPath, err := config.DefaultPath()
			if err != nil {
				return err
			}
			path = defaultPath
		}

		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Debug("Loaded configuration from %s", path)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ~/.medrag/config.toml)")
}

// Execute runs the root command.
func Execute() error {
	defer closeResources()
	return rootCmd.Execute()
}
