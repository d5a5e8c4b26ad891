package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/freight-cli/internal/config"
)

var cfg *config.Config

var (
	outFormat string
	outFile   string
)

var rootCmd = &cobra.Command{
	Use:   "freight-cli",
	Short: "AI-assisted freight data: facilities, rate sheets and local charges",
	Long: "Fans region-scoped prompts out to a generative model, normalizes the JSON it returns into " +
		"facility lists, sea and air rate sheets and local-charge tables, and grounds results on a map.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&outFormat, "out", "json", "output format: json, xlsx or geojson")
	rootCmd.PersistentFlags().StringVarP(&outFile, "output", "o", "", "write output to this file instead of stdout")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
