package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/LumenBytes/vidlens-cli/internal/config"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "vidlens",
	Short: "VidLens CLI: descriptive analytics over video statistics datasets",
	Long: `VidLens loads a flat CSV of video statistics (views, likes, dislikes,
comments, publish dates, categories), cleans it, and computes grouped
summaries, engagement metrics, and correlations. Results render as a
Markdown report or through a small dashboard API.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.vidlens/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: allow running commands that don't need config
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// effectiveConfig returns the loaded config, falling back to defaults when
// config loading failed earlier.
func effectiveConfig() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	return &cfgpkg.Global{
		Delimiter:           ",",
		GroupBy:             "category",
		Metric:              "views",
		TopN:                10,
		ServerPort:          "8080",
		ServerReadTimeoutS:  15,
		ServerWriteTimeoutS: 15,
		ServerIdleTimeoutS:  60,
	}
}
