package cmd

import (
	"github.com/spf13/cobra"

	"github.com/roots-trade/pagesmith/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pagesmith",
	Short: "Static page generator and asset rewriter for small marketing sites",
	Long: `pagesmith assembles the pages of a small static site from shared HTML
fragments and per-page content, rewrites the pages to point at the hashed
files a bundler produced, and serves the result locally with pretty URLs
and live reload.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
