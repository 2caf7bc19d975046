package cmd

import (
	"github.com/spf13/cobra"

	"github.com/roots-trade/pagesmith/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize pagesmith configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure pagesmith for your site and writes a .pagesmith.yml file with the default page set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}
		newPrinter().Success("Wrote %s with %d pages", cfgFile, len(cfg.Pages))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
