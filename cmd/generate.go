package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Assemble every configured page from fragments and content",
	Long: `Reads the shared head, header and footer fragments from the components
directory, fills in each page's placeholders and content, and writes one
HTML file per configured page into the output directory. The page script
is written next to them unless it already exists.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Bool("no-script", false, "do not write the page script")
	generateCmd.Flags().Bool("force-script", false, "overwrite an existing page script")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p := newPrinter()
	p.Header("Generating pages")

	g := newGenerator(cfg, p)
	n, err := g.Generate()
	if err != nil {
		return fmt.Errorf("generating pages: %w", err)
	}

	noScript, _ := cmd.Flags().GetBool("no-script")
	force, _ := cmd.Flags().GetBool("force-script")
	if !noScript {
		dest, wrote, err := g.WriteScript(force)
		if err != nil {
			p.Warning("Could not write page script: %v", err)
		} else if wrote {
			p.Success("Wrote %s", dest)
		} else {
			p.Debug("Kept existing %s", dest)
		}
	}

	p.Success("Generated %d of %d pages in %s (%s)", n, len(cfg.Pages), cfg.OutputDir, time.Since(start).Round(time.Millisecond))
	return nil
}
