package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roots-trade/pagesmith/internal/assets"
	"github.com/roots-trade/pagesmith/internal/progress"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Rewrite generated pages to use the bundler's hashed assets",
	Long: `Runs after the bundler has written its output. Copies the auxiliary files
into the dist directory, reads the processed entry page to find the hashed
stylesheet, script and logo, and writes every generated page into dist with
its asset references rewritten.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().Bool("generate", false, "regenerate pages before rewriting")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	start := time.Now()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p := newPrinter()

	if gen, _ := cmd.Flags().GetBool("generate"); gen {
		p.Header("Generating pages")
		if _, err := newGenerator(cfg, p).Generate(); err != nil {
			return fmt.Errorf("generating pages: %w", err)
		}
	}

	p.Header("Rewriting assets")
	r := assets.NewRewriter(cfg, p)
	if !verbose {
		r.Log = quietLogger{p}
		r.Reporter = progress.NewReporter("Rewriting pages")
	}

	res, err := r.Run()
	if err != nil {
		return fmt.Errorf("rewriting assets: %w", err)
	}

	if res.Entry.HasBundle() {
		p.Info("Stylesheet: %s", res.Entry.Stylesheet)
		p.Info("Script:     %s", res.Entry.Script)
	}
	if res.Entry.Logo != "" {
		p.Info("Logo:       %s", res.Entry.Logo)
	}
	if len(res.Mapping) > 0 {
		p.Info("Images:     %d mapped", len(res.Mapping))
	}
	if res.Manifest != nil {
		p.Debug("Build ID:   %s", res.Manifest.BuildID)
	}
	for _, f := range res.Failed {
		p.Error("Not written: %s", f)
	}

	p.Success("Wrote %d pages to %s (%s)", len(res.Rewritten), cfg.Build.DistDir, time.Since(start).Round(time.Millisecond))
	return nil
}
