package cmd

import (
	"fmt"

	"github.com/roots-trade/pagesmith/internal/config"
	"github.com/roots-trade/pagesmith/internal/output"
	"github.com/roots-trade/pagesmith/internal/progress"
	"github.com/roots-trade/pagesmith/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `pagesmith init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

func newPrinter() *output.Printer {
	return output.NewPrinter(verbose)
}

// newGenerator creates a page generator that reports through p. The progress
// bar is only shown when verbose output is off, so the two do not interleave.
func newGenerator(cfg *config.Config, p *output.Printer) *site.Generator {
	g := site.NewGenerator(cfg, p)
	if !verbose {
		g.Log = quietLogger{p}
		g.Reporter = progress.NewReporter("Generating pages")
	}
	return g
}

// quietLogger keeps warnings but drops per-file chatter.
type quietLogger struct {
	p *output.Printer
}

func (q quietLogger) Info(string, ...interface{}) {}
func (q quietLogger) Success(string, ...interface{}) {}
func (q quietLogger) Warning(format string, args ...interface{}) {
	q.p.Warning(format, args...)
}
