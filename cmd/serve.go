package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roots-trade/pagesmith/internal/config"
	"github.com/roots-trade/pagesmith/internal/livereload"
	"github.com/roots-trade/pagesmith/internal/output"
	"github.com/roots-trade/pagesmith/internal/router"
	"github.com/roots-trade/pagesmith/internal/server"
	"github.com/roots-trade/pagesmith/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site locally with pretty URLs",
	Long: `Starts a local HTTP server. In dev mode (the default) pages are generated
first, served from the output directory, and regenerated when fragments,
content or the config change; open tabs reload automatically. With
--preview the rewritten build in the dist directory is served as it will be
deployed. Both modes map pretty URLs to their HTML files and answer unknown
routes with the not-found page and status 404.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Bool("preview", false, "serve the dist directory instead of the dev output")
	serveCmd.Flags().Int("port", 0, "port to listen on (defaults to server.port from config)")
	serveCmd.Flags().Bool("open", false, "open the site in a browser")
	serveCmd.Flags().Bool("no-reload", false, "disable live reload in dev mode")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	p := newPrinter()

	preview, _ := cmd.Flags().GetBool("preview")
	noReload, _ := cmd.Flags().GetBool("no-reload")
	open, _ := cmd.Flags().GetBool("open")
	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = cfg.Server.Port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	routes := router.New(cfg.Server)
	if verbose {
		routes.Log = p
	}

	srvCfg := server.Config{
		Port:      port,
		Mode:      server.Dev,
		Root:      cfg.OutputDir,
		AllowAll:  cfg.Server.AllowAllOrigins,
		AssetExts: cfg.Build.AssetExtensions,
	}

	var hub *livereload.Hub
	if preview {
		srvCfg.Mode = server.Preview
		srvCfg.Root = cfg.Build.DistDir
		if _, err := os.Stat(filepath.Join(cfg.Build.DistDir, cfg.Build.Entry)); err != nil {
			p.Warning("%s has no %s; run your bundler and `pagesmith build` first", cfg.Build.DistDir, cfg.Build.Entry)
		}
	} else {
		g := newGenerator(cfg, p)
		if _, err := g.Generate(); err != nil {
			return fmt.Errorf("generating pages: %w", err)
		}
		if _, _, err := g.WriteScript(false); err != nil {
			p.Warning("Could not write page script: %v", err)
		}

		if !noReload {
			hub = livereload.NewHub()
			w := newWatcher(cfg, g, hub, p)
			if err := w.Start(); err != nil {
				p.Warning("Live reload disabled: %v", err)
				hub = nil
			} else {
				go w.Run(ctx)
			}
		}
	}

	srv := server.New(srvCfg, routes, hub)

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	p.Success("pagesmith %s serving %s at %s", srvCfg.Mode, srvCfg.Root, srv.URL())
	p.Info("Press Ctrl+C to stop.")
	if open {
		go server.OpenBrowser(srv.URL())
	}

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}

// newWatcher watches everything a page is built from and regenerates on
// change. Config edits are reloaded so page metadata changes take effect.
func newWatcher(cfg *config.Config, g *site.Generator, hub *livereload.Hub, p *output.Printer) *livereload.Watcher {
	paths := []string{cfg.ComponentsDir, cfgFile}
	seen := map[string]bool{cfg.ComponentsDir: true, cfgFile: true}
	for _, id := range cfg.PageIDs() {
		dir := filepath.Dir(cfg.Pages[id].ContentFile)
		if dir == "." {
			// Content next to the project root: watch the file only.
			dir = cfg.Pages[id].ContentFile
		}
		if !seen[dir] {
			seen[dir] = true
			paths = append(paths, dir)
		}
	}

	var outputs []string
	for _, f := range cfg.HTMLFiles() {
		outputs = append(outputs, filepath.Join(cfg.OutputDir, f))
	}

	rebuild := func() error {
		if fresh, err := config.Load(cfgFile); err == nil && fresh.Validate() == nil {
			g.Pages = fresh.Pages
		}
		_, err := g.Generate()
		if err == nil {
			p.Success("Regenerated pages")
		}
		return err
	}

	w := livereload.NewWatcher(paths, rebuild, hub.Reload)
	w.Outputs = outputs
	w.Excludes = append(append([]string{}, livereload.DefaultExcludes...), filepath.Base(cfg.Build.DistDir))
	return w
}
