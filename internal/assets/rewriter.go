// Package assets rewrites generated pages to reference the hashed files a
// bundler produced, and copies auxiliary files into the build output.
package assets

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/roots-trade/pagesmith/internal/config"
	"github.com/roots-trade/pagesmith/internal/output"
	"github.com/roots-trade/pagesmith/internal/progress"
)

// Rewriter runs the post-bundle pass over a dist directory.
type Rewriter struct {
	BaseDir   string // project root; auxiliary sources are relative to it
	SourceDir string // where the generator wrote the pages
	DistDir   string
	AssetsDir string
	PublicDir string
	ImageDir  string
	Entry     string
	Exts      []string
	Auxiliary []config.AuxFile
	Manifest  string
	Rules     Rules
	Pages     []string

	Log      output.Logger
	Reporter progress.Reporter
	Now      func() time.Time
}

// Result summarizes a rewrite run.
type Result struct {
	Entry     EntryAssets
	Mapping   Mapping
	Rewritten []string
	Failed    []string
	Auxiliary []string
	Manifest  *Manifest
}

// NewRewriter builds a Rewriter from the site configuration.
func NewRewriter(cfg *config.Config, log output.Logger) *Rewriter {
	if log == nil {
		log = output.Discard
	}
	b := cfg.Build
	return &Rewriter{
		BaseDir:   ".",
		SourceDir: cfg.OutputDir,
		DistDir:   b.DistDir,
		AssetsDir: b.AssetsDir,
		PublicDir: b.PublicDir,
		ImageDir:  b.ImageDir,
		Entry:     b.Entry,
		Exts:      b.AssetExtensions,
		Auxiliary: b.Auxiliary,
		Manifest:  b.Manifest,
		Rules: Rules{
			ScriptSrc:   cfg.ScriptSrc,
			LogoSrc:     cfg.LogoSrc,
			ImagePrefix: "./" + path.Join(b.PublicDir, b.ImageDir) + "/",
			ImageURL:    "/" + b.ImageDir + "/",
		},
		Pages:    cfg.HTMLFiles(),
		Log:      log,
		Reporter: progress.Nop{},
		Now:      time.Now,
	}
}

// Run copies auxiliary files, reads the processed entry document, and writes
// every page into DistDir with its references rewritten. Failures on a single
// file are logged and the rest continue.
func (r *Rewriter) Run() (*Result, error) {
	if r.Log == nil {
		r.Log = output.Discard
	}
	if r.Reporter == nil {
		r.Reporter = progress.Nop{}
	}

	if err := os.MkdirAll(r.DistDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating dist dir: %w", err)
	}

	res := &Result{}

	aux, err := CopyAuxiliary(r.Auxiliary, r.BaseDir, r.DistDir, r.Log)
	if err != nil {
		r.Log.Warning("Could not copy auxiliary files: %v", err)
	}
	res.Auxiliary = aux

	res.Entry = r.extractEntry()

	m, err := BuildMapping(
		filepath.Join(r.DistDir, r.AssetsDir), "/"+r.AssetsDir,
		filepath.Join(r.BaseDir, r.PublicDir, r.ImageDir), "/"+r.ImageDir,
		r.Exts,
	)
	if err != nil {
		r.Log.Warning("Could not build image mapping: %v", err)
		m = Mapping{}
	}
	res.Mapping = m
	if len(m) > 0 {
		r.Log.Info("Mapped %d images", len(m))
	}

	r.Reporter.Start(len(r.Pages))
	for i, file := range r.Pages {
		r.Reporter.Update(i+1, file)
		if err := r.rewriteFile(file, res.Entry, m); err != nil {
			r.Log.Warning("Could not copy %s: %v", file, err)
			res.Failed = append(res.Failed, file)
			continue
		}
		r.Log.Success("Copied and updated %s to %s", file, r.DistDir)
		res.Rewritten = append(res.Rewritten, file)
	}
	r.Reporter.Finish()

	if r.Manifest != "" {
		man := NewManifest(res.Entry, m, r.now())
		man.Pages = append(man.Pages, res.Rewritten...)
		for _, a := range aux {
			man.Auxiliary = append(man.Auxiliary, filepath.Base(a))
		}
		if err := man.Write(filepath.Join(r.DistDir, r.Manifest)); err != nil {
			r.Log.Warning("%v", err)
		} else {
			res.Manifest = man
		}
	}

	return res, nil
}

// extractEntry reads hashed references from the processed entry document.
func (r *Rewriter) extractEntry() EntryAssets {
	f, err := os.Open(filepath.Join(r.DistDir, r.Entry))
	if err != nil {
		r.Log.Warning("Could not read %s to extract assets: %v", r.Entry, err)
		return EntryAssets{}
	}
	defer f.Close()

	entry, err := ExtractEntryAssets(f, logoStem(r.Rules.LogoSrc))
	if err != nil {
		r.Log.Warning("Could not extract assets from %s: %v", r.Entry, err)
		return EntryAssets{}
	}
	if !entry.HasBundle() {
		r.Log.Warning("No bundled stylesheet and script found in %s", r.Entry)
	}
	return entry
}

func (r *Rewriter) rewriteFile(file string, entry EntryAssets, m Mapping) error {
	data, err := os.ReadFile(filepath.Join(r.SourceDir, file))
	if err != nil {
		return err
	}
	html := Rewrite(string(data), entry, m, r.Rules)

	dest := filepath.Join(r.DistDir, file)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dest, []byte(html), 0o644)
}

func (r *Rewriter) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// IsHashed reports whether file looks like a bundler output name for one of
// exts, e.g. "logo.1a2b3c.png".
func IsHashed(file string, exts []string) bool {
	re, err := hashedPattern(exts)
	if err != nil {
		return false
	}
	return re.MatchString(strings.TrimSpace(file))
}
