package site

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/yuin/goldmark"

	"github.com/roots-trade/pagesmith/internal/config"
	"github.com/roots-trade/pagesmith/internal/output"
	"github.com/roots-trade/pagesmith/internal/progress"
)

// ErrFragmentMissing is returned when a shared fragment cannot be found.
// Every page depends on the shared fragments, so it aborts the whole run.
var ErrFragmentMissing = errors.New("shared fragment missing")

// Shared fragment names, read from <ComponentsDir>/<name>.html.
const (
	FragmentHead   = "head"
	FragmentHeader = "header"
	FragmentFooter = "footer"
)

// Fragments holds the shared HTML blocks every page is assembled from.
type Fragments struct {
	Head   string
	Header string
	Footer string
}

// Generator assembles the configured pages from fragments and content files.
type Generator struct {
	ComponentsDir string
	ContentDir    string // base directory for page content files
	OutputDir     string
	Lang          string
	LogoSrc       string
	ScriptSrc     string
	Pages         map[string]config.PageConfig

	Log      output.Logger
	Reporter progress.Reporter
	Now      func() time.Time

	md   goldmark.Markdown
	tmpl *template.Template
}

// NewGenerator creates a Generator from the site configuration.
func NewGenerator(cfg *config.Config, log output.Logger) *Generator {
	if log == nil {
		log = output.Discard
	}
	return &Generator{
		ComponentsDir: cfg.ComponentsDir,
		ContentDir:    ".",
		OutputDir:     cfg.OutputDir,
		Lang:          cfg.Lang,
		LogoSrc:       cfg.LogoSrc,
		ScriptSrc:     cfg.ScriptSrc,
		Pages:         cfg.Pages,
		Log:           log,
		Reporter:      progress.Nop{},
		Now:           time.Now,
	}
}

// pageData holds the data passed to the document template for each page.
type pageData struct {
	Lang           string
	Head           string
	StructuredData string
	Main           string
	Footer         string
	Header         string
	ScriptSrc      string
	PlainText      bool
}

// Generate writes one HTML file per configured page and returns the number
// of pages written. A missing shared fragment aborts before anything is
// written. Failures on a single page are logged and the remaining pages are
// still generated.
func (g *Generator) Generate() (int, error) {
	if g.Log == nil {
		g.Log = output.Discard
	}
	if g.Reporter == nil {
		g.Reporter = progress.Nop{}
	}

	frags, err := g.LoadFragments()
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(g.OutputDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating output dir: %w", err)
	}

	ids := g.pageIDs()
	g.Reporter.Start(len(ids))
	defer g.Reporter.Finish()

	written := 0
	for i, id := range ids {
		g.Reporter.Update(i+1, id+".html")
		if err := g.writePage(frags, id); err != nil {
			g.Log.Warning("Skipping %s: %v", id+".html", err)
			continue
		}
		written++
		g.Log.Success("Generated: %s", id+".html")
	}

	return written, nil
}

func (g *Generator) writePage(frags *Fragments, id string) error {
	html, err := g.RenderPage(frags, id)
	if err != nil {
		return err
	}
	outPath := filepath.Join(g.OutputDir, id+".html")
	if err := os.WriteFile(outPath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}

// LoadFragments reads the head, header and footer fragments.
func (g *Generator) LoadFragments() (*Fragments, error) {
	head, err := g.readFragment(FragmentHead)
	if err != nil {
		return nil, err
	}
	header, err := g.readFragment(FragmentHeader)
	if err != nil {
		return nil, err
	}
	footer, err := g.readFragment(FragmentFooter)
	if err != nil {
		return nil, err
	}
	return &Fragments{Head: head, Header: header, Footer: footer}, nil
}

func (g *Generator) readFragment(name string) (string, error) {
	path := filepath.Join(g.ComponentsDir, name+".html")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrFragmentMissing, path)
		}
		return "", fmt.Errorf("reading fragment %s: %w", path, err)
	}
	return string(data), nil
}

// RenderPage assembles the full HTML document for page id.
func (g *Generator) RenderPage(frags *Fragments, id string) (string, error) {
	page, ok := g.Pages[id]
	if !ok {
		return "", fmt.Errorf("unknown page %q", id)
	}

	content, err := g.loadContent(page)
	if err != nil {
		return "", err
	}

	head := strings.TrimSpace(Substitute(frags.Head, merge(page.Placeholders, Placeholders{
		"CANONICAL_URL":    page.Canonical,
		"PAGE_TITLE":       page.Title,
		"META_DESCRIPTION": page.MetaDescription,
		"OG_TITLE":         page.OGTitle,
		"OG_DESCRIPTION":   page.OGDescription,
	})))

	header := Substitute(frags.Header, merge(page.Placeholders, Placeholders{
		"NAV_LINKS": page.NavLinks,
		"LOGO_SRC":  g.LogoSrc,
	}))

	footer := Substitute(frags.Footer, merge(page.Placeholders, Placeholders{
		"CURRENT_YEAR": strconv.Itoa(g.now().Year()),
	}))

	structured, err := StructuredData(page)
	if err != nil {
		return "", err
	}

	body := content
	if !page.FullPage {
		body = fmt.Sprintf(plainTextWrapper, content)
	}

	tmpl, err := g.template()
	if err != nil {
		return "", err
	}

	lang := g.Lang
	if lang == "" {
		lang = "en-US"
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, pageData{
		Lang:           lang,
		Head:           head,
		StructuredData: structured,
		Main:           body,
		Footer:         footer,
		Header:         header,
		ScriptSrc:      g.ScriptSrc,
		PlainText:      !page.FullPage,
	})
	if err != nil {
		return "", fmt.Errorf("executing document template: %w", err)
	}
	return buf.String(), nil
}

// loadContent reads the page's content file. A missing or unreadable file is
// reported and replaced with ContentNotFound.
func (g *Generator) loadContent(page config.PageConfig) (string, error) {
	path := page.ContentFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(g.ContentDir, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if g.Log == nil {
			g.Log = output.Discard
		}
		if os.IsNotExist(err) {
			g.Log.Warning("Content file not found: %s", page.ContentFile)
		} else {
			g.Log.Warning("Content file unreadable: %s: %v", page.ContentFile, err)
		}
		return ContentNotFound, nil
	}

	if isMarkdown(path) {
		if g.md == nil {
			g.md = newMarkdown()
		}
		return renderMarkdown(g.md, data)
	}
	return string(data), nil
}

func (g *Generator) template() (*template.Template, error) {
	if g.tmpl != nil {
		return g.tmpl, nil
	}
	tmpl, err := template.New("document").Parse(documentTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing document template: %w", err)
	}
	g.tmpl = tmpl
	return tmpl, nil
}

func (g *Generator) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}

func (g *Generator) pageIDs() []string {
	cfg := config.Config{Pages: g.Pages}
	return cfg.PageIDs()
}
