package assets

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// EntryAssets are the hashed references found in the bundler's processed
// entry document.
type EntryAssets struct {
	Stylesheet string
	Script     string
	Logo       string
}

// HasBundle reports whether both the stylesheet and the script were found.
func (e EntryAssets) HasBundle() bool {
	return e.Stylesheet != "" && e.Script != ""
}

// ExtractEntryAssets parses the processed entry document and returns the
// first stylesheet href, the first crossorigin module script src, and the
// first src containing logoStem. Missing references are left empty.
func ExtractEntryAssets(r io.Reader, logoStem string) (EntryAssets, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return EntryAssets{}, fmt.Errorf("parsing entry document: %w", err)
	}

	var found EntryAssets
	if href, ok := doc.Find(`link[rel="stylesheet"][href]`).First().Attr("href"); ok {
		found.Stylesheet = href
	}
	if src, ok := doc.Find(`script[type="module"][crossorigin][src]`).First().Attr("src"); ok {
		found.Script = src
	}
	if logoStem != "" {
		doc.Find("[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			src, _ := s.Attr("src")
			if strings.Contains(src, logoStem) {
				found.Logo = src
				return false
			}
			return true
		})
	}
	return found, nil
}

// logoStem returns the file name of src without directory or extension,
// e.g. "logo-header-new" for "./public/img/logo-header-new.png".
func logoStem(src string) string {
	name := src
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i > 0 {
		name = name[:i]
	}
	return name
}
