package assets

import (
	"regexp"
	"strings"
)

var stylesheetLink = regexp.MustCompile(`<link rel="stylesheet" href="[^"]+">`)

// Rules describe how source references in generated pages look.
type Rules struct {
	// ScriptSrc is the unbundled module script every page loads, e.g. "/main.js".
	ScriptSrc string
	// LogoSrc is the logo path written by the header fragment.
	LogoSrc string
	// ImagePrefix is the source image directory as referenced from pages,
	// e.g. "./public/img/".
	ImagePrefix string
	// ImageURL is where unprocessed images are served from, e.g. "/img/".
	ImageURL string
}

// Rewrite returns html with every known source reference replaced by its
// built path. References that match nothing are left untouched, and
// rewriting already rewritten output with the same inputs changes nothing.
func Rewrite(html string, entry EntryAssets, m Mapping, rules Rules) string {
	if entry.HasBundle() {
		html = rewriteBundle(html, entry, rules.ScriptSrc)
	}

	if entry.Logo != "" {
		logo := `src="` + entry.Logo + `"`
		if rules.LogoSrc != "" {
			html = strings.ReplaceAll(html, `src="`+rules.LogoSrc+`"`, logo)
		}
		html = strings.ReplaceAll(html, `src="{{LOGO_SRC}}"`, logo)
	}

	if rules.ImagePrefix != "" {
		for _, name := range m.Names() {
			html = rewriteImage(html, rules.ImagePrefix+name, m[name])
		}
		if rules.ImageURL != "" {
			html = strings.ReplaceAll(html, rules.ImagePrefix, rules.ImageURL)
		}
	}

	return html
}

// rewriteBundle points the module script at the bundled script and ensures a
// single stylesheet link to the bundled CSS.
func rewriteBundle(html string, entry EntryAssets, scriptSrc string) string {
	script := regexp.MustCompile(`<script type="module"[^>]*src="` + regexp.QuoteMeta(scriptSrc) + `"[^>]*></script>`)
	html = replaceFirst(script, html, `<script type="module" crossorigin src="`+entry.Script+`"></script>`)

	link := `<link rel="stylesheet" href="` + entry.Stylesheet + `">`
	if !strings.Contains(html, `<link rel="stylesheet"`) {
		return strings.Replace(html, "</head>", "    "+link+"\n  </head>", 1)
	}
	return replaceFirst(stylesheetLink, html, link)
}

// rewriteImage replaces references to one source image: quoted src
// attributes, CSS url() values and bare occurrences.
func rewriteImage(html, source, target string) string {
	if !strings.Contains(html, source) {
		return html
	}
	quoted := regexp.QuoteMeta(source)

	src := regexp.MustCompile(`src=["']` + quoted + `["']`)
	html = src.ReplaceAllLiteralString(html, `src="`+target+`"`)

	url := regexp.MustCompile(`url\(["']?` + quoted + `["']?\)`)
	html = url.ReplaceAllLiteralString(html, "url("+target+")")

	return replaceBare(html, source, target)
}

// replaceBare replaces occurrences of source that are not immediately
// followed by an ASCII letter or digit.
func replaceBare(html, source, target string) string {
	var b strings.Builder
	rest := html
	for {
		i := strings.Index(rest, source)
		if i < 0 {
			break
		}
		end := i + len(source)
		b.WriteString(rest[:i])
		if end < len(rest) && isAlnum(rest[end]) {
			b.WriteString(source)
		} else {
			b.WriteString(target)
		}
		rest = rest[end:]
	}
	if b.Len() == 0 {
		return html
	}
	b.WriteString(rest)
	return b.String()
}

func isAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// replaceFirst replaces only the first match of re with the literal repl.
func replaceFirst(re *regexp.Regexp, s, repl string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + repl + s[loc[1]:]
}
