package config

import (
	"sort"
	"strings"
)

// DefaultStaticExtensions are request suffixes that are always served as files.
var DefaultStaticExtensions = []string{
	".js", ".css", ".png", ".jpg", ".jpeg", ".gif", ".svg", ".ico",
	".woff", ".woff2", ".ttf", ".eot", ".json", ".xml", ".txt",
}

// DefaultStaticPatterns are request paths that are never routed.
var DefaultStaticPatterns = []string{
	"/assets/**",
	"/img/**",
	"/public/**",
	"/robots.txt",
	"/sitemap.xml",
}

// DefaultToolingPrefixes are paths owned by the dev server itself.
var DefaultToolingPrefixes = []string{
	"/@",
	"/node_modules/",
	"/__livereload",
	"/healthz",
}

// DefaultRoutes is the pretty-URL table served in dev and preview mode.
var DefaultRoutes = map[string]string{
	"/about":                "/about.html",
	"/privacy-policy":       "/privacy-policy.html",
	"/terms-and-conditions": "/terms-conditions.html",
	"/404":                  "/404.html",
}

// DefaultConfig returns a Config with sensible defaults. It carries no pages;
// see DefaultPages.
func DefaultConfig() *Config {
	return &Config{
		SiteName:      "ROOTS",
		SiteURL:       "https://roots.trade",
		Lang:          "en-US",
		ComponentsDir: "components",
		OutputDir:     ".",
		LogoSrc:       "./public/img/logo-header-new.png",
		ScriptSrc:     "/main.js",
		Pages:         map[string]PageConfig{},
		Build: BuildConfig{
			DistDir:   "dist",
			AssetsDir: "assets",
			PublicDir: "public",
			ImageDir:  "img",
			Entry:     "index.html",
			AssetExtensions: []string{
				"png", "jpg", "jpeg", "svg", "gif", "webp",
			},
			Auxiliary: []AuxFile{
				{Src: "public/sitemap.xml", Dest: "sitemap.xml"},
				{Src: "public/robots.txt", Dest: "robots.txt"},
				{Src: ".htaccess", Dest: ".htaccess"},
			},
			Manifest: "asset-manifest.json",
		},
		Server: ServerConfig{
			Port:             5173,
			Routes:           copyRoutes(DefaultRoutes),
			NotFoundRoute:    "/404",
			NotFoundPage:     "/404.html",
			StaticExtensions: DefaultStaticExtensions,
			StaticPatterns:   DefaultStaticPatterns,
			ToolingPrefixes:  DefaultToolingPrefixes,
			AllowAllOrigins:  true,
		},
	}
}

// DefaultPages returns the starter page set written by `pagesmith init`.
func DefaultPages(siteName, siteURL string) map[string]PageConfig {
	base := strings.TrimSuffix(siteURL, "/")
	homeNav := navLinks("#")
	otherNav := navLinks("/#")

	return map[string]PageConfig{
		"index": {
			Title:           siteName + " | Home",
			Canonical:       base + "/",
			MetaDescription: siteName + " home page.",
			OGTitle:         siteName,
			OGDescription:   siteName + " home page.",
			NavLinks:        homeNav,
			ContentFile:     "pages/index-content.html",
			FullPage:        true,
			SchemaType:      "SoftwareApplication",
		},
		"about": {
			Title:           "About Us | " + siteName,
			Canonical:       base + "/about",
			MetaDescription: "Learn about " + siteName + ".",
			OGTitle:         "About " + siteName,
			OGDescription:   "Learn about " + siteName + ".",
			NavLinks:        otherNav,
			ContentFile:     "pages/about-content.html",
		},
		"privacy-policy": {
			Title:           "Privacy Policy | " + siteName,
			Canonical:       base + "/privacy-policy",
			MetaDescription: "Privacy Policy for " + siteName + ".",
			OGTitle:         "Privacy Policy - " + siteName,
			OGDescription:   "Privacy Policy for " + siteName + ".",
			NavLinks:        otherNav,
			ContentFile:     "pages/privacy-policy-content.html",
		},
		"terms-conditions": {
			Title:           "Terms and Conditions | " + siteName,
			Canonical:       base + "/terms-and-conditions",
			MetaDescription: "Terms and Conditions for " + siteName + ".",
			OGTitle:         "Terms and Conditions - " + siteName,
			OGDescription:   "Terms and Conditions for " + siteName + ".",
			NavLinks:        otherNav,
			ContentFile:     "pages/terms-conditions-content.html",
		},
		"404": {
			Title:           "Page Not Found | " + siteName,
			Canonical:       base + "/404",
			MetaDescription: "The page you are looking for does not exist.",
			OGTitle:         "Page Not Found - " + siteName,
			OGDescription:   "The page you are looking for does not exist.",
			NavLinks:        otherNav,
			ContentFile:     "pages/404-content.html",
		},
	}
}

// homeSections are the in-page anchors on the index page, in menu order.
var homeSections = []struct{ ID, Label string }{
	{"main-pillars", "Main Pillars"},
	{"system-features", "System Features"},
	{"benefits", "Benefits"},
	{"usage", "Usage"},
	{"contact", "Contact us"},
}

func navLinks(prefix string) string {
	var b strings.Builder
	for _, s := range homeSections {
		b.WriteString(`<a class="" href="` + prefix + s.ID + `" aria-label="Navigate to ` + s.Label + ` section">` + s.Label + `</a>`)
	}
	b.WriteString(`<a class="" href="/about" aria-label="Navigate to About us page">About us</a>`)
	return b.String()
}

func copyRoutes(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// PageIDs returns the configured page identifiers in a stable order.
func (c *Config) PageIDs() []string {
	ids := make([]string, 0, len(c.Pages))
	for id := range c.Pages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
