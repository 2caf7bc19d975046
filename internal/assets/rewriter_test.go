package assets

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/roots-trade/pagesmith/internal/config"
	"github.com/roots-trade/pagesmith/internal/output"
)

var testRules = Rules{
	ScriptSrc:   "/main.js",
	LogoSrc:     "./public/img/logo-header-new.png",
	ImagePrefix: "./public/img/",
	ImageURL:    "/img/",
}

var testEntry = EntryAssets{
	Stylesheet: "/assets/main.abc123.css",
	Script:     "/assets/main.def456.js",
	Logo:       "/assets/logo-header-new.7f3a9c.png",
}

func TestRewriteLogoAndBundle(t *testing.T) {
	in := `<html><head><title>x</title></head><body>
<img src="./public/img/logo-header-new.png">
<script type="module" src="/main.js" defer></script>
</body></html>`

	got := Rewrite(in, testEntry, Mapping{}, testRules)

	if !strings.Contains(got, `<img src="/assets/logo-header-new.7f3a9c.png">`) {
		t.Errorf("logo not rewritten:\n%s", got)
	}
	if !strings.Contains(got, `<script type="module" crossorigin src="/assets/main.def456.js"></script>`) {
		t.Errorf("script not rewritten:\n%s", got)
	}
	if !strings.Contains(got, "<link rel=\"stylesheet\" href=\"/assets/main.abc123.css\">\n  </head>") {
		t.Errorf("stylesheet not inserted before </head>:\n%s", got)
	}
}

func TestRewriteLogoPlaceholder(t *testing.T) {
	in := `<img src="{{LOGO_SRC}}">`
	got := Rewrite(in, EntryAssets{Logo: testEntry.Logo}, Mapping{}, testRules)
	if got != `<img src="/assets/logo-header-new.7f3a9c.png">` {
		t.Errorf("got %q", got)
	}
}

func TestRewriteReplacesExistingStylesheet(t *testing.T) {
	in := `<head><link rel="stylesheet" href="/style.css"></head>` +
		`<script type="module" src="/main.js"></script>`
	got := Rewrite(in, testEntry, Mapping{}, testRules)

	if strings.Contains(got, "/style.css") {
		t.Error("old stylesheet should be replaced")
	}
	if strings.Count(got, `<link rel="stylesheet"`) != 1 {
		t.Errorf("want exactly one stylesheet link:\n%s", got)
	}
}

func TestRewriteWithoutBundle(t *testing.T) {
	in := `<head></head><script type="module" src="/main.js" defer></script>`
	got := Rewrite(in, EntryAssets{Stylesheet: "/assets/a.css"}, Mapping{}, testRules)
	if got != in {
		t.Errorf("page should be unchanged without both bundle assets:\n%s", got)
	}
}

func TestRewriteImages(t *testing.T) {
	m := Mapping{
		"slider-img1.jpg": "/assets/slider-img1.100566aa.jpg",
		"icon.svg":        "/img/icon.svg",
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "double quoted src",
			in:   `<img src="./public/img/slider-img1.jpg">`,
			want: `<img src="/assets/slider-img1.100566aa.jpg">`,
		},
		{
			name: "single quoted src",
			in:   `<img src='./public/img/slider-img1.jpg'>`,
			want: `<img src="/assets/slider-img1.100566aa.jpg">`,
		},
		{
			name: "css url",
			in:   `style="background-image: url('./public/img/slider-img1.jpg')"`,
			want: `style="background-image: url(/assets/slider-img1.100566aa.jpg)"`,
		},
		{
			name: "unquoted css url",
			in:   `url(./public/img/slider-img1.jpg)`,
			want: `url(/assets/slider-img1.100566aa.jpg)`,
		},
		{
			name: "bare path",
			in:   `data-bg="./public/img/slider-img1.jpg"`,
			want: `data-bg="/assets/slider-img1.100566aa.jpg"`,
		},
		{
			name: "bare path followed by alnum",
			in:   `./public/img/slider-img1.jpgx`,
			want: `/img/slider-img1.jpgx`,
		},
		{
			name: "unmapped image falls back",
			in:   `<img src="./public/img/other.webp">`,
			want: `<img src="/img/other.webp">`,
		},
		{
			name: "public image",
			in:   `<img src="./public/img/icon.svg">`,
			want: `<img src="/img/icon.svg">`,
		},
		{
			name: "unrelated reference untouched",
			in:   `<img src="https://cdn.example.com/a.png">`,
			want: `<img src="https://cdn.example.com/a.png">`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rewrite(tt.in, EntryAssets{}, m, testRules); got != tt.want {
				t.Errorf("Rewrite = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRewriteIdempotent(t *testing.T) {
	m := Mapping{"slider-img1.jpg": "/assets/slider-img1.100566aa.jpg"}
	in := `<html><head></head><body>
<img src="./public/img/logo-header-new.png">
<div style="background: url(./public/img/slider-img1.jpg)"></div>
<img src="./public/img/unknown.png">
<script type="module" src="/main.js" defer></script>
</body></html>`

	once := Rewrite(in, testEntry, m, testRules)
	twice := Rewrite(once, testEntry, m, testRules)
	if once != twice {
		t.Errorf("second pass changed output:\nonce:  %s\ntwice: %s", once, twice)
	}
}

func TestBuildMapping(t *testing.T) {
	root := t.TempDir()
	assetsDir := filepath.Join(root, "dist", "assets")
	imgDir := filepath.Join(root, "public", "img")
	for _, f := range []string{
		"slider-img1.100566aa.jpg",
		"logo-header-new.7F3A9C.PNG",
		"main.abc123.js",
		"notes.txt",
		"plain.png",
	} {
		writeFile(t, filepath.Join(assetsDir, f), "x")
	}
	for _, f := range []string{"slider-img1.jpg", "icon.svg"} {
		writeFile(t, filepath.Join(imgDir, f), "x")
	}

	m, err := BuildMapping(assetsDir, "/assets", imgDir, "/img", []string{"png", "jpg", "svg"})
	if err != nil {
		t.Fatalf("BuildMapping: %v", err)
	}

	want := Mapping{
		"slider-img1.jpg":     "/assets/slider-img1.100566aa.jpg",
		"logo-header-new.PNG": "/assets/logo-header-new.7F3A9C.PNG",
		"icon.svg":            "/img/icon.svg",
	}
	if len(m) != len(want) {
		t.Fatalf("mapping = %v, want %v", m, want)
	}
	for k, v := range want {
		if m[k] != v {
			t.Errorf("m[%q] = %q, want %q", k, m[k], v)
		}
	}
}

func TestBuildMappingMissingDirs(t *testing.T) {
	root := t.TempDir()
	m, err := BuildMapping(filepath.Join(root, "nope"), "/assets", filepath.Join(root, "nada"), "/img", []string{"png"})
	if err != nil {
		t.Fatalf("BuildMapping: %v", err)
	}
	if len(m) != 0 {
		t.Errorf("mapping = %v, want empty", m)
	}
}

func TestExtractEntryAssets(t *testing.T) {
	doc := `<!DOCTYPE html><html><head>
<script type="module" crossorigin src="/assets/main.def456.js"></script>
<link rel="stylesheet" href="/assets/main.abc123.css">
</head><body>
<img src="/assets/hero.1234.png">
<img src="/assets/logo-header-new.7f3a9c.png">
</body></html>`

	got, err := ExtractEntryAssets(strings.NewReader(doc), "logo-header-new")
	if err != nil {
		t.Fatal(err)
	}
	if got != testEntry {
		t.Errorf("got %+v, want %+v", got, testEntry)
	}
}

func TestLogoStem(t *testing.T) {
	tests := map[string]string{
		"./public/img/logo-header-new.png": "logo-header-new",
		"/img/logo.svg":                    "logo",
		"logo":                             "logo",
	}
	for in, want := range tests {
		if got := logoStem(in); got != want {
			t.Errorf("logoStem(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRewriterRun(t *testing.T) {
	root := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.OutputDir = root
	cfg.Build.DistDir = filepath.Join(root, "dist")
	cfg.Pages = map[string]config.PageConfig{
		"index": {ContentFile: "index.html"},
		"about": {ContentFile: "about.html"},
		"404":   {ContentFile: "404.html"},
	}

	writeFile(t, filepath.Join(root, "dist", "index.html"), `<html><head>
<script type="module" crossorigin src="/assets/main.def456.js"></script>
<link rel="stylesheet" href="/assets/main.abc123.css">
</head><body><img src="/assets/logo-header-new.7f3a9c.png"></body></html>`)
	writeFile(t, filepath.Join(root, "dist", "assets", "slider-img1.100566aa.jpg"), "x")
	writeFile(t, filepath.Join(root, "public", "robots.txt"), "User-agent: *\nDisallow:\n")

	page := `<html><head></head><body><img src="{{LOGO_SRC}}">` +
		`<div style="background: url('./public/img/slider-img1.jpg')"></div>` +
		`<script type="module" src="/main.js" defer></script></body></html>`
	writeFile(t, filepath.Join(root, "index.html"), page)
	writeFile(t, filepath.Join(root, "about.html"), page)
	// 404.html is missing and should be skipped.

	var logged strings.Builder
	r := NewRewriter(cfg, output.NewPrinterTo(&logged, false))
	r.BaseDir = root
	r.Now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	res, err := r.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(res.Rewritten) != 2 || len(res.Failed) != 1 || res.Failed[0] != "404.html" {
		t.Errorf("rewritten=%v failed=%v", res.Rewritten, res.Failed)
	}

	about, err := os.ReadFile(filepath.Join(root, "dist", "about.html"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		`<img src="/assets/logo-header-new.7f3a9c.png">`,
		`url(/assets/slider-img1.100566aa.jpg)`,
		`<script type="module" crossorigin src="/assets/main.def456.js"></script>`,
		`<link rel="stylesheet" href="/assets/main.abc123.css">`,
	} {
		if !strings.Contains(string(about), want) {
			t.Errorf("about.html missing %q", want)
		}
	}

	if _, err := os.Stat(filepath.Join(root, "dist", "robots.txt")); err != nil {
		t.Errorf("robots.txt not copied: %v", err)
	}
	if !strings.Contains(logged.String(), "Skipping .htaccess: not found") {
		t.Errorf("missing auxiliary file not reported:\n%s", logged.String())
	}

	data, err := os.ReadFile(filepath.Join(root, "dist", "asset-manifest.json"))
	if err != nil {
		t.Fatalf("manifest not written: %v", err)
	}
	var man Manifest
	if err := json.Unmarshal(data, &man); err != nil {
		t.Fatal(err)
	}
	if man.BuildID == "" || man.Script != "/assets/main.def456.js" {
		t.Errorf("manifest = %+v", man)
	}
	if man.Images["slider-img1.jpg"] != "/assets/slider-img1.100566aa.jpg" {
		t.Errorf("manifest images = %v", man.Images)
	}
}

func TestIsHashed(t *testing.T) {
	exts := []string{"png", "js"}
	if !IsHashed("main.abc123.js", exts) {
		t.Error("main.abc123.js should be hashed")
	}
	if IsHashed("main.js", exts) {
		t.Error("main.js should not be hashed")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
