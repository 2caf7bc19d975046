package config

// PageConfig describes one generated page, keyed by its identifier in Config.Pages.
type PageConfig struct {
	Title           string            `yaml:"title" koanf:"title"`
	Canonical       string            `yaml:"canonical" koanf:"canonical"`
	MetaDescription string            `yaml:"meta_description" koanf:"meta_description"`
	OGTitle         string            `yaml:"og_title" koanf:"og_title"`
	OGDescription   string            `yaml:"og_description" koanf:"og_description"`
	NavLinks        string            `yaml:"nav_links" koanf:"nav_links"`
	ContentFile     string            `yaml:"content_file" koanf:"content_file"`
	FullPage        bool              `yaml:"full_page" koanf:"full_page"`
	SchemaType      string            `yaml:"schema_type,omitempty" koanf:"schema_type"`
	SchemaData      map[string]any    `yaml:"schema_data,omitempty" koanf:"schema_data"`
	Placeholders    map[string]string `yaml:"placeholders,omitempty" koanf:"placeholders"`
}

// AuxFile is a file copied verbatim into the build output when it exists.
type AuxFile struct {
	Src  string `yaml:"src" koanf:"src"`
	Dest string `yaml:"dest" koanf:"dest"`
}

// BuildConfig controls the post-bundle asset rewrite.
type BuildConfig struct {
	DistDir         string    `yaml:"dist_dir" koanf:"dist_dir"`
	AssetsDir       string    `yaml:"assets_dir" koanf:"assets_dir"`
	PublicDir       string    `yaml:"public_dir" koanf:"public_dir"`
	ImageDir        string    `yaml:"image_dir" koanf:"image_dir"`
	Entry           string    `yaml:"entry" koanf:"entry"`
	AssetExtensions []string  `yaml:"asset_extensions" koanf:"asset_extensions"`
	Auxiliary       []AuxFile `yaml:"auxiliary" koanf:"auxiliary"`
	Manifest        string    `yaml:"manifest" koanf:"manifest"`
}

// ServerConfig controls the dev/preview server and its route table.
type ServerConfig struct {
	Port             int               `yaml:"port" koanf:"port"`
	Routes           map[string]string `yaml:"routes" koanf:"routes"`
	NotFoundRoute    string            `yaml:"not_found_route" koanf:"not_found_route"`
	NotFoundPage     string            `yaml:"not_found_page" koanf:"not_found_page"`
	StaticExtensions []string          `yaml:"static_extensions" koanf:"static_extensions"`
	StaticPatterns   []string          `yaml:"static_patterns" koanf:"static_patterns"`
	ToolingPrefixes  []string          `yaml:"tooling_prefixes" koanf:"tooling_prefixes"`
	AllowAllOrigins  bool              `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// Config is the top-level pagesmith configuration, corresponding to .pagesmith.yml.
type Config struct {
	SiteName      string                `yaml:"site_name" koanf:"site_name"`
	SiteURL       string                `yaml:"site_url" koanf:"site_url"`
	Lang          string                `yaml:"lang" koanf:"lang"`
	ComponentsDir string                `yaml:"components_dir" koanf:"components_dir"`
	OutputDir     string                `yaml:"output_dir" koanf:"output_dir"`
	LogoSrc       string                `yaml:"logo_src" koanf:"logo_src"`
	ScriptSrc     string                `yaml:"script_src" koanf:"script_src"`
	Pages         map[string]PageConfig `yaml:"pages" koanf:"pages"`
	Build         BuildConfig           `yaml:"build" koanf:"build"`
	Server        ServerConfig          `yaml:"server" koanf:"server"`
}

// HTMLFiles returns the generated file name of every configured page.
func (c *Config) HTMLFiles() []string {
	ids := c.PageIDs()
	files := make([]string, len(ids))
	for i, id := range ids {
		files[i] = id + ".html"
	}
	return files
}
