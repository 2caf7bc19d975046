package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// DefaultConfigPath is where `pagesmith init` writes its result.
const DefaultConfigPath = ".pagesmith.yml"

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to pagesmith! Let's configure your site.")
	fmt.Println()

	if _, err := os.Stat(path); err == nil {
		confirm := promptui.Prompt{
			Label:     fmt.Sprintf("%s already exists. Overwrite", path),
			IsConfirm: true,
		}
		if _, err := confirm.Run(); err != nil {
			return nil, fmt.Errorf("aborted: %s left unchanged", path)
		}
	}

	cfg := DefaultConfig()

	namePrompt := promptui.Prompt{
		Label:   "Site name",
		Default: cfg.SiteName,
	}
	siteName, err := namePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site name: %w", err)
	}

	urlPrompt := promptui.Prompt{
		Label:   "Canonical site URL",
		Default: cfg.SiteURL,
		Validate: func(s string) error {
			if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
				return fmt.Errorf("URL must start with http:// or https://")
			}
			return nil
		},
	}
	siteURL, err := urlPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site URL: %w", err)
	}

	componentsPrompt := promptui.Prompt{
		Label:   "Components directory (head/header/footer fragments)",
		Default: cfg.ComponentsDir,
	}
	componentsDir, err := componentsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("components dir: %w", err)
	}

	distPrompt := promptui.Prompt{
		Label:   "Bundler output directory",
		Default: cfg.Build.DistDir,
	}
	distDir, err := distPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("dist dir: %w", err)
	}

	portPrompt := promptui.Prompt{
		Label:   "Dev server port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("invalid port")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	cfg.SiteName = siteName
	cfg.SiteURL = strings.TrimSuffix(siteURL, "/")
	cfg.ComponentsDir = componentsDir
	cfg.Build.DistDir = distDir
	cfg.Server.Port = port
	cfg.Pages = DefaultPages(cfg.SiteName, cfg.SiteURL)

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	fmt.Printf("Create %s/head.html, header.html and footer.html, then run `pagesmith generate`.\n", componentsDir)
	return cfg, nil
}
