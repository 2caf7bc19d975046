package site

import (
	_ "embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed static/main.js
var mainScript []byte

// MainScript returns the page behaviour script shipped with every site.
func MainScript() []byte {
	return mainScript
}

// WriteScript writes the page script to the file ScriptSrc resolves to under
// OutputDir. An existing file is left alone unless overwrite is set. It
// reports whether the file was written.
func (g *Generator) WriteScript(overwrite bool) (string, bool, error) {
	name := strings.TrimPrefix(path.Clean("/"+g.ScriptSrc), "/")
	if name == "" || name == "." {
		return "", false, fmt.Errorf("script_src %q does not name a file", g.ScriptSrc)
	}
	dest := filepath.Join(g.OutputDir, filepath.FromSlash(name))

	if !overwrite {
		if _, err := os.Stat(dest); err == nil {
			return dest, false, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return dest, false, err
	}
	if err := os.WriteFile(dest, mainScript, 0o644); err != nil {
		return dest, false, fmt.Errorf("writing %s: %w", dest, err)
	}
	return dest, true, nil
}
