package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/temoto/robotstxt"

	"github.com/roots-trade/pagesmith/internal/config"
	"github.com/roots-trade/pagesmith/internal/output"
)

// CopyAuxiliary copies each auxiliary file into distDir. Files that do not
// exist are skipped. A robots.txt that does not parse is still copied, with a
// warning. It returns the destinations written.
func CopyAuxiliary(files []config.AuxFile, baseDir, distDir string, log output.Logger) ([]string, error) {
	var copied []string
	for _, f := range files {
		src := f.Src
		if !filepath.IsAbs(src) {
			src = filepath.Join(baseDir, src)
		}
		dest := f.Dest
		if dest == "" {
			dest = filepath.Base(f.Src)
		}
		dest = filepath.Join(distDir, dest)

		if _, err := os.Stat(src); err != nil {
			if os.IsNotExist(err) {
				log.Info("Skipping %s: not found", f.Src)
				continue
			}
			return copied, fmt.Errorf("checking %s: %w", src, err)
		}

		if filepath.Base(src) == "robots.txt" {
			checkRobots(src, log)
		}

		if err := copyFile(src, dest); err != nil {
			return copied, fmt.Errorf("copying %s: %w", f.Src, err)
		}
		log.Success("Copied %s to %s", f.Src, distDir)
		copied = append(copied, dest)
	}
	return copied, nil
}

// checkRobots warns when a robots.txt file does not parse.
func checkRobots(path string, log output.Logger) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warning("Could not read %s: %v", path, err)
		return
	}
	if _, err := robotstxt.FromBytes(data); err != nil {
		log.Warning("%s does not parse as robots.txt: %v", path, err)
	}
}

// copyFile copies a single file, creating parent directories of dst.
func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return err
	}
	return dstFile.Close()
}
