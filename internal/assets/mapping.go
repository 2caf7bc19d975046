package assets

import (
	"fmt"
	"os"
	"path"
	"regexp"
	"sort"
	"strings"
)

// Mapping maps an original image file name (e.g. "slider-img1.jpg") to the
// path it is served from after the build.
type Mapping map[string]string

// Names returns the mapped file names in sorted order.
func (m Mapping) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// hashedPattern matches "<base>.<hex hash>.<ext>" for the given extensions.
func hashedPattern(exts []string) (*regexp.Regexp, error) {
	if len(exts) == 0 {
		return nil, fmt.Errorf("no asset extensions configured")
	}
	quoted := make([]string, len(exts))
	for i, ext := range exts {
		quoted[i] = regexp.QuoteMeta(strings.TrimPrefix(ext, "."))
	}
	return regexp.Compile(`(?i)^(.+?)\.[a-f0-9]+\.(` + strings.Join(quoted, "|") + `)$`)
}

// BuildMapping scans the bundler's assets directory and the un-processed
// public image directory. Hashed assets take priority; public images that
// were not processed map to imageURL/<file>. Either directory may be absent.
func BuildMapping(assetsDir, assetsURL, publicImgDir, imageURL string, exts []string) (Mapping, error) {
	re, err := hashedPattern(exts)
	if err != nil {
		return nil, err
	}

	m := make(Mapping)

	files, err := listFiles(assetsDir)
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		match := re.FindStringSubmatch(file)
		if match == nil {
			continue
		}
		m[match[1]+"."+match[2]] = path.Join(assetsURL, file)
	}

	files, err = listFiles(publicImgDir)
	if err != nil {
		return nil, err
	}
	for _, file := range files {
		if _, ok := m[file]; ok {
			continue
		}
		m[file] = path.Join(imageURL, file)
	}

	return m, nil
}

// listFiles returns the regular file names in dir, sorted. A missing
// directory yields no files.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, e.Name())
	}
	return files, nil
}
