package assets

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Manifest records what a build rewrote. It is written next to the built
// pages so deploys can tell builds apart.
type Manifest struct {
	BuildID    string            `json:"build_id"`
	BuiltAt    time.Time         `json:"built_at"`
	Stylesheet string            `json:"stylesheet,omitempty"`
	Script     string            `json:"script,omitempty"`
	Logo       string            `json:"logo,omitempty"`
	Images     map[string]string `json:"images"`
	Pages      []string          `json:"pages"`
	Auxiliary  []string          `json:"auxiliary,omitempty"`
}

// NewManifest creates a manifest with a fresh build ID.
func NewManifest(entry EntryAssets, m Mapping, now time.Time) *Manifest {
	images := make(map[string]string, len(m))
	for k, v := range m {
		images[k] = v
	}
	return &Manifest{
		BuildID:    uuid.New().String(),
		BuiltAt:    now.UTC(),
		Stylesheet: entry.Stylesheet,
		Script:     entry.Script,
		Logo:       entry.Logo,
		Images:     images,
		Pages:      []string{},
	}
}

// Write saves the manifest as indented JSON.
func (m *Manifest) Write(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}
