package site

import (
	"encoding/json"
	"fmt"

	"github.com/roots-trade/pagesmith/internal/config"
)

const (
	schemaContext     = "https://schema.org"
	defaultSchemaType = "WebPage"
	jsonLDIndent      = "      "
)

// genericSchema is the structured data synthesized for pages that do not
// declare their own. Fields are emitted in declaration order.
type genericSchema struct {
	Context     string `json:"@context"`
	Type        string `json:"@type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

// StructuredData returns the JSON-LD document for a page: its explicit
// schema_data when present, otherwise a minimal generic description.
func StructuredData(page config.PageConfig) (string, error) {
	var v any
	if len(page.SchemaData) > 0 {
		v = page.SchemaData
	} else {
		typ := page.SchemaType
		if typ == "" {
			typ = defaultSchemaType
		}
		v = genericSchema{
			Context:     schemaContext,
			Type:        typ,
			Name:        page.OGTitle,
			Description: page.MetaDescription,
			URL:         page.Canonical,
		}
	}

	data, err := json.MarshalIndent(v, "", jsonLDIndent)
	if err != nil {
		return "", fmt.Errorf("encoding structured data: %w", err)
	}
	return string(data), nil
}
