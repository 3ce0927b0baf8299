// Package i18n resolves message keys to user-facing text.
package i18n

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var defaultMessages []byte

type Catalog map[string]string

// Parse decodes a flat YAML mapping of message keys to text.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse message catalog: %w", err)
	}
	return c, nil
}

// Translate returns the text for key, or the key itself when unknown.
func (c Catalog) Translate(key string) string {
	if text, ok := c[key]; ok {
		return text
	}
	return key
}

var catalog = mustParse(defaultMessages)

func mustParse(data []byte) Catalog {
	c, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return c
}

// T translates key with the embedded catalogue.
func T(key string) string {
	return catalog.Translate(key)
}
