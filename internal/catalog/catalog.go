// Package catalog holds the suggestion lists the browse filters and the
// publish form draw from. The lists ship embedded so the API serves them
// without a DB round trip.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// AllSentinel is the filter value that means "no filter".
const AllSentinel = "All"

type Catalog struct {
	Categories []string `yaml:"categories" json:"categories"`
	AIModels   []string `yaml:"ai_models" json:"ai_models"`
}

func Load() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return nil, fmt.Errorf("parse embedded catalog: %w", err)
	}
	if len(c.Categories) == 0 || len(c.AIModels) == 0 {
		return nil, fmt.Errorf("embedded catalog is incomplete")
	}
	return &c, nil
}
