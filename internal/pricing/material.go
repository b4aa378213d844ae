// Package pricing turns a mesh volume into a print quote for a material.
package pricing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownMaterial = errors.New("unknown material")
	ErrEmptyCatalog    = errors.New("material catalog is empty")
)

// Material is a printable material with its density in g/cm³
type Material struct {
	Name         string  `json:"name" yaml:"name" toml:"name"`
	Density      float64 `json:"density" yaml:"density" toml:"density"`
	PricePerGram float64 `json:"price_per_gram" yaml:"price_per_gram" toml:"price_per_gram"`
	Color        string  `json:"color,omitempty" yaml:"color,omitempty" toml:"color,omitempty"`
	Description  string  `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
}

// Validate reports a material that cannot be priced
func (m Material) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return errors.New("material name is empty")
	}
	if m.Density <= 0 {
		return fmt.Errorf("material %s: density must be positive, got %g", m.Name, m.Density)
	}
	if m.PricePerGram < 0 {
		return fmt.Errorf("material %s: price per gram must be non-negative, got %g", m.Name, m.PricePerGram)
	}
	return nil
}

// Catalog is an ordered list of materials
type Catalog []Material

// DefaultCatalog returns the built-in materials
func DefaultCatalog() Catalog {
	return Catalog{
		{Name: "PLA", Density: 1.24, PricePerGram: 0.05, Color: "#4CAF50", Description: "Easy to print, biodegradable"},
		{Name: "ABS", Density: 1.04, PricePerGram: 0.06, Color: "#2196F3", Description: "Tough and heat resistant"},
		{Name: "PETG", Density: 1.27, PricePerGram: 0.07, Color: "#FF9800", Description: "Strong, food safe"},
		{Name: "TPU", Density: 1.21, PricePerGram: 0.12, Color: "#9C27B0", Description: "Flexible"},
		{Name: "Nylon", Density: 1.14, PricePerGram: 0.15, Color: "#607D8B", Description: "Durable engineering material"},
	}
}

// Lookup finds a material by name, ignoring case
func (c Catalog) Lookup(name string) (Material, error) {
	for _, m := range c {
		if strings.EqualFold(m.Name, strings.TrimSpace(name)) {
			return m, nil
		}
	}
	return Material{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownMaterial, name, strings.Join(c.Names(), ", "))
}

// Names returns the material names in catalog order
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, m := range c {
		names[i] = m.Name
	}
	return names
}

// Validate checks every material and rejects duplicate names
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[string]bool, len(c))
	var errs []error
	for _, m := range c {
		if err := m.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		key := strings.ToLower(m.Name)
		if seen[key] {
			errs = append(errs, fmt.Errorf("material %s: duplicate name", m.Name))
		}
		seen[key] = true
	}
	return errors.Join(errs...)
}
