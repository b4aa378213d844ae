package pricing

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk layout shared by the YAML and TOML forms:
//
//	materials:
//	  - name: PLA
//	    density: 1.24
//	    price_per_gram: 0.05
type catalogFile struct {
	Materials Catalog `yaml:"materials" toml:"materials"`
}

// LoadCatalog reads a material catalog from a .yaml, .yml or .toml file.
// An empty path returns the default catalog.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read material catalog: %w", err)
	}

	var file catalogFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return nil, fmt.Errorf("failed to parse YAML catalog %s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), &file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse TOML catalog %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to parse TOML catalog %s: unknown key %s", path, undecoded[0])
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q, use .yaml, .yml or .toml", ext)
	}

	if err := file.Materials.Validate(); err != nil {
		return nil, fmt.Errorf("invalid material catalog %s: %w", path, err)
	}
	return file.Materials, nil
}
