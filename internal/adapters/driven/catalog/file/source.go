package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
	"github.com/custodia-labs/synergy-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.CatalogSource = (*Source)(nil)

// catalogFile is the on-disk catalog shape shared by every format.
type catalogFile struct {
	Traits []traitEntry `json:"traits" yaml:"traits" toml:"traits"`
	Items  []itemEntry  `json:"items" yaml:"items" toml:"items"`
}

type traitEntry struct {
	Name       string `json:"name" yaml:"name" toml:"name"`
	Thresholds []int  `json:"thresholds" yaml:"thresholds" toml:"thresholds"`
}

type itemEntry struct {
	ID     *int     `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Name   string   `json:"name" yaml:"name" toml:"name"`
	Cost   int      `json:"cost" yaml:"cost" toml:"cost"`
	Traits []string `json:"traits" yaml:"traits" toml:"traits"`
}

// Source reads a catalog file.
type Source struct {
	path string
}

// NewSource creates a catalog source for path.
// If path is empty, defaults to ~/.synergy/catalog.toml.
func NewSource(path string) (*Source, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".synergy", "catalog.toml")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving catalog path: %w", err)
	}
	return &Source{path: abs}, nil
}

// Location returns the catalog file path.
func (s *Source) Location() string {
	return s.path
}

// Load reads, decodes and validates the catalog. Every failure is a
// *domain.CatalogError carrying the file path.
func (s *Source) Load(_ context.Context) (*domain.Catalog, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, s.fail(err.Error())
	}

	parsed, err := decode(s.path, data)
	if err != nil {
		return nil, s.fail(err.Error())
	}

	catalog, err := build(parsed)
	if err != nil {
		var catalogErr *domain.CatalogError
		if errors.As(err, &catalogErr) {
			return nil, s.fail(catalogErr.Reason)
		}
		return nil, s.fail(err.Error())
	}
	return catalog, nil
}

func (s *Source) fail(reason string) error {
	return &domain.CatalogError{Path: s.path, Reason: reason}
}

// decode parses data according to the file extension.
func decode(path string, data []byte) (*catalogFile, error) {
	var parsed catalogFile

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("parsing TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	case ".json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&parsed); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q (want .toml, .yaml, .yml or .json)", ext)
	}

	return &parsed, nil
}

// build converts the decoded file into a validated catalog.
func build(parsed *catalogFile) (*domain.Catalog, error) {
	traits := make([]domain.TraitDefinition, len(parsed.Traits))
	for i, t := range parsed.Traits {
		traits[i] = domain.TraitDefinition{Name: t.Name, Thresholds: t.Thresholds}
	}

	items := make([]domain.Item, len(parsed.Items))
	for i, entry := range parsed.Items {
		id := i
		if entry.ID != nil {
			id = *entry.ID
		}
		items[i] = domain.Item{
			ID:     id,
			Name:   entry.Name,
			Cost:   entry.Cost,
			Traits: entry.Traits,
		}
	}

	return domain.NewCatalog(items, traits)
}
