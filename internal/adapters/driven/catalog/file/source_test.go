package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
)

const tomlCatalog = `
[[traits]]
name = "Sorcerer"
thresholds = [4, 2, 2]

[[traits]]
name = "Spirit"
thresholds = [1]

[[items]]
name = "Ahri"
cost = 4
traits = ["Sorcerer", "Spirit"]

[[items]]
name = "Annie"
cost = 1
traits = ["Sorcerer"]
`

const yamlCatalog = `
traits:
  - name: Sorcerer
    thresholds: [4, 2, 2]
  - name: Spirit
    thresholds: [1]
items:
  - name: Ahri
    cost: 4
    traits: [Sorcerer, Spirit]
  - name: Annie
    cost: 1
    traits: [Sorcerer]
`

const jsonCatalog = `{
  "traits": [
    {"name": "Sorcerer", "thresholds": [4, 2, 2]},
    {"name": "Spirit", "thresholds": [1]}
  ],
  "items": [
    {"name": "Ahri", "cost": 4, "traits": ["Sorcerer", "Spirit"]},
    {"name": "Annie", "cost": 1, "traits": ["Sorcerer"]}
  ]
}`

func writeCatalog(t *testing.T, name, content string) *Source {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	source, err := NewSource(path)
	require.NoError(t, err)
	return source
}

func TestSource_Load_Formats(t *testing.T) {
	tests := []struct {
		file    string
		content string
	}{
		{"catalog.toml", tomlCatalog},
		{"catalog.yaml", yamlCatalog},
		{"catalog.yml", yamlCatalog},
		{"catalog.json", jsonCatalog},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			source := writeCatalog(t, tt.file, tt.content)

			catalog, err := source.Load(context.Background())
			require.NoError(t, err)

			assert.Equal(t, 2, catalog.Len())
			items := catalog.Items()
			assert.Equal(t, "Annie", items[0].Name)
			assert.Equal(t, 1, items[0].ID)
			assert.Equal(t, "Ahri", items[1].Name)
			assert.Equal(t, 0, items[1].ID)

			sorcerer, ok := catalog.Trait("Sorcerer")
			require.True(t, ok)
			assert.Equal(t, []int{2, 4}, sorcerer.Thresholds)
		})
	}
}

func TestSource_Load_ExplicitIDs(t *testing.T) {
	source := writeCatalog(t, "catalog.yaml", `
traits:
  - name: X
    thresholds: [1]
items:
  - {id: 40, name: A, cost: 1, traits: [X]}
  - {id: 3, name: B, cost: 1, traits: [X]}
`)

	catalog, err := source.Load(context.Background())
	require.NoError(t, err)

	a, ok := catalog.ItemByName("A")
	require.True(t, ok)
	assert.Equal(t, 40, a.ID)
	b, _ := catalog.ItemByName("B")
	assert.Equal(t, 3, b.ID)
}

func TestSource_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"unsupported extension", "catalog.ini", "a=b"},
		{"bad toml", "catalog.toml", "[[items]\nname ="},
		{"bad yaml", "catalog.yaml", "items: [\n"},
		{"bad json", "catalog.json", "{"},
		{"unknown json field", "catalog.json", `{"items": [], "extra": 1}`},
		{"unknown trait", "catalog.yaml", "items:\n  - {name: A, cost: 1, traits: [Nope]}\n"},
		{"duplicate name", "catalog.yaml", "items:\n  - {name: A, cost: 1}\n  - {name: A, cost: 2}\n"},
		{"colliding ids", "catalog.yaml", "items:\n  - {name: A, cost: 1}\n  - {id: 0, name: B, cost: 2}\n"},
		{"bad threshold", "catalog.yaml", "traits:\n  - {name: X, thresholds: [0]}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := writeCatalog(t, tt.file, tt.content)

			catalog, err := source.Load(context.Background())

			assert.Nil(t, catalog)
			assert.ErrorIs(t, err, domain.ErrCatalogLoad)
			var catalogErr *domain.CatalogError
			require.True(t, errors.As(err, &catalogErr))
			assert.Equal(t, source.Location(), catalogErr.Path)
		})
	}
}

func TestSource_Load_MissingFile(t *testing.T) {
	source, err := NewSource(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)

	_, err = source.Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrCatalogLoad)
}

func TestNewSource_DefaultPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	source, err := NewSource("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".synergy", "catalog.toml"), source.Location())
}

func TestSource_HandleEvent(t *testing.T) {
	source := writeCatalog(t, "catalog.toml", tomlCatalog)
	other := filepath.Join(filepath.Dir(source.Location()), "other.toml")

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: source.Location(), Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: source.Location(), Op: fsnotify.Create}, true},
		{"remove", fsnotify.Event{Name: source.Location(), Op: fsnotify.Remove}, true},
		{"rename", fsnotify.Event{Name: source.Location(), Op: fsnotify.Rename}, true},
		{"chmod", fsnotify.Event{Name: source.Location(), Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: other, Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, source.handleEvent(tt.event))
		})
	}
}
