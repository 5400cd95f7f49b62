package services

import (
	"fmt"
	"strconv"

	"github.com/custodia-labs/synergy-cli/internal/core/domain"
	"github.com/custodia-labs/synergy-cli/internal/core/ports/driven"
	"github.com/custodia-labs/synergy-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyCatalogPath          = "catalog.path"
	keyStoreDir             = "store.dir"
	keySearchMaxSize        = "search.max_size"
	keySearchWorkers        = "search.workers"
	keySearchMaxResults     = "search.max_results"
	keySearchTimeoutSeconds = "search.timeout_seconds"
)

// settingKeys lists every recognised key in display order.
var settingKeys = []string{
	keyCatalogPath,
	keyStoreDir,
	keySearchMaxSize,
	keySearchWorkers,
	keySearchMaxResults,
	keySearchTimeoutSeconds,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Catalog: domain.CatalogSettings{
			Path: s.configStore.GetString(keyCatalogPath),
		},
		Store: domain.StoreSettings{
			Dir: s.configStore.GetString(keyStoreDir),
		},
		Search: domain.SearchSettings{
			MaxSize:        s.getInt(keySearchMaxSize, defaults.Search.MaxSize),
			Workers:        s.getInt(keySearchWorkers, defaults.Search.Workers),
			MaxResults:     s.getInt(keySearchMaxResults, defaults.Search.MaxResults),
			TimeoutSeconds: s.getInt(keySearchTimeoutSeconds, defaults.Search.TimeoutSeconds),
		},
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keyCatalogPath, settings.Catalog.Path},
		{keyStoreDir, settings.Store.Dir},
		{keySearchMaxSize, settings.Search.MaxSize},
		{keySearchWorkers, settings.Search.Workers},
		{keySearchMaxResults, settings.Search.MaxResults},
		{keySearchTimeoutSeconds, settings.Search.TimeoutSeconds},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Set parses and stores a single setting. The resulting settings must validate.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	switch key {
	case keyCatalogPath:
		settings.Catalog.Path = value
	case keyStoreDir:
		settings.Store.Dir = value
	case keySearchMaxSize, keySearchWorkers, keySearchMaxResults, keySearchTimeoutSeconds:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer, got %q", domain.ErrInvalidInput, key, value)
		}
		switch key {
		case keySearchMaxSize:
			settings.Search.MaxSize = n
		case keySearchWorkers:
			settings.Search.Workers = n
		case keySearchMaxResults:
			settings.Search.MaxResults = n
		default:
			settings.Search.TimeoutSeconds = n
		}
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	return s.Save(settings)
}

// Keys lists the recognised setting keys.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// getInt reads an integer key, falling back to defaultVal only when unset.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}
