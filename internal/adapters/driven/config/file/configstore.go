// Package file provides the TOML-backed configuration store. Settings live
// in config.toml inside the data directory and are addressed with
// dot-notation keys such as "openai.model".
package file

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/ali1k/mcp-query-assistant/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// Recognised configuration keys.
const (
	// KeyAPIKey is the OpenAI API key. The OPENAI_API_KEY environment
	// variable and the --api-key flag take precedence over the file.
	KeyAPIKey = "openai.api_key"

	// KeyModel is the embedding model name.
	KeyModel = "openai.model"

	// KeyBaseURL overrides the OpenAI API base URL.
	KeyBaseURL = "openai.base_url"

	// KeyIndexCapacity bounds the vector index size.
	KeyIndexCapacity = "index.capacity"

	// KeyEmbeddingDimensions overrides the embedding dimension.
	KeyEmbeddingDimensions = "openai.dimensions"
)

// ConfigStore is a file-based configuration store using TOML.
type ConfigStore struct {
	filePath string
	data     map[string]any
}

// NewConfigStore creates a TOML config store under dataDir, loading the
// existing file when present.
func NewConfigStore(dataDir string) (*ConfigStore, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(dataDir, "config.toml"),
		data:     make(map[string]any),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return s, nil
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, ok := s.data[key]
	if !ok {
		return ""
	}
	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	val, ok := s.data[key]
	if !ok {
		return 0
	}
	// TOML integers are parsed as int64.
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// Set stores a configuration value and persists immediately.
func (s *ConfigStore) Set(key string, value any) error {
	s.data[key] = value
	return s.save()
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// save writes the configuration to the TOML file with restricted
// permissions; the file may hold an API key.
func (s *ConfigStore) save() error {
	data, err := toml.Marshal(unflattenMap(s.data))
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, data, 0600)
}

// load reads the configuration from the TOML file.
func (s *ConfigStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	var loaded map[string]any
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return err
	}

	s.data = flattenMap(loaded, "")
	return nil
}

// flattenMap converts nested maps to dot-notation keys.
// E.g., {"openai": {"model": "m"}} becomes {"openai.model": "m"}.
func flattenMap(m map[string]any, prefix string) map[string]any {
	result := make(map[string]any)
	for key, value := range m {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			for k, v := range flattenMap(nested, fullKey) {
				result[k] = v
			}
		} else {
			result[fullKey] = value
		}
	}
	return result
}

// unflattenMap is the inverse of flattenMap, rebuilding the nested structure
// TOML expects for its tables.
func unflattenMap(flat map[string]any) map[string]any {
	result := make(map[string]any)
	for key, value := range flat {
		parts := splitKey(key)
		node := result
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = value
	}
	return result
}

func splitKey(key string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(key); i++ {
		if key[i] == '.' {
			parts = append(parts, key[start:i])
			start = i + 1
		}
	}
	return append(parts, key[start:])
}
