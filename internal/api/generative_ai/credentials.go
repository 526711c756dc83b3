package generativeAI

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/FACorreiaa/go-travel-ai-planner/internal/types"
)

// Credentials are the API keys, resolved once per process.
type Credentials struct {
	Gemini string `yaml:"gemini,omitempty"`
	OpenAI string `yaml:"openai,omitempty"`
	Grok   string `yaml:"grok,omitempty"`
}

func (c Credentials) Key(id types.ProviderID) string {
	switch id {
	case types.ProviderGemini:
		return c.Gemini
	case types.ProviderOpenAI:
		return c.OpenAI
	case types.ProviderGrok:
		return c.Grok
	}
	return ""
}

func (c *Credentials) Set(id types.ProviderID, key string) error {
	switch id {
	case types.ProviderGemini:
		c.Gemini = key
	case types.ProviderOpenAI:
		c.OpenAI = key
	case types.ProviderGrok:
		c.Grok = key
	default:
		return fmt.Errorf("%w: unknown provider %q", types.ErrInvalidInput, id)
	}
	return nil
}

var envKeys = map[types.ProviderID][]string{
	types.ProviderGemini: {"GOOGLE_GEMINI_API_KEY", "GEMINI_API_KEY"},
	types.ProviderOpenAI: {"OPENAI_API_KEY"},
	types.ProviderGrok:   {"GROK_API_KEY"},
}

// DefaultCredentialsPath is where `keys set` writes user overrides.
func DefaultCredentialsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".wanderwise-keys.yml"
	}
	return filepath.Join(dir, "wanderwise", "keys.yml")
}

// LoadOverrides reads the override file. A missing file is not an error.
func LoadOverrides(path string) (Credentials, error) {
	var c Credentials
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return c, fmt.Errorf("failed to read credentials file: %w", err)
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("failed to parse credentials file %s: %w", path, err)
	}
	return c, nil
}

// SaveOverrides writes c to path with owner-only permissions.
func SaveOverrides(path string, c Credentials) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create credentials dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	return os.WriteFile(path, b, 0o600)
}

// ResolveCredentials applies the user override first and falls back to the
// environment for any provider the override leaves empty.
func ResolveCredentials(path string, getenv func(string) string) (Credentials, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	creds := Credentials{}
	if path != "" {
		o, err := LoadOverrides(path)
		if err != nil {
			return creds, err
		}
		creds = o
	}
	for _, id := range types.Providers {
		if strings.TrimSpace(creds.Key(id)) != "" {
			continue
		}
		for _, name := range envKeys[id] {
			if v := strings.TrimSpace(getenv(name)); v != "" {
				_ = creds.Set(id, v)
				break
			}
		}
	}
	return creds, nil
}

// Mask hides all but the last four characters of a key.
func Mask(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
