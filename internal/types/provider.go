package types

import (
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ProviderID identifies one of the LLM backends.
type ProviderID string

const (
	ProviderGemini ProviderID = "gemini"
	ProviderOpenAI ProviderID = "openai"
	ProviderGrok   ProviderID = "grok"
)

// Providers lists every supported backend in display order.
var Providers = []ProviderID{ProviderGemini, ProviderOpenAI, ProviderGrok}

func (p ProviderID) String() string { return string(p) }

// DisplayName is used in user facing notifications, e.g. "GEMINI".
func (p ProviderID) DisplayName() string { return strings.ToUpper(string(p)) }

// ParseProvider accepts a case-insensitive provider name. An empty string
// resolves to def.
func ParseProvider(s string, def ProviderID) (ProviderID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return def, nil
	}
	for _, p := range Providers {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown provider %q", ErrInvalidInput, s)
}

// RequestDescriptor is built per call by a domain query function.
type RequestDescriptor struct {
	Prompt   string
	Provider ProviderID
	Shape    *genai.Schema
}
