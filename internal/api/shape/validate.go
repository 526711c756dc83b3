package shape

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"

	"google.golang.org/genai"
)

var fencePattern = regexp.MustCompile("```(?:json|JSON)?\\n?|\\n?```")

// StripFences removes markdown code-fence wrapping that some providers put
// around their JSON payload.
func StripFences(text string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(text, ""))
}

// ValidationError reports where a decoded document diverges from its schema.
type ValidationError struct {
	Path string
	Msg  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("shape mismatch at %s: %s", e.Path, e.Msg)
}

// Validate checks a document decoded with encoding/json (maps, slices,
// float64, string, bool, nil) against schema. Only the subset of the schema
// used by this package is interpreted: type, properties, required, items and
// enum.
func Validate(schema *genai.Schema, v any) error {
	return validate(schema, v, "$")
}

func validate(schema *genai.Schema, v any, path string) error {
	if schema == nil {
		return nil
	}
	switch schema.Type {
	case genai.TypeObject:
		obj, ok := v.(map[string]any)
		if !ok {
			return mismatch(path, "object", v)
		}
		for _, key := range schema.Required {
			if val, ok := obj[key]; !ok || val == nil {
				return &ValidationError{Path: path + "." + key, Msg: "required field is missing"}
			}
		}
		for key, prop := range schema.Properties {
			val, ok := obj[key]
			if !ok || val == nil {
				continue
			}
			if err := validate(prop, val, path+"."+key); err != nil {
				return err
			}
		}
	case genai.TypeArray:
		arr, ok := v.([]any)
		if !ok {
			return mismatch(path, "array", v)
		}
		for i, item := range arr {
			if err := validate(schema.Items, item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case genai.TypeString:
		s, ok := v.(string)
		if !ok {
			return mismatch(path, "string", v)
		}
		if len(schema.Enum) > 0 && !slices.Contains(schema.Enum, s) {
			return &ValidationError{Path: path, Msg: fmt.Sprintf("%q is not one of %v", s, schema.Enum)}
		}
	case genai.TypeInteger:
		n, ok := v.(float64)
		if !ok || n != math.Trunc(n) {
			return mismatch(path, "integer", v)
		}
	case genai.TypeNumber:
		if _, ok := v.(float64); !ok {
			return mismatch(path, "number", v)
		}
	case genai.TypeBoolean:
		if _, ok := v.(bool); !ok {
			return mismatch(path, "boolean", v)
		}
	}
	return nil
}

func mismatch(path, want string, got any) error {
	return &ValidationError{Path: path, Msg: fmt.Sprintf("expected %s, got %T", want, got)}
}

// UnwrapArray handles providers in JSON-object mode that cannot emit a
// top-level array and reply with {"items": [...]} instead. When schema wants
// an array and v is an object holding exactly one array, that array is
// returned. Otherwise v is returned unchanged.
func UnwrapArray(schema *genai.Schema, v any) any {
	if schema == nil || schema.Type != genai.TypeArray {
		return v
	}
	obj, ok := v.(map[string]any)
	if !ok || len(obj) != 1 {
		return v
	}
	for _, inner := range obj {
		if arr, ok := inner.([]any); ok {
			return arr
		}
	}
	return v
}
