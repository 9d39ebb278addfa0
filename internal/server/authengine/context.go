package authengine

import (
	"maps"
	"strings"

	"github.com/dmitrijs2005/authbridge/internal/common"
)

// Well-known registration context keys.
const (
	KeyEmail          = "email"
	KeyClientID       = "clientId"
	KeyAdditionalData = "additionalData"
	KeyDisplayName    = "displayName"
)

// RegistrationContext is an immutable key-value bag describing one
// registration or one magic-link/verification request.
type RegistrationContext struct {
	data map[string]any
}

// NewRegistrationContext copies data so later changes by the caller are
// not observed.
func NewRegistrationContext(data map[string]any) RegistrationContext {
	return RegistrationContext{data: deepCopy(data)}
}

// Get returns the raw value stored under key.
func (c RegistrationContext) Get(key string) (any, bool) {
	v, ok := c.data[key]
	return v, ok
}

// String returns a non-empty string value or a MissingFieldError.
func (c RegistrationContext) String(key string) (string, error) {
	v, ok := c.data[key]
	if !ok {
		return "", &common.MissingFieldError{Field: key}
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", &common.MissingFieldError{Field: key}
	}
	return s, nil
}

// AdditionalData returns a copy of the nested additional-data map, or nil.
func (c RegistrationContext) AdditionalData() map[string]any {
	m, _ := c.data[KeyAdditionalData].(map[string]any)
	return deepCopy(m)
}

// AdditionalString reads a non-empty string from the additional-data map.
// The error names the field as "additionalData.<key>".
func (c RegistrationContext) AdditionalString(key string) (string, error) {
	field := KeyAdditionalData + "." + key
	m, ok := c.data[KeyAdditionalData].(map[string]any)
	if !ok {
		return "", &common.MissingFieldError{Field: field}
	}
	s, ok := m[key].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", &common.MissingFieldError{Field: field}
	}
	return s, nil
}

// Map returns a copy of the whole context.
func (c RegistrationContext) Map() map[string]any {
	return deepCopy(c.data)
}

func deepCopy(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := maps.Clone(in)
	for k, v := range out {
		if nested, ok := v.(map[string]any); ok {
			out[k] = deepCopy(nested)
		}
	}
	return out
}
