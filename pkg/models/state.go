package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// State is a single entry of the GET /api/states response.
type State struct {
	EntityID   string         `json:"entity_id"`
	State      string         `json:"state,omitempty"`
	Attributes map[string]any `json:"attributes"`
}

// FriendlyName returns the friendly_name attribute, or "" when it is absent
// or not a string.
func (s State) FriendlyName() string {
	name, _ := s.StringAttr("friendly_name")
	return name
}

// StringAttr returns a non-empty string attribute.
func (s State) StringAttr(name string) (string, bool) {
	v, ok := s.Attributes[name]
	if !ok || v == nil {
		return "", false
	}
	str, ok := v.(string)
	if !ok || str == "" {
		return "", false
	}
	return str, true
}

// DecodeList decodes a JSON array element by element. Elements that do not
// fit T are dropped and counted in skipped; only a body that is not an array
// is an error.
func DecodeList[T any](data []byte) (items []T, skipped int, err error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(data), &raws); err != nil {
		return nil, 0, fmt.Errorf("expected JSON array: %w", err)
	}

	items = make([]T, 0, len(raws))
	for _, raw := range raws {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			skipped++
			continue
		}
		items = append(items, item)
	}
	return items, skipped, nil
}
