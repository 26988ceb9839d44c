package models

import (
	"encoding/json"
	"strconv"
)

// --- Config Entry Models ---

// ConfigEntry is one integration entry from GET /api/config/config_entries/entry.
type ConfigEntry struct {
	EntryID string         `json:"entry_id,omitempty"`
	Domain  string         `json:"domain"`
	Title   string         `json:"title,omitempty"`
	Data    map[string]any `json:"data"`
}

// Host returns data.host when it is a non-empty string.
func (e ConfigEntry) Host() (string, bool) {
	host, ok := e.Data["host"].(string)
	return host, ok && host != ""
}

// Port returns data.port. Integrations store it either as a number or as a
// numeric string.
func (e ConfigEntry) Port() (int, bool) {
	switch v := e.Data["port"].(type) {
	case float64:
		if v > 0 && v == float64(int(v)) {
			return int(v), true
		}
	case json.Number:
		if n, err := v.Int64(); err == nil && n > 0 {
			return int(n), true
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}

// --- Device Registry Models ---

// Device is one entry of GET /api/config/device_registry.
type Device struct {
	ID          string `json:"id,omitempty"`
	Identifiers []any  `json:"identifiers"`
	Name        string `json:"name"`
	NameByUser  string `json:"name_by_user"`
}

// DisplayName prefers the user-assigned name over the integration one.
func (d Device) DisplayName() string {
	if d.NameByUser != "" {
		return d.NameByUser
	}
	return d.Name
}

// IdentifierIn returns the id of the first [namespace, id] identifier pair
// belonging to namespace.
func (d Device) IdentifierIn(namespace string) (string, bool) {
	for _, raw := range d.Identifiers {
		pair, ok := raw.([]any)
		if !ok || len(pair) < 2 {
			continue
		}
		ns, ok := pair[0].(string)
		if !ok || ns != namespace {
			continue
		}
		id, ok := pair[1].(string)
		if !ok || id == "" {
			continue
		}
		return id, true
	}
	return "", false
}
