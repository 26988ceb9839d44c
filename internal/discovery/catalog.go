package discovery

import (
	"strings"
	"unicode"

	"auto-monocle/pkg/models"
)

// BuildCatalog selects the camera entities from states that pass filter, in
// state order. The filter sees the id and the friendly_name as reported; a
// derived default name is never matched. A repeated entity id keeps its
// first occurrence.
func BuildCatalog(states []models.State, filter Filter, tables Tables) []*CameraEntity {
	seen := make(map[string]bool)
	catalog := make([]*CameraEntity, 0)

	for _, st := range states {
		id := st.EntityID
		if !strings.HasPrefix(id, tables.CameraPrefix) || seen[id] {
			continue
		}

		friendly := st.FriendlyName()
		if !filter.Accepts(id, friendly) {
			continue
		}
		name := friendly
		if name == "" {
			name = DefaultDisplayName(id, tables.CameraPrefix)
		}
		seen[id] = true

		catalog = append(catalog, &CameraEntity{
			ID:           id,
			DisplayName:  name,
			NameVariants: NameVariants(id, name, tables.CameraPrefix),
			state:        st,
		})
	}
	return catalog
}

// NameVariants returns the case-folded match keys of an entity: the id, the
// id without its namespace, the display name and the stripped id with
// underscores read as spaces. Empty and duplicate keys are dropped.
func NameVariants(id, displayName, prefix string) []string {
	stripped := strings.TrimPrefix(id, prefix)
	raw := []string{
		id,
		stripped,
		displayName,
		strings.ReplaceAll(stripped, "_", " "),
	}

	variants := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, v := range raw {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		variants = append(variants, v)
	}
	return variants
}

// DefaultDisplayName derives a name from an entity id:
// "camera.front_door" becomes "Front Door".
func DefaultDisplayName(id, prefix string) string {
	return titleCase(strings.ReplaceAll(strings.TrimPrefix(id, prefix), "_", " "))
}

// titleCase upper-cases every letter that follows a non-letter and
// lower-cases the rest.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
