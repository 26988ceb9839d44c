package discovery

import (
	"strings"
)

// Binding records one successful candidate-to-entity assignment.
type Binding struct {
	Candidate StreamCandidate
	Entity    *CameraEntity
}

// Matches applies the fuzzy rules, in order, between a candidate key and an
// entity. For EntityAttribute candidates the key is the entity's own id and
// only an exact id match counts.
func Matches(c StreamCandidate, e *CameraEntity, prefix string) bool {
	if c.Source == SourceEntityAttribute {
		return c.Key == e.ID
	}

	key := strings.ToLower(c.Key)
	if key == "" {
		return false
	}

	// 1. key inside a variant
	for _, v := range e.NameVariants {
		if strings.Contains(v, key) {
			return true
		}
	}
	// 2. variant inside the key
	for _, v := range e.NameVariants {
		if v != "" && strings.Contains(key, v) {
			return true
		}
	}
	// 3. exact stripped id
	return c.Key == strings.TrimPrefix(e.ID, prefix)
}

// ResolvePass offers candidates, in order, to the still unbound entities in
// catalog order. Each candidate binds at most one entity, the first that
// matches. Candidates with an empty key or URL are skipped.
func ResolvePass(catalog []*CameraEntity, candidates []StreamCandidate, prefix string) []Binding {
	var bindings []Binding
	for _, c := range candidates {
		if c.Key == "" || c.URL == "" {
			continue
		}
		for _, e := range catalog {
			if e.Bound() || !Matches(c, e, prefix) {
				continue
			}
			if e.Bind(c.URL, c.Source) {
				bindings = append(bindings, Binding{Candidate: c, Entity: e})
			}
			break
		}
	}
	return bindings
}
