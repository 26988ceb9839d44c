package discovery

import (
	"strings"

	"auto-monocle/pkg/models"
)

// CameraEntity is a Home Assistant camera taking part in one discovery run.
type CameraEntity struct {
	ID           string
	DisplayName  string
	NameVariants []string

	// BoundURL and BoundSource are set together by Bind and never change
	// afterwards.
	BoundURL    string
	BoundSource SourceKind

	state models.State
}

// Bound reports whether a stream URL has been assigned.
func (e *CameraEntity) Bound() bool {
	return e.BoundURL != ""
}

// Bind assigns url from source. It refuses empty URLs and entities that are
// already bound, so the first successful source always wins.
func (e *CameraEntity) Bind(url string, source SourceKind) bool {
	if e.Bound() || url == "" || source == SourceNone {
		return false
	}
	e.BoundURL = url
	e.BoundSource = source
	return true
}

// StreamCandidate is one source's offer of a playable URL.
type StreamCandidate struct {
	Source SourceKind
	Key    string
	URL    string
}

// Filter is the camera_filters allow-list. An empty filter accepts everything.
type Filter []string

// Accepts reports whether any filter term is a case-insensitive substring of
// id or name.
func (f Filter) Accepts(id, name string) bool {
	id, name = strings.ToLower(id), strings.ToLower(name)

	active := false
	for _, term := range f {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		active = true
		if strings.Contains(id, term) || strings.Contains(name, term) {
			return true
		}
	}
	return !active
}
