package discovery

import (
	"auto-monocle/pkg/models"
)

// Emit projects the bound entities into the Monocle config, keeping catalog
// order. The entities left out are returned so the caller can report them.
func Emit(catalog []*CameraEntity, tag string) (models.MonocleConfig, []*CameraEntity) {
	cfg := models.MonocleConfig{Cameras: make([]models.MonocleCamera, 0, len(catalog))}

	var unresolved []*CameraEntity
	for _, e := range catalog {
		if !e.Bound() {
			unresolved = append(unresolved, e)
			continue
		}
		cfg.Cameras = append(cfg.Cameras, models.MonocleCamera{
			Name: e.DisplayName,
			URL:  e.BoundURL,
			Tags: []string{tag},
		})
	}
	return cfg, unresolved
}
