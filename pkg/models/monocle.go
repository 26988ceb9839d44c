package models

// MonocleConfig is the document read by the Monocle Gateway from monocle.json.
type MonocleConfig struct {
	Cameras []MonocleCamera `json:"cameras"`
}

// MonocleCamera is a single proxied camera.
type MonocleCamera struct {
	Name string   `json:"name"`
	URL  string   `json:"url"`
	Tags []string `json:"tags"`
}
