package discovery

import (
	"net"
	"net/url"
	"strconv"
	"strings"

	errs "auto-monocle/internal/errors"
	"auto-monocle/pkg/models"
)

// StreamServerCandidates turns a go2rtc stream map into candidates keyed by
// stream name. Each stream contributes at most one candidate: its last
// producer whose URL uses one of tables.StreamSchemes.
func StreamServerCandidates(streams models.StreamList, tables Tables) []StreamCandidate {
	out := make([]StreamCandidate, 0, len(streams))
	for _, s := range streams {
		if s.Name == "" {
			continue
		}
		var rtsp string
		for _, u := range s.ProducerURLs() {
			if hasScheme(u, tables.StreamSchemes) {
				rtsp = u
			}
		}
		if rtsp != "" {
			out = append(out, StreamCandidate{Source: SourceStreamServer, Key: s.Name, URL: rtsp})
		}
	}
	return out
}

// NVR is the address of the UniFi Protect console found in the config entries.
type NVR struct {
	Host string
	Port int
}

// FindNVR returns the first config entry of tables.NVRDomain that carries a
// host. A missing port falls back to tables.NVRDefaultPort. Without such an
// entry it returns ErrNVRNotConfigured.
func FindNVR(entries []models.ConfigEntry, tables Tables) (NVR, error) {
	for _, e := range entries {
		if e.Domain != tables.NVRDomain {
			continue
		}
		host, ok := e.Host()
		if !ok {
			continue
		}
		port, ok := e.Port()
		if !ok {
			port = tables.NVRDefaultPort
		}
		return NVR{Host: host, Port: port}, nil
	}
	return NVR{}, errs.ErrNVRNotConfigured
}

// NVRCandidates builds one candidate per device name carrying an identifier
// in the NVR namespace. Devices sharing a name collapse into one candidate
// that keeps the first device's position and the last device's URL. Devices
// without a name or camera id are skipped.
func NVRCandidates(nvr NVR, devices []models.Device, tables Tables) []StreamCandidate {
	out := make([]StreamCandidate, 0)
	index := make(map[string]int)
	for _, d := range devices {
		cameraID, ok := d.IdentifierIn(tables.NVRDomain)
		if !ok {
			continue
		}
		name := d.DisplayName()
		if name == "" {
			continue
		}
		streamURL := nvr.StreamURL(tables.NVRScheme, cameraID)
		if i, seen := index[name]; seen {
			out[i].URL = streamURL
			continue
		}
		index[name] = len(out)
		out = append(out, StreamCandidate{
			Source: SourceNVRIntegration,
			Key:    name,
			URL:    streamURL,
		})
	}
	return out
}

// StreamURL formats the RTSP URL the console serves for cameraID.
func (n NVR) StreamURL(scheme, cameraID string) string {
	u := url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(n.Host, strconv.Itoa(n.Port)),
		Path:   "/" + cameraID,
	}
	return u.String()
}

// AttributeCandidate inspects tables.AttributeNames in order and returns the
// first value that is a non-empty string containing "://".
func AttributeCandidate(st models.State, tables Tables) (StreamCandidate, bool) {
	for _, name := range tables.AttributeNames {
		v, ok := st.StringAttr(name)
		if !ok || !strings.Contains(v, "://") {
			continue
		}
		return StreamCandidate{Source: SourceEntityAttribute, Key: st.EntityID, URL: v}, true
	}
	return StreamCandidate{}, false
}

// AttributeCandidates collects the attribute candidate of every catalog entity.
func AttributeCandidates(catalog []*CameraEntity, tables Tables) []StreamCandidate {
	out := make([]StreamCandidate, 0)
	for _, e := range catalog {
		if c, ok := AttributeCandidate(e.state, tables); ok {
			out = append(out, c)
		}
	}
	return out
}

func hasScheme(rawURL string, schemes []string) bool {
	i := strings.Index(rawURL, "://")
	if i <= 0 {
		return false
	}
	scheme := strings.ToLower(rawURL[:i])
	for _, s := range schemes {
		if scheme == s {
			return true
		}
	}
	return false
}
