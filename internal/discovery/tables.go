package discovery

// SourceKind identifies where a stream URL came from. The numeric order is
// the resolution priority, highest first.
type SourceKind int

const (
	SourceNone SourceKind = iota
	SourceStreamServer
	SourceNVRIntegration
	SourceEntityAttribute
)

// PassOrder is the fixed resolution priority.
var PassOrder = []SourceKind{SourceStreamServer, SourceNVRIntegration, SourceEntityAttribute}

func (k SourceKind) String() string {
	switch k {
	case SourceStreamServer:
		return "stream_server"
	case SourceNVRIntegration:
		return "nvr_integration"
	case SourceEntityAttribute:
		return "entity_attribute"
	default:
		return "none"
	}
}

// Tables holds the static lookup data used by the catalog builder and the
// normalizer. Tests override individual fields.
type Tables struct {
	// CameraPrefix is the entity namespace of cameras.
	CameraPrefix string
	// StreamSchemes are the URL schemes accepted from stream server producers.
	StreamSchemes []string
	// AttributeNames are inspected in order on each camera entity.
	AttributeNames []string
	// NVRDomain is both the config entry domain and the device identifier
	// namespace of the NVR integration.
	NVRDomain      string
	NVRScheme      string
	NVRDefaultPort int
	// ProxyTag is attached to every emitted camera.
	ProxyTag string
}

func DefaultTables() Tables {
	return Tables{
		CameraPrefix:   "camera.",
		StreamSchemes:  []string{"rtsp", "rtsps", "rtspx"},
		AttributeNames: []string{"stream_source", "rtsp_url", "video_url", "stream_url", "rtsp_stream"},
		NVRDomain:      "unifiprotect",
		NVRScheme:      "rtsps",
		NVRDefaultPort: 7441,
		ProxyTag:       "@proxy",
	}
}
