package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auto-monocle/pkg/models"
)

func catalogOf(t *testing.T, states ...models.State) []*CameraEntity {
	t.Helper()
	return BuildCatalog(states, nil, DefaultTables())
}

func TestMatches_Rules(t *testing.T) {
	e := catalogOf(t, camState("camera.front_door", "Front Door Camera"))[0]

	tests := []struct {
		name string
		c    StreamCandidate
		want bool
	}{
		{"key inside id", StreamCandidate{Source: SourceStreamServer, Key: "front_door"}, true},
		{"key inside name case-folded", StreamCandidate{Source: SourceNVRIntegration, Key: "FRONT DOOR"}, true},
		{"variant inside key", StreamCandidate{Source: SourceStreamServer, Key: "front_door_hd"}, true},
		{"spaces vs underscores", StreamCandidate{Source: SourceNVRIntegration, Key: "Front Door"}, true},
		{"unrelated", StreamCandidate{Source: SourceStreamServer, Key: "garage"}, false},
		{"empty key", StreamCandidate{Source: SourceStreamServer, Key: ""}, false},
		{"attribute exact id", StreamCandidate{Source: SourceEntityAttribute, Key: "camera.front_door"}, true},
		{"attribute never fuzzy", StreamCandidate{Source: SourceEntityAttribute, Key: "camera.front"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.c, e, "camera."))
		})
	}
}

func TestResolvePass_CatalogOrderWinsTies(t *testing.T) {
	catalog := catalogOf(t,
		camState("camera.front_door", "Front Door"),
		camState("camera.back_door", "Back Door"),
	)

	bindings := ResolvePass(catalog, []StreamCandidate{
		{Source: SourceStreamServer, Key: "door", URL: "rtsp://a"},
	}, "camera.")

	require.Len(t, bindings, 1)
	assert.Equal(t, "camera.front_door", bindings[0].Entity.ID)
	assert.Equal(t, "rtsp://a", catalog[0].BoundURL)
	assert.False(t, catalog[1].Bound())
}

func TestResolvePass_FirstCandidateWinsForEntity(t *testing.T) {
	catalog := catalogOf(t, camState("camera.porch", "Porch"))

	bindings := ResolvePass(catalog, []StreamCandidate{
		{Source: SourceStreamServer, Key: "porch", URL: "rtsp://first"},
		{Source: SourceStreamServer, Key: "porch_sub", URL: "rtsp://second"},
	}, "camera.")

	require.Len(t, bindings, 1)
	assert.Equal(t, "rtsp://first", catalog[0].BoundURL)
}

func TestResolvePass_CandidateBindsAtMostOneEntity(t *testing.T) {
	catalog := catalogOf(t,
		camState("camera.door_1", "Door 1"),
		camState("camera.door_2", "Door 2"),
	)

	candidates := []StreamCandidate{
		{Source: SourceStreamServer, Key: "door", URL: "rtsp://a"},
		{Source: SourceStreamServer, Key: "door", URL: "rtsp://b"},
		{Source: SourceStreamServer, Key: "door", URL: "rtsp://c"},
	}
	bindings := ResolvePass(catalog, candidates, "camera.")

	require.Len(t, bindings, 2)
	assert.Equal(t, "rtsp://a", catalog[0].BoundURL)
	assert.Equal(t, "rtsp://b", catalog[1].BoundURL)

	seen := map[*CameraEntity]bool{}
	for _, b := range bindings {
		assert.False(t, seen[b.Entity])
		seen[b.Entity] = true
	}
}

func TestResolvePass_BoundEntitiesAreNeverOverwritten(t *testing.T) {
	catalog := catalogOf(t, camState("camera.garage", "Garage"))

	ResolvePass(catalog, []StreamCandidate{{Source: SourceStreamServer, Key: "garage", URL: "rtsp://go2rtc/garage"}}, "camera.")
	again := ResolvePass(catalog, []StreamCandidate{{Source: SourceNVRIntegration, Key: "Garage", URL: "rtsps://nvr/abc"}}, "camera.")

	assert.Empty(t, again)
	assert.Equal(t, "rtsp://go2rtc/garage", catalog[0].BoundURL)
	assert.Equal(t, SourceStreamServer, catalog[0].BoundSource)
}

func TestResolvePass_SkipsMalformedCandidates(t *testing.T) {
	catalog := catalogOf(t, camState("camera.garage", "Garage"))

	bindings := ResolvePass(catalog, []StreamCandidate{
		{Source: SourceStreamServer, Key: "garage", URL: ""},
		{Source: SourceStreamServer, Key: "", URL: "rtsp://x"},
	}, "camera.")

	assert.Empty(t, bindings)
	assert.False(t, catalog[0].Bound())
}

// An earlier entity with an overlapping name absorbs a candidate meant for a
// later one. This is the accepted first-match behaviour.
func TestResolvePass_OverlappingNamesFirstMatchWins(t *testing.T) {
	catalog := catalogOf(t,
		camState("camera.garage", "Garage"),
		camState("camera.garage_side", "Garage Side"),
	)

	ResolvePass(catalog, []StreamCandidate{
		{Source: SourceStreamServer, Key: "garage_side", URL: "rtsp://side"},
	}, "camera.")

	assert.Equal(t, "rtsp://side", catalog[0].BoundURL)
	assert.False(t, catalog[1].Bound())
}

func TestBind_Atomic(t *testing.T) {
	e := &CameraEntity{ID: "camera.x"}

	assert.False(t, e.Bind("", SourceStreamServer))
	assert.False(t, e.Bind("rtsp://x", SourceNone))
	assert.False(t, e.Bound())
	assert.Equal(t, SourceNone, e.BoundSource)

	assert.True(t, e.Bind("rtsp://x", SourceNVRIntegration))
	assert.False(t, e.Bind("rtsp://y", SourceStreamServer))
	assert.Equal(t, "rtsp://x", e.BoundURL)
	assert.Equal(t, SourceNVRIntegration, e.BoundSource)
}

func TestEmit(t *testing.T) {
	catalog := catalogOf(t,
		camState("camera.b", "Bee"),
		camState("camera.a", "Ay"),
		camState("camera.c", "Sea"),
	)
	catalog[0].Bind("rtsp://b", SourceStreamServer)
	catalog[2].Bind("rtsp://c", SourceEntityAttribute)

	cfg, unresolved := Emit(catalog, "@proxy")
	assert.Equal(t, []models.MonocleCamera{
		{Name: "Bee", URL: "rtsp://b", Tags: []string{"@proxy"}},
		{Name: "Sea", URL: "rtsp://c", Tags: []string{"@proxy"}},
	}, cfg.Cameras)
	require.Len(t, unresolved, 1)
	assert.Equal(t, "camera.a", unresolved[0].ID)
}

func TestEmit_EmptyCatalogGivesEmptyList(t *testing.T) {
	cfg, unresolved := Emit(nil, "@proxy")
	assert.NotNil(t, cfg.Cameras)
	assert.Empty(t, cfg.Cameras)
	assert.Empty(t, unresolved)
}
