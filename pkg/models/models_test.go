package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamList_PreservesOrder(t *testing.T) {
	body := `{
		"zeta": {"producers": [{"url": "rtsp://z/1"}]},
		"alpha": {"producers": [{"url": "rtsp://a/1"}, {"url": "ffmpeg:alpha#video=h264"}]},
		"mid": null
	}`

	var list StreamList
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	require.Len(t, list, 3)

	assert.Equal(t, "zeta", list[0].Name)
	assert.Equal(t, "alpha", list[1].Name)
	assert.Equal(t, "mid", list[2].Name)

	assert.Equal(t, []string{"rtsp://a/1", "ffmpeg:alpha#video=h264"}, list[1].ProducerURLs())
	assert.Empty(t, list[2].ProducerURLs())
}

func TestStreamList_RejectsNonObject(t *testing.T) {
	var list StreamList
	assert.Error(t, json.Unmarshal([]byte(`["a","b"]`), &list))
}

func TestStream_ProducerURLs_SkipsMalformed(t *testing.T) {
	s := Stream{
		Name: "porch",
		Info: json.RawMessage(`{"producers": ["bad", {"url": 42}, {}, {"url": "rtsp://ok"}]}`),
	}
	assert.Equal(t, []string{"rtsp://ok"}, s.ProducerURLs())
}

func TestDecodeList_SkipsBadElements(t *testing.T) {
	body := `[
		{"entity_id": "camera.porch", "attributes": {"friendly_name": "Porch"}},
		{"entity_id": 17},
		{"entity_id": "light.kitchen", "attributes": null}
	]`

	states, skipped, err := DecodeList[State]([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, states, 2)
	assert.Equal(t, "Porch", states[0].FriendlyName())
	assert.Equal(t, "", states[1].FriendlyName())

	_, _, err = DecodeList[State]([]byte(`{"message": "nope"}`))
	assert.Error(t, err)
}

func TestConfigEntry_Port(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
		want int
		ok   bool
	}{
		{"number", map[string]any{"port": float64(7441)}, 7441, true},
		{"string", map[string]any{"port": "7447"}, 7447, true},
		{"missing", map[string]any{}, 0, false},
		{"garbage", map[string]any{"port": "abc"}, 0, false},
		{"fraction", map[string]any{"port": 1.5}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port, ok := ConfigEntry{Data: tt.data}.Port()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, port)
		})
	}
}

func TestDevice_IdentifierIn(t *testing.T) {
	var d Device
	require.NoError(t, json.Unmarshal([]byte(`{
		"identifiers": [["mqtt", "x"], "junk", ["unifiprotect"], ["unifiprotect", "abc123"]],
		"name": "G4 Bullet",
		"name_by_user": "Garage"
	}`), &d))

	id, ok := d.IdentifierIn("unifiprotect")
	assert.True(t, ok)
	assert.Equal(t, "abc123", id)
	assert.Equal(t, "Garage", d.DisplayName())

	_, ok = d.IdentifierIn("hue")
	assert.False(t, ok)
}
