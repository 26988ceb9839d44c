package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auto-monocle/internal/discovery"
	errs "auto-monocle/internal/errors"
	"auto-monocle/pkg/models"
)

// useOptions points the command layer at a fresh options file.
func useOptions(t *testing.T, opts map[string]any) (tokenPath, configPath string) {
	t.Helper()
	dir := t.TempDir()
	tokenPath = filepath.Join(dir, "monocle", "monocle.token")
	configPath = filepath.Join(dir, "monocle", "monocle.json")
	opts["token_path"] = tokenPath
	opts["config_path"] = configPath

	data, err := json.Marshal(opts)
	require.NoError(t, err)
	optionsPath := filepath.Join(dir, "options.json")
	require.NoError(t, os.WriteFile(optionsPath, data, 0o600))

	viper.Reset()
	t.Cleanup(viper.Reset)
	prev := cfgFile
	cfgFile = optionsPath
	t.Cleanup(func() { cfgFile = prev })
	return tokenPath, configPath
}

func testCommand() *cobra.Command {
	c := &cobra.Command{}
	c.SetContext(context.Background())
	return c
}

func readConfig(t *testing.T, path string) models.MonocleConfig {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var cfg models.MonocleConfig
	require.NoError(t, json.Unmarshal(data, &cfg))
	return cfg
}

func TestRunDiscover_AutoDiscoverDisabled(t *testing.T) {
	t.Setenv("SUPERVISOR_TOKEN", "sup-token")
	tokenPath, configPath := useOptions(t, map[string]any{
		"monocle_token": "mono-123 ",
		"auto_discover": false,
	})

	require.NoError(t, runDiscover(testCommand(), nil))

	token, err := os.ReadFile(tokenPath)
	require.NoError(t, err)
	assert.Equal(t, "mono-123 ", string(token))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cameras": []}`, string(data))
}

func TestRunDiscover_MissingMonocleTokenWritesNothing(t *testing.T) {
	t.Setenv("SUPERVISOR_TOKEN", "sup-token")
	tokenPath, configPath := useOptions(t, map[string]any{})

	err := runDiscover(testCommand(), nil)
	require.Error(t, err)
	assert.True(t, errs.IsFatal(err))
	assert.ErrorIs(t, err, errs.ErrMissingToken)

	assert.NoFileExists(t, tokenPath)
	assert.NoFileExists(t, configPath)
}

func TestRunDiscover_MissingCredentialIsFatal(t *testing.T) {
	t.Setenv("SUPERVISOR_TOKEN", "")
	_, configPath := useOptions(t, map[string]any{"monocle_token": "mono-123"})

	err := runDiscover(testCommand(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrMissingCredential)
	assert.NoFileExists(t, configPath)
}

func TestRunDiscover_EndToEnd(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/states", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sup-token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[
			{"entity_id": "camera.front_door", "state": "idle", "attributes": {"friendly_name": "Front Door"}},
			{"entity_id": "camera.garage", "state": "idle", "attributes": {"stream_source": "rtsp://10.0.0.9/garage"}},
			{"entity_id": "camera.attic", "state": "idle", "attributes": {}},
			{"entity_id": "light.kitchen", "state": "on", "attributes": {}}
		]`))
	})
	mux.HandleFunc("/api/config/config_entries/entry", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	mux.HandleFunc("/api/streams", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"front_door": {"producers": [{"url": "rtsp://10.0.0.5:554/live"}]}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	t.Setenv("SUPERVISOR_TOKEN", "sup-token")
	_, configPath := useOptions(t, map[string]any{
		"monocle_token":    "mono-123",
		"supervisor_url":   srv.URL,
		"stream_endpoints": []string{srv.URL + "/api/streams"},
	})

	require.NoError(t, runDiscover(testCommand(), nil))

	cfg := readConfig(t, configPath)
	require.Len(t, cfg.Cameras, 2)
	assert.Equal(t, models.MonocleCamera{
		Name: "Front Door", URL: "rtsp://10.0.0.5:554/live", Tags: []string{"@proxy"},
	}, cfg.Cameras[0])
	assert.Equal(t, models.MonocleCamera{
		Name: "Garage", URL: "rtsp://10.0.0.9/garage", Tags: []string{"@proxy"},
	}, cfg.Cameras[1])
}

func TestPrintCameras(t *testing.T) {
	bound := &discovery.CameraEntity{ID: "camera.front_door", DisplayName: "Front Door"}
	require.True(t, bound.Bind("rtsp://h/1", discovery.SourceStreamServer))
	unbound := &discovery.CameraEntity{ID: "camera.attic", DisplayName: "Attic"}
	entities := []*discovery.CameraEntity{bound, unbound}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printCameras(&buf, entities, false))
		out := buf.String()
		assert.Contains(t, out, "ENTITY ID")
		assert.Contains(t, out, "rtsp://h/1")
		assert.Contains(t, out, "stream_server")
		assert.Contains(t, out, "none")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, printCameras(&buf, entities, true))
		assert.JSONEq(t, `[
			{"entity_id": "camera.front_door", "name": "Front Door", "source": "stream_server", "url": "rtsp://h/1"},
			{"entity_id": "camera.attic", "name": "Attic", "source": "none"}
		]`, buf.String())
	})
}

func TestPrintStreams(t *testing.T) {
	var streams models.StreamList
	require.NoError(t, json.Unmarshal([]byte(`{
		"porch": {"producers": [{"url": "ffmpeg:thing"}, {"url": "rtsps://nvr/porch"}]},
		"hls_only": {"producers": [{"url": "https://cam/hls.m3u8"}]}
	}`), &streams))

	var buf bytes.Buffer
	require.NoError(t, printStreams(&buf, streams, discovery.DefaultTables(), true))
	assert.JSONEq(t, `[
		{"name": "porch", "url": "rtsps://nvr/porch"},
		{"name": "hls_only"}
	]`, buf.String())
}

func TestErrorPrefix(t *testing.T) {
	assert.Equal(t, "Fatal:", errorPrefix(errs.WrapFatal(errs.ErrMissingToken, "config", "Validate", "option check")))
	assert.Equal(t, "Error:", errorPrefix(errs.WrapDegraded(errs.ErrNoStreamServer, "client", "ProbeStreams", "probe")))
}

func TestExporterServiceConfig_CarriesNoCredential(t *testing.T) {
	t.Setenv("SUPERVISOR_TOKEN", "sup-token")

	cfg := exporterServiceConfig("/data/options.json", "9200")
	assert.Equal(t, []string{"exporter", "--port", "9200", "--config", "/data/options.json"}, cfg.Arguments)
	assert.Empty(t, cfg.EnvVars)
	assert.NotContains(t, cfg.Arguments, "sup-token")

	cfg = exporterServiceConfig("", "9100")
	assert.Equal(t, []string{"exporter", "--port", "9100"}, cfg.Arguments)
}
