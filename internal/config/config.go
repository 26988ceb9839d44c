package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	errs "auto-monocle/internal/errors"
)

// DefaultOptionsPath is where the add-on supervisor mounts the user options.
const DefaultOptionsPath = "/data/options.json"

// Option keys as they appear in options.json.
const (
	KeyMonocleToken    = "monocle_token"
	KeyAutoDiscover    = "auto_discover"
	KeyCameraFilters   = "camera_filters"
	KeySupervisorToken = "supervisor_token"
	KeySupervisorURL   = "supervisor_url"
	KeyTokenPath       = "token_path"
	KeyConfigPath      = "config_path"
	KeyStreamEndpoints = "stream_endpoints"
	KeyNVRDefaultPort  = "nvr_default_port"
)

// DefaultStreamEndpoints are the go2rtc locations probed in order: the HA
// built-in proxy, standalone go2rtc, the HA alternate port and the docker
// network alias.
var DefaultStreamEndpoints = []string{
	"http://supervisor/core/api/go2rtc/streams",
	"http://localhost:1984/api/streams",
	"http://localhost:11984/api/streams",
	"http://homeassistant:1984/api/streams",
}

// Options is the resolved add-on configuration.
type Options struct {
	MonocleToken    string
	AutoDiscover    bool
	CameraFilters   []string
	SupervisorToken string
	SupervisorURL   string
	TokenPath       string
	ConfigPath      string
	StreamEndpoints []string
	NVRDefaultPort  int
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAutoDiscover, true)
	v.SetDefault(KeyCameraFilters, []string{})
	v.SetDefault(KeySupervisorURL, "http://supervisor/core")
	v.SetDefault(KeyTokenPath, "/etc/monocle/monocle.token")
	v.SetDefault(KeyConfigPath, "/etc/monocle/monocle.json")
	v.SetDefault(KeyStreamEndpoints, DefaultStreamEndpoints)
	v.SetDefault(KeyNVRDefaultPort, 7441)
}

// InitConfig reads the options file and environment into v. A missing file
// is not an error: every option then comes from defaults or the environment.
func InitConfig(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile == "" {
		cfgFile = DefaultOptionsPath
	}
	v.SetConfigFile(cfgFile)
	v.SetConfigType("json")

	v.AutomaticEnv()
	if err := v.BindEnv(KeySupervisorToken, "SUPERVISOR_TOKEN"); err != nil {
		return err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", cfgFile, err)
	}
	return nil
}

// Load converts the values held by v into Options. It does not validate.
func Load(v *viper.Viper) *Options {
	return &Options{
		MonocleToken:    v.GetString(KeyMonocleToken),
		AutoDiscover:    v.GetBool(KeyAutoDiscover),
		CameraFilters:   cleanList(v.GetStringSlice(KeyCameraFilters)),
		SupervisorToken: strings.TrimSpace(v.GetString(KeySupervisorToken)),
		SupervisorURL:   strings.TrimRight(v.GetString(KeySupervisorURL), "/"),
		TokenPath:       v.GetString(KeyTokenPath),
		ConfigPath:      v.GetString(KeyConfigPath),
		StreamEndpoints: cleanList(v.GetStringSlice(KeyStreamEndpoints)),
		NVRDefaultPort:  v.GetInt(KeyNVRDefaultPort),
	}
}

// Validate checks the two values without which nothing downstream is safe.
func (o *Options) Validate() error {
	if strings.TrimSpace(o.MonocleToken) == "" {
		return errs.WrapFatal(errs.ErrMissingToken, "config", "Validate", "option check")
	}
	if o.SupervisorToken == "" {
		return errs.WrapFatal(errs.ErrMissingCredential, "config", "Validate", "credential check")
	}
	return nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
