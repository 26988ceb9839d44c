package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"auto-monocle/internal/client"
	"auto-monocle/internal/config"
	"auto-monocle/internal/discovery"
	errs "auto-monocle/internal/errors"
	"auto-monocle/internal/logging"
)

// newLogger builds the process logger from the persistent flags.
func newLogger() *slog.Logger {
	level, err := logging.ParseLevel(logLevel)
	log := logging.New(os.Stderr, level, logging.Format(logFormat))
	if err != nil {
		log.Warn("falling back to info level", "error", err)
	}
	return log
}

// loadOptions reads the options file and environment into the global viper
// instance. A malformed options file is fatal.
func loadOptions() (*config.Options, error) {
	if err := config.InitConfig(viper.GetViper(), cfgFile); err != nil {
		return nil, errs.WrapFatal(err, "cmd", "loadOptions", "options load")
	}
	return config.Load(viper.GetViper()), nil
}

func newClient(opts *config.Options) *client.HAClient {
	return client.New(client.ClientConfig{
		BaseURL:         opts.SupervisorURL,
		Token:           opts.SupervisorToken,
		StreamEndpoints: opts.StreamEndpoints,
	})
}

func tablesFor(opts *config.Options) discovery.Tables {
	tables := discovery.DefaultTables()
	if opts.NVRDefaultPort > 0 {
		tables.NVRDefaultPort = opts.NVRDefaultPort
	}
	return tables
}

// setupDiscoverer validates the credential and wires a Discoverer to the
// Home Assistant client.
func setupDiscoverer(opts *config.Options, log *slog.Logger) (*discovery.Discoverer, error) {
	if opts.SupervisorToken == "" {
		return nil, errs.WrapFatal(errs.ErrMissingCredential, "cmd", "setupDiscoverer", "credential check")
	}
	return discovery.New(newClient(opts), tablesFor(opts), log), nil
}
