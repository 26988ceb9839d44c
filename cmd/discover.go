package cmd

import (
	"github.com/spf13/cobra"

	"auto-monocle/internal/discovery"
	"auto-monocle/internal/monocle"
	"auto-monocle/pkg/models"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover cameras and write the Monocle configuration",
	Long: `Writes the Monocle token file, discovers camera streams from go2rtc, UniFi
Protect and camera entity attributes, and writes monocle.json.

With auto_discover disabled an empty camera list is written.`,
	RunE: runDiscover,
}

func runDiscover(cmd *cobra.Command, _ []string) error {
	log := newLogger()

	opts, err := loadOptions()
	if err != nil {
		log.Error("could not load options", "error", err)
		return err
	}
	if err := opts.Validate(); err != nil {
		log.Error("refusing to start", "error", err)
		return err
	}

	log.Info("starting camera discovery")
	if err := monocle.WriteToken(opts.TokenPath, opts.MonocleToken); err != nil {
		return err
	}
	log.Info("wrote Monocle token file", "path", opts.TokenPath)

	cfg := models.MonocleConfig{Cameras: []models.MonocleCamera{}}
	if opts.AutoDiscover {
		d, err := setupDiscoverer(opts, log)
		if err != nil {
			return err
		}
		res := d.Run(cmd.Context(), discovery.Filter(opts.CameraFilters))

		var unresolved []*discovery.CameraEntity
		cfg, unresolved = discovery.Emit(res.Entities, tablesFor(opts).ProxyTag)
		for _, c := range cfg.Cameras {
			log.Info("added to Monocle", "name", c.Name)
		}
		for _, e := range unresolved {
			log.Warn("skipping camera, no RTSP URL", "name", e.DisplayName, "entity_id", e.ID)
		}
		log.Info("discovery summary",
			"discovered", res.Discovered(),
			"resolved", res.Resolved(),
			"unresolved", len(unresolved))
	} else {
		log.Info("auto-discovery disabled")
	}

	if err := monocle.WriteConfig(opts.ConfigPath, cfg); err != nil {
		return err
	}
	log.Info("wrote Monocle config", "path", opts.ConfigPath, "cameras", len(cfg.Cameras))
	log.Info("camera discovery complete")
	return nil
}

func init() {
	rootCmd.AddCommand(discoverCmd)
}
