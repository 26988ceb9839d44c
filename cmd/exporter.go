package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/kardianos/service"
	"github.com/spf13/cobra"

	"auto-monocle/internal/discovery"
	"auto-monocle/internal/exporter"
)

var (
	expPort          string
	expScrapeTimeout time.Duration
	serviceAction    string // install, uninstall, start, stop
)

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Start the Prometheus discovery exporter",
	Long: `Starts a long-running HTTP server that runs camera discovery on every scrape
and exposes the outcome as metrics. Can be installed as a system service.

The installed unit does not carry SUPERVISOR_TOKEN. Provide it through the
service manager's environment (for example a systemd EnvironmentFile
readable only by root) so the credential never lands in the unit file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()

		opts, err := loadOptions()
		if err != nil {
			return err
		}

		// 1. Define Service Configuration
		svcConfig := exporterServiceConfig(cfgFile, expPort)

		// 2. Handle Service Control Actions
		if serviceAction != "" {
			s, err := service.New(exporter.NewProgram(":"+expPort, nil, log), svcConfig)
			if err != nil {
				return err
			}
			if err := service.Control(s, serviceAction); err != nil {
				return fmt.Errorf("failed to %s service: %w", serviceAction, err)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return nil
		}

		// 3. Run the Service (Blocking)
		d, err := setupDiscoverer(opts, log)
		if err != nil {
			return err
		}
		collector := exporter.NewCollector(d, discovery.Filter(opts.CameraFilters), expScrapeTimeout, log)
		prg := exporter.NewProgram(":"+expPort, collector, log)

		s, err := service.New(prg, svcConfig)
		if err != nil {
			return err
		}
		if err := s.Run(); err != nil {
			log.Error("service exited", "error", err)
			os.Exit(1)
		}
		return nil
	},
}

// exporterServiceConfig describes the installed service. It carries the
// options file and port only; credentials come from the service environment.
func exporterServiceConfig(cfgFile, port string) *service.Config {
	cfg := &service.Config{
		Name:        "auto-monocle-exporter",
		DisplayName: "Monocle Discovery Exporter",
		Description: "Exposes Home Assistant camera discovery metrics to Prometheus",
		Arguments:   []string{"exporter", "--port", port},
	}
	if cfgFile != "" {
		cfg.Arguments = append(cfg.Arguments, "--config", cfgFile)
	}
	return cfg
}

func init() {
	rootCmd.AddCommand(exporterCmd)
	exporterCmd.Flags().StringVar(&expPort, "port", "9100", "Port to listen on")
	exporterCmd.Flags().DurationVar(&expScrapeTimeout, "scrape-timeout", 60*time.Second, "Upper bound for one discovery run")
	exporterCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
}
