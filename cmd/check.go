package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the options and the Home Assistant credential",
	Long: `Loads the options file, verifies that monocle_token and SUPERVISOR_TOKEN
are set, and calls the Home Assistant API once to confirm the credential is accepted.

Example:
  SUPERVISOR_TOKEN=... auto-monocle check --config ./options.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions()
		if err != nil {
			return err
		}

		// 1. Required values
		if err := opts.Validate(); err != nil {
			return err
		}
		fmt.Println("Options OK.")

		// 2. Credential against the API
		fmt.Printf("Contacting %s ...\n", opts.SupervisorURL)
		msg, err := newClient(opts).Ping(cmd.Context())
		if err != nil {
			return fmt.Errorf("home assistant API check failed: %w", err)
		}

		fmt.Printf("Home Assistant says: %s\n", msg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
