package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Create the secret and config map PAPR pods depend on",
		Long: `Set up a namespace for PAPR pods.
Creates (or updates) the GitHub token secret exposed to the pod as
GITHUB_TOKEN, and the config map mounted at /etc/papr.

Required inputs:
  --github-token or GITHUB_TOKEN - token PAPR uses to report commit statuses
  --config-file                  - PAPR configuration, stored as the 'config' key`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := GetLogger()
			logger.Info("setting up papr namespace")

			githubToken, _ := cmd.Flags().GetString("github-token")
			configFile, _ := cmd.Flags().GetString("config-file")

			if githubToken == "" {
				githubToken = os.Getenv("GITHUB_TOKEN")
			}
			if githubToken == "" {
				logger.Error("github token is required")
				return fmt.Errorf("github token is required: use --github-token flag or GITHUB_TOKEN env var")
			}

			config, err := os.ReadFile(configFile)
			if err != nil {
				logger.Error("failed to read papr config", "file", configFile, "error", err)
				return fmt.Errorf("failed to read papr config: %w", err)
			}

			settings, err := podSettings()
			if err != nil {
				return err
			}

			b, err := newBackend()
			if err != nil {
				logger.Error("failed to create backend", "error", err)
				return err
			}

			if err := b.Setup(cmd.Context(), settings, githubToken, config); err != nil {
				logger.Error("failed to setup backend", "error", err)
				return err
			}

			logger.Info("setup completed", "namespace", b.Namespace())
			return nil
		},
	}

	cmd.Flags().String("github-token", "", "GitHub token (defaults to GITHUB_TOKEN env var)")
	cmd.Flags().String("config-file", "", "path to the PAPR config file")
	mustMarkRequired(cmd, "config-file")

	return cmd
}
