package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "status [pod-name]",
		Short:        "Show the phase of a PAPR pod",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := GetLogger()
			name := args[0]

			b, err := newBackend()
			if err != nil {
				logger.Error("failed to create backend", "error", err)
				return err
			}

			ctx := cmd.Context()

			wait, _ := cmd.Flags().GetBool("wait")
			if wait {
				return b.WaitForPod(ctx, name, cmd.OutOrStdout())
			}

			phase, err := b.GetPodStatus(ctx, name)
			if err != nil {
				logger.Error("failed to get pod status", "pod", name, "error", err)
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), phase)
			return nil
		},
	}

	cmd.Flags().Bool("wait", false, "wait for the pod to finish and print its logs")

	return cmd
}
