package main

import (
	"github.com/spf13/cobra"

	"github.com/JaimeStill/palmer/internal/client"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show service health",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		h, err := newClient().Health(cmd.Context())
		if err != nil {
			return err
		}
		client.RenderHealth(cmd.OutOrStdout(), h)
		return nil
	},
}
