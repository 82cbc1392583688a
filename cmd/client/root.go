package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/palmer/internal/client"
)

var rootFlags struct {
	baseURL string
	timeout time.Duration
	samples string
	models  []string
}

var rootCmd = &cobra.Command{
	Use:          "palmer-client",
	Short:        "Exercise a Palmer prediction service",
	Long:         "Checks service health, then sends each sample penguin to each model\nand prints the predictions.",
	SilenceUsage: true,
	RunE:         runSweep,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.baseURL, "base-url", client.DefaultBaseURL, "Service base URL")
	pf.DurationVar(&rootFlags.timeout, "timeout", 10*time.Second, "Per-request timeout")

	f := rootCmd.Flags()
	f.StringVar(&rootFlags.samples, "samples", "", "YAML file of sample records (default: built-in penguins)")
	f.StringSliceVar(&rootFlags.models, "model", nil, "Model to query, repeatable (default: every served model)")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(modelsCmd)
}

func newClient() *client.Client {
	return client.New(rootFlags.baseURL, rootFlags.timeout)
}

func runSweep(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	c := newClient()

	h, err := c.Health(ctx)
	if err != nil {
		return fmt.Errorf("health check: %w", err)
	}
	client.RenderHealth(out, h)

	samples := client.DefaultSamples()
	if rootFlags.samples != "" {
		if samples, err = client.LoadSamples(rootFlags.samples); err != nil {
			return err
		}
	}

	models := rootFlags.models
	if len(models) == 0 {
		if models, err = c.Models(ctx); err != nil {
			return fmt.Errorf("list models: %w", err)
		}
	}

	fmt.Fprintf(out, "\nSending %d samples to %d models\n", len(samples), len(models))
	client.RenderResults(out, client.Sweep(ctx, c, models, samples))
	return nil
}
