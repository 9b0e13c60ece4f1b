package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/checkdk/checkdk/internal/adapters/outbound/config"
)

func newInitCmd() *cobra.Command {
	var (
		provider string
		model    string
		noAI     bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize checkdk configuration",
		Long:  "Write ~/.checkdk/config.yaml with the chosen AI provider settings.",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.New()
			settings, err := loader.Load()
			if err != nil {
				return fmt.Errorf("loading existing configuration: %w", err)
			}

			if provider != "" {
				settings.AI.Provider = provider
			}
			if model != "" {
				settings.AI.Model = model
			}
			settings.AI.Enabled = !noAI

			if err := settings.Validate(); err != nil {
				return err
			}
			if err := loader.Save(settings); err != nil {
				return fmt.Errorf("saving configuration: %w", err)
			}

			path, _ := loader.Path()
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Configuration saved to: %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&provider, "provider", "", "Preferred AI provider (groq or gemini)")
	cmd.Flags().StringVar(&model, "model", "", "Model identifier for the preferred provider")
	cmd.Flags().BoolVar(&noAI, "no-ai", false, "Disable AI-assisted fixes")

	return cmd
}
