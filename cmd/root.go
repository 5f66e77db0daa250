package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "visionboard",
		Short: "Emotional vision board funnel for Ina J Photography",
		Long: `Visionboard runs the lead-generation funnel behind the emotional vision board.

Visitors pick 4 to 8 gallery photos, annotate them, answer a few intention
questions and leave their contact details. The server renders a personalised
PDF board, emails it to the visitor, notifies the business and records the
contact in the CRM.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newRenderCmd())
	cmd.AddCommand(newGalleryCmd())
	cmd.AddCommand(newWizardCmd())

	return cmd
}
