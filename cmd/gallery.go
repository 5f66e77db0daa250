package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/inajphotography/visionboard/internal/gallery"
	"github.com/inajphotography/visionboard/internal/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newGalleryCmd() *cobra.Command {
	var filters gallery.Filters
	var format string

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Print the gallery catalog",
		Long:  `Print the images offered in the browse step, optionally filtered by mood, setting and style.`,
		Example: `  # All images as YAML
  visionboard gallery

  # Candid beach photos as JSON
  visionboard gallery --setting Beach --style Candid --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := gallery.Default()
			if err != nil {
				return err
			}

			out := struct {
				Images []models.Image `json:"images" yaml:"images"`
				Facets gallery.Facets `json:"facets" yaml:"facets"`
			}{
				Images: catalog.Filter(filters),
				Facets: catalog.Facets(),
			}

			w := cmd.OutOrStdout()
			switch format {
			case "json":
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			case "yaml":
				enc := yaml.NewEncoder(w)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(out)
			default:
				return fmt.Errorf("unknown format %q (expected yaml or json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&filters.Mood, "mood", "", "Only images with this mood")
	cmd.Flags().StringVar(&filters.Setting, "setting", "", "Only images with this setting")
	cmd.Flags().StringVar(&filters.Style, "style", "", "Only images with this style")
	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml or json")

	return cmd
}
