package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inajphotography/visionboard/internal/board"
	"github.com/inajphotography/visionboard/internal/config"
	"github.com/inajphotography/visionboard/internal/images"
	"github.com/inajphotography/visionboard/internal/submission"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newRenderCmd() *cobra.Command {
	var inputPath string
	var outputPath string
	var layoutName string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a vision board PDF from a submission file",
		Long: `Render a vision board PDF offline, without sending any email.

The input file holds the same fields as the submit endpoint body
(name, email, selections, intentions) as JSON or YAML. Selection images
are downloaded from their imageUrl.`,
		Example: `  # Render a board from a JSON submission
  visionboard render --input submission.json --output board.pdf

  # Use the landscape layout with a YAML submission
  visionboard render --input submission.yaml --layout landscape`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			layout, err := board.LayoutByName(layoutName)
			if err != nil {
				return err
			}

			req, err := loadRequest(inputPath)
			if err != nil {
				return err
			}
			if err := req.Validate(); err != nil {
				return fmt.Errorf("invalid submission in %s: %w", inputPath, err)
			}

			sub := req.Submission(uuid.NewString(), time.Now())
			renderer := board.NewRenderer(images.NewFetcher(cfg.ImageFetchTimeout), layout)

			doc, err := renderer.Render(cmd.Context(), sub)
			if err != nil {
				return err
			}

			if err := os.WriteFile(outputPath, doc, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outputPath, err)
			}

			slog.Info("Vision board written", "output", outputPath, "bytes", len(doc), "layout", layout.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Submission file (.json, .yaml or .yml) (required)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "vision-board.pdf", "Where to write the PDF")
	cmd.Flags().StringVar(&layoutName, "layout", config.DefaultBoardLayout, "Board layout: classic or landscape")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func loadRequest(path string) (submission.Request, error) {
	var req submission.Request

	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &req)
	default:
		err = json.Unmarshal(data, &req)
	}
	if err != nil {
		return req, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return req, nil
}
