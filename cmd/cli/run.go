package cli

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sellerkit/sellerkit/internal/initialization"
	"github.com/sellerkit/sellerkit/internal/tabular"
)

func NewRunCommand(container *initialization.Container) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "run <input.xlsx>",
		Short: "Enrich a product workbook on disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnrichment(cmd.Context(), container, args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "enriched.xlsx", "Output file path")

	return cmd
}

func runEnrichment(ctx context.Context, container *initialization.Container, input, output string) error {
	rows, err := tabular.ReadSeedRows(input)
	if err != nil {
		return err
	}

	enriched, counts, err := container.Pipeline.Process(ctx, rows)
	if err != nil {
		return err
	}

	if err := tabular.WriteEnriched(output, enriched); err != nil {
		return err
	}

	log.Info().Str("output", output).Msg("wrote enriched workbook")
	fmt.Printf("Enriched %d rows (%d succeeded, %d failed) -> %s\n",
		counts.Total, counts.Succeeded, counts.Failed, output)
	return nil
}
