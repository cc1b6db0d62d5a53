package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/plazar/ratings/pkg/composite"
	"github.com/plazar/ratings/pkg/database"
	"github.com/plazar/ratings/pkg/ratingtype"
	"github.com/plazar/ratings/pkg/report"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// reportCmd produces the composite-rating histogram report
//
//nolint:gochecknoglobals // Cobra commands are typically global
var reportCmd = &cobra.Command{
	Use:   "report [flags] <composite-rating expression>",
	Short: "Produce a histogram report for a composite rating",
	Long: `Compile a composite-rating expression into a candidate-database query and
plot its value distribution for all candidates and per human classification
bucket. The expression combines candidate fields c{field}, header fields
h{field} and stored ratings r{id}, for example:

  ratings report 'c{snr} * r{12} / h{nchan}'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringP("where", "w", composite.DefaultWhere,
		"where clause limiting the candidates selected (default: use all candidates)")
	reportCmd.Flags().IntP("numbins", "b", report.DefaultBins,
		"number of bins for the composite rating histogram")
	reportCmd.Flags().BoolP("norm", "n", false,
		"normalize each histogram so the area under the curve is 1")
	reportCmd.Flags().Bool("log", false,
		"use a log vertical axis")
}

func runReport(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cfg, err := LoadCLIConfig(cfgFile)
	if err != nil {
		return err
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return validationErr
	}

	whereFlag, _ := cmd.Flags().GetString("where")
	numbins, _ := cmd.Flags().GetInt("numbins")
	norm, _ := cmd.Flags().GetBool("norm")
	logScale, _ := cmd.Flags().GetBool("log")

	ratingString := strings.Join(args, " ")
	fmt.Printf("Input composite rating string: %s\n", ratingString)

	schema := &cfg.Schema
	canonical := schema.Rewrite(ratingString)
	fmt.Printf("Canonical composite rating string: %s\n", canonical)

	where := schema.Rewrite(whereFlag)
	fmt.Printf("Where clause: %s\n", where)

	tables := schema.ExtractTables(canonical + " " + where)
	fmt.Printf("Database tables to use: %s\n", strings.Join(tables, ", "))

	builder := composite.NewBuilder(schema)
	query := builder.Build(canonical, composite.Options{Where: where})
	fmt.Println("Query to compute composite rating:")
	fmt.Println(ratingtype.Fill(query, 72, "\t"))

	client, err := database.NewClient(logger, &cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := client.Stop(); closeErr != nil {
			logger.WithError(closeErr).Error("Failed to close database client")
		}
	}()

	ctx := context.Background()

	if err := client.Start(ctx); err != nil {
		return err
	}

	renderer := report.NewTerminalRenderer(logger, cmd.OutOrStdout())
	renderer.Interactive = term.IsTerminal(int(os.Stdout.Fd()))

	driver := report.NewDriver(logger, builder, client, renderer)

	return driver.Produce(ctx, canonical, report.Options{
		Where:     where,
		Bins:      numbins,
		Normalize: norm,
		LogScale:  logScale,
	})
}
