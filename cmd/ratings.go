package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/plazar/ratings/pkg/database"
	"github.com/plazar/ratings/pkg/ratingtype"
	"github.com/spf13/cobra"
)

// listCmd lists the available rating types
//
//nolint:gochecknoglobals // Cobra commands are typically global
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the rating types available in the database",
	RunE:  runList,
}

// describeCmd prints the full description of one rating type
//
//nolint:gochecknoglobals // Cobra commands are typically global
var describeCmd = &cobra.Command{
	Use:   "describe <rating-id>",
	Short: "Describe the rating type with the given ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runDescribe,
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(describeCmd)
}

func withRatingTypeStore(cmd *cobra.Command, fn func(ctx context.Context, store *ratingtype.Store) error) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	cfg, err := LoadCLIConfig(cfgFile)
	if err != nil {
		return err
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return validationErr
	}

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

	return fn(ctx, ratingtype.NewStore(logger, client))
}

func runList(cmd *cobra.Command, _ []string) error {
	return withRatingTypeStore(cmd, func(ctx context.Context, store *ratingtype.Store) error {
		types, err := store.List(ctx)
		if err != nil {
			return err
		}

		for _, rt := range types {
			fmt.Fprintln(cmd.OutOrStdout(), ratingtype.Format(rt, false))
		}

		return nil
	})
}

func runDescribe(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid rating id %q: %w", args[0], err)
	}

	return withRatingTypeStore(cmd, func(ctx context.Context, store *ratingtype.Store) error {
		types, err := store.Get(ctx, id)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), ratingtype.Format(types[0], true))

		return nil
	})
}
