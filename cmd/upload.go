package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/plazar/ratings/pkg/database"
	"github.com/plazar/ratings/pkg/rater"
	"github.com/spf13/cobra"
)

// uploadCmd runs the side-effecting upload raters over pfd files
//
//nolint:gochecknoglobals // Cobra commands are typically global
var uploadCmd = &cobra.Command{
	Use:   "upload <pfd-file>...",
	Short: "Upload pfd files to the remote archive and record the upload rating",
	Long: `Run the upload rating over the named pfd data products. Each file's
candidate is looked up in the candidate database; the file is then uploaded
to the remote archive and the rating value recorded. Candidates that have
not themselves been uploaded yet are rejected before any transfer starts.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().Bool("share", false, "also copy each pfd file to the mirror host")
}

func runUpload(cmd *cobra.Command, args []string) error {
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

	archive, err := database.NewClient(logger, &cfg.Archive)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := archive.Stop(); closeErr != nil {
			logger.WithError(closeErr).Error("Failed to close archive client")
		}
	}()

	ctx := context.Background()

	if err := client.Start(ctx); err != nil {
		return err
	}
	if err := archive.Start(ctx); err != nil {
		return err
	}

	jobs := make([]rater.Job, 0, len(args))

	for _, path := range args {
		job, jobErr := lookupJob(ctx, client, cfg.Schema.CandidateTable, path)
		if jobErr != nil {
			return jobErr
		}

		jobs = append(jobs, job)
	}

	raters := []rater.Rater{rater.NewUploadRater(logger, archive, cfg.Upload)}

	if share, _ := cmd.Flags().GetBool("share"); share {
		raters = append(raters, rater.NewTransferRater(logger, cfg.Transfer))
	}

	runner := rater.NewRunner(logger, client)

	return runner.Run(ctx, raters, jobs)
}

// lookupJob resolves a pfd filename to its candidate row.
func lookupJob(ctx context.Context, client database.ClientInterface, candidateTable, path string) (rater.Job, error) {
	query := fmt.Sprintf("SELECT pdm_cand_id, cornell_pdm_cand_id FROM %s WHERE pfd_filename = '%s'",
		candidateTable, filepath.Base(path))

	rows, err := client.QueryRows(ctx, query)
	if err != nil {
		return rater.Job{}, fmt.Errorf("failed to look up candidate for %s: %w", path, err)
	}

	if len(rows) == 0 {
		return rater.Job{}, fmt.Errorf("no candidate found for %s", path)
	}

	cand := &rater.Candidate{}

	if id, ok := rows[0]["pdm_cand_id"].(int64); ok {
		cand.PdmCandID = id
	}

	if id, ok := rows[0]["cornell_pdm_cand_id"].(int64); ok {
		cand.CornellCandID = &id
	}

	return rater.Job{
		Candidate: cand,
		Product:   &rater.Product{Filename: path},
	}, nil
}
