package rater

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/plazar/ratings/pkg/database"
	"github.com/sirupsen/logrus"
)

// UploadConfig names the remote archive's plot-loader procedure
type UploadConfig struct {
	PlotLoaderProc string `yaml:"plotLoaderProc"`
	PlotType       string `yaml:"plotType"`
}

// SetDefaults sets default values for the upload configuration
func (c *UploadConfig) SetDefaults() {
	if c.PlotLoaderProc == "" {
		c.PlotLoaderProc = "spPDMCandPlotLoader"
	}

	if c.PlotType == "" {
		c.PlotType = "pfd binary"
	}
}

// UploadRater uploads a candidate's pfd file to the remote archive as a
// side effect and records value 1 on success. The candidate must already
// exist remotely (CornellCandID set) or the rating fails fast without
// touching the archive.
type UploadRater struct {
	log    logrus.FieldLogger
	client database.ClientInterface
	cfg    UploadConfig
}

// NewUploadRater creates an upload rater against the archive's database
// client.
func NewUploadRater(logger *logrus.Logger, client database.ClientInterface, cfg UploadConfig) *UploadRater {
	cfg.SetDefaults()

	return &UploadRater{
		log:    logger.WithField("component", "upload-rater"),
		client: client,
		cfg:    cfg,
	}
}

// Name implements Rater.
func (r *UploadRater) Name() string { return "Upload Rating" }

// Version implements Rater.
func (r *UploadRater) Version() int { return 0 }

// Description implements Rater.
func (r *UploadRater) Description() string {
	return "Is .pfd file uploaded to the remote archive? Uploads file as side-effect."
}

// Rate uploads the pfd file through the archive's plot-loader procedure.
func (r *UploadRater) Rate(ctx context.Context, _ *Header, cand *Candidate, prod *Product) (float64, error) {
	if cand.CornellCandID == nil {
		return 0, fmt.Errorf("%w: candidate %d", ErrMissingPrerequisite, cand.PdmCandID)
	}

	data, err := os.ReadFile(prod.Filename)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrProductMissing, prod.Filename)
		}

		return 0, fmt.Errorf("failed to read data product: %w", err)
	}

	query := fmt.Sprintf("EXEC %s @pdm_cand_id=%d, @pdm_plot_type='%s', @filename='%s', @filedata=0x%s",
		r.cfg.PlotLoaderProc,
		*cand.CornellCandID,
		r.cfg.PlotType,
		filepath.Base(prod.Filename),
		hex.EncodeToString(data))

	if err := r.client.Exec(ctx, query); err != nil {
		return 0, fmt.Errorf("plot upload failed: %w", err)
	}

	r.log.WithFields(logrus.Fields{
		"candidate": cand.PdmCandID,
		"file":      filepath.Base(prod.Filename),
	}).Info("Uploaded data product")

	return 1, nil
}
