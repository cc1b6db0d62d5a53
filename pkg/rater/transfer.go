package rater

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// TransferConfig describes the mirror host pfd files are copied to
type TransferConfig struct {
	User        string `yaml:"user"`
	Host        string `yaml:"host"`
	RemoteDir   string `yaml:"remoteDir"`
	Institution string `yaml:"institution"`
}

// SetDefaults sets default values for the transfer configuration
func (c *TransferConfig) SetDefaults() {
	if c.User == "" {
		c.User = "mtan"
	}

	if c.Host == "" {
		c.Host = "miarka.physics.mcgill.ca"
	}

	if c.RemoteDir == "" {
		c.RemoteDir = "/data/alfa/PALFA/pfds"
	}
}

// TransferRater copies a candidate's pfd file to the mirror host via rsync
// as a side effect and records value 1 on success.
type TransferRater struct {
	log logrus.FieldLogger
	cfg TransferConfig

	// runCommand is swappable in tests
	runCommand func(ctx context.Context, name string, args ...string) error
}

// NewTransferRater creates a transfer rater.
func NewTransferRater(logger *logrus.Logger, cfg TransferConfig) *TransferRater {
	cfg.SetDefaults()

	return &TransferRater{
		log: logger.WithField("component", "transfer-rater"),
		cfg: cfg,
		runCommand: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		},
	}
}

// Name implements Rater.
func (r *TransferRater) Name() string { return "Share PFD Rating" }

// Version implements Rater.
func (r *TransferRater) Version() int { return 0 }

// Description implements Rater.
func (r *TransferRater) Description() string {
	return "Copy .pfd file to the mirror host as a side-effect."
}

// Rate rsyncs the pfd file to the mirror host.
func (r *TransferRater) Rate(ctx context.Context, _ *Header, cand *Candidate, prod *Product) (float64, error) {
	if cand.CornellCandID == nil {
		return 0, fmt.Errorf("%w: candidate %d", ErrMissingPrerequisite, cand.PdmCandID)
	}

	if _, err := os.Stat(prod.Filename); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrProductMissing, prod.Filename)
	}

	dest := fmt.Sprintf("%s@%s:%s/%s/%s",
		r.cfg.User, r.cfg.Host, r.cfg.RemoteDir, r.cfg.Institution, filepath.Base(prod.Filename))

	if err := r.runCommand(ctx, "rsync", "-u", prod.Filename, dest); err != nil {
		return 0, fmt.Errorf("%w: rsync of %s: %v", ErrTransferFailure, prod.Filename, err)
	}

	r.log.WithFields(logrus.Fields{
		"candidate": cand.PdmCandID,
		"dest":      dest,
	}).Info("Transferred data product")

	return 1, nil
}
