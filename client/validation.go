package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/skyliftdata/skylift-go/model"
)

// RunValidation triggers a validation run with the given options and returns
// the fresh report. Re-running replaces any prior report.
func (c *Client) RunValidation(ctx context.Context, id string, options model.ValidationOptions) (*model.ValidationReport, error) {
	var report model.ValidationReport
	if err := c.do(ctx, http.MethodPost, migrationPath(id)+"/validate", options, &report); err != nil {
		return nil, fmt.Errorf("running validation: %w", err)
	}
	return &report, nil
}

// ScanDataQuality runs a single-shot data-quality scan against the
// migration's source.
func (c *Client) ScanDataQuality(ctx context.Context, id string) (*model.DataQualityScan, error) {
	var scan model.DataQualityScan
	if err := c.do(ctx, http.MethodPost, migrationPath(id)+"/quality/scan", nil, &scan); err != nil {
		return nil, fmt.Errorf("scanning data quality: %w", err)
	}
	return &scan, nil
}
