package client

import (
	"context"

	"github.com/rudderlabs/rudder-go-kit/stats"

	"github.com/skyliftdata/skylift-go/model"
)

// API is the full control-plane surface. *Client implements it; WithStats
// decorates it.
type API interface {
	Migration(ctx context.Context, id string) (*model.MigrationJob, error)
	StartMigration(ctx context.Context, id string) error
	StopMigration(ctx context.Context, id string) error
	RetryMigration(ctx context.Context, id string) error
	DeleteMigration(ctx context.Context, id string) error
	RunValidation(ctx context.Context, id string, options model.ValidationOptions) (*model.ValidationReport, error)
	Deploy(ctx context.Context, id string, payload map[string]any) (string, error)
	DeploymentStatus(ctx context.Context, id, deploymentID string) (*model.DeploymentJob, error)
	ScanDataQuality(ctx context.Context, id string) (*model.DataQualityScan, error)
}

type apiAdapter struct {
	statsFactory stats.Stats

	API
}

// WithStats wraps api so every operation records a count and a response-time
// timer tagged with the operation name.
func WithStats(api API, statsFactory stats.Stats) API {
	return &apiAdapter{statsFactory: statsFactory, API: api}
}

func (a *apiAdapter) instrument(operation string) func() {
	tags := stats.Tags{"operation": operation}
	a.statsFactory.NewTaggedStat("skylift_api_request_count", stats.CountType, tags).Increment()
	return a.statsFactory.NewTaggedStat("skylift_api_response_time", stats.TimerType, tags).RecordDuration()
}

func (a *apiAdapter) Migration(ctx context.Context, id string) (*model.MigrationJob, error) {
	defer a.instrument("migration")()
	return a.API.Migration(ctx, id)
}

func (a *apiAdapter) StartMigration(ctx context.Context, id string) error {
	defer a.instrument("start_migration")()
	return a.API.StartMigration(ctx, id)
}

func (a *apiAdapter) StopMigration(ctx context.Context, id string) error {
	defer a.instrument("stop_migration")()
	return a.API.StopMigration(ctx, id)
}

func (a *apiAdapter) RetryMigration(ctx context.Context, id string) error {
	defer a.instrument("retry_migration")()
	return a.API.RetryMigration(ctx, id)
}

func (a *apiAdapter) DeleteMigration(ctx context.Context, id string) error {
	defer a.instrument("delete_migration")()
	return a.API.DeleteMigration(ctx, id)
}

func (a *apiAdapter) RunValidation(ctx context.Context, id string, options model.ValidationOptions) (*model.ValidationReport, error) {
	defer a.instrument("run_validation")()
	return a.API.RunValidation(ctx, id, options)
}

func (a *apiAdapter) Deploy(ctx context.Context, id string, payload map[string]any) (string, error) {
	defer a.instrument("deploy")()
	return a.API.Deploy(ctx, id, payload)
}

func (a *apiAdapter) DeploymentStatus(ctx context.Context, id, deploymentID string) (*model.DeploymentJob, error) {
	defer a.instrument("deployment_status")()
	return a.API.DeploymentStatus(ctx, id, deploymentID)
}

func (a *apiAdapter) ScanDataQuality(ctx context.Context, id string) (*model.DataQualityScan, error) {
	defer a.instrument("scan_data_quality")()
	return a.API.ScanDataQuality(ctx, id)
}
