package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/skyliftdata/skylift-go/model"
)

func migrationPath(id string) string {
	return "/v1/migrations/" + url.PathEscape(id)
}

// Migration fetches the current snapshot of one migration job.
func (c *Client) Migration(ctx context.Context, id string) (*model.MigrationJob, error) {
	var job model.MigrationJob
	if err := c.do(ctx, http.MethodGet, migrationPath(id), nil, &job); err != nil {
		return nil, fmt.Errorf("fetching migration: %w", err)
	}
	return &job, nil
}

// StartMigration requests the backend to begin running a pending migration.
// The new state is only trusted once re-fetched.
func (c *Client) StartMigration(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodPost, migrationPath(id)+"/start", nil, nil); err != nil {
		return fmt.Errorf("starting migration: %w", err)
	}
	return nil
}

// StopMigration requests the backend to halt a running migration.
func (c *Client) StopMigration(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodPost, migrationPath(id)+"/stop", nil, nil); err != nil {
		return fmt.Errorf("stopping migration: %w", err)
	}
	return nil
}

// RetryMigration resets a failed migration for another run. It re-runs the
// same job, it does not create a new one.
func (c *Client) RetryMigration(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodPost, migrationPath(id)+"/retry", nil, nil); err != nil {
		return fmt.Errorf("retrying migration: %w", err)
	}
	return nil
}

// DeleteMigration removes a migration that is not running.
func (c *Client) DeleteMigration(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, migrationPath(id), nil, nil); err != nil {
		return fmt.Errorf("deleting migration: %w", err)
	}
	return nil
}
