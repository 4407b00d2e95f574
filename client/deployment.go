package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/skyliftdata/skylift-go/model"
)

type deployResponse struct {
	DeploymentID string `json:"deployment_id"`
}

// Deploy submits a flattened connection payload for a completed migration and
// returns the deployment id to poll. Payload keys are backend-prefixed, built
// by the deployment package.
func (c *Client) Deploy(ctx context.Context, id string, payload map[string]any) (string, error) {
	var res deployResponse
	if err := c.do(ctx, http.MethodPost, migrationPath(id)+"/deploy", payload, &res); err != nil {
		return "", fmt.Errorf("requesting deployment: %w", err)
	}
	if res.DeploymentID == "" {
		return "", fmt.Errorf("requesting deployment: backend returned no deployment_id")
	}
	return res.DeploymentID, nil
}

// DeploymentStatus fetches the current state of one deployment.
func (c *Client) DeploymentStatus(ctx context.Context, id, deploymentID string) (*model.DeploymentJob, error) {
	var job model.DeploymentJob
	path := migrationPath(id) + "/deployments/" + url.PathEscape(deploymentID)
	if err := c.do(ctx, http.MethodGet, path, nil, &job); err != nil {
		return nil, fmt.Errorf("fetching deployment status: %w", err)
	}
	return &job, nil
}
