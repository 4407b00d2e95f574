package preflight

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"github.com/cenkalti/backoff/v4"
	"google.golang.org/api/option"

	"github.com/skyliftdata/skylift-go/deployment"
)

// pingBigQuery probes the dataset's metadata, the lightest call that proves
// both the credentials and the dataset exist.
func (c *Checker) pingBigQuery(ctx context.Context, p deployment.BigQueryProfile) error {
	var opts []option.ClientOption
	if p.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(p.CredentialsJSON)))
	}

	client, err := bigquery.NewClient(ctx, p.ProjectID, opts...)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("creating client: %w", err))
	}
	defer func() { _ = client.Close() }()

	if _, err := client.Dataset(p.Dataset).Metadata(ctx); err != nil {
		return fmt.Errorf("fetching dataset metadata: %w", err)
	}
	return nil
}
