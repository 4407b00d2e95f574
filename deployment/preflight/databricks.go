package preflight

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	dbsql "github.com/databricks/databricks-sql-go"

	"github.com/skyliftdata/skylift-go/deployment"
)

func (c *Checker) pingDatabricks(ctx context.Context, p deployment.DatabricksProfile) error {
	port := p.Port
	if port == 0 {
		port = 443
	}

	connector, err := dbsql.NewConnector(
		dbsql.WithServerHostname(p.ServerHostname),
		dbsql.WithPort(port),
		dbsql.WithHTTPPath(p.HTTPPath),
		dbsql.WithAccessToken(p.AccessToken),
		dbsql.WithInitialNamespace(p.Catalog, p.Schema),
		dbsql.WithUserAgentEntry("Skylift"),
		dbsql.WithTimeout(c.config.connectTimeout),
	)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("creating connector: %w", err))
	}

	db := sql.OpenDB(connector)
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging warehouse: %w", err)
	}
	return nil
}
