package preflight

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	snowflake "github.com/snowflakedb/gosnowflake"

	"github.com/skyliftdata/skylift-go/deployment"
)

func (c *Checker) pingSnowflake(ctx context.Context, p deployment.SnowflakeProfile) error {
	dsn, err := snowflake.DSN(&snowflake.Config{
		Account:      p.Account,
		User:         p.Username,
		Password:     p.Password,
		Database:     p.Database,
		Schema:       p.Schema,
		Warehouse:    p.Warehouse,
		Role:         p.Role,
		Application:  "Skylift",
		LoginTimeout: c.config.connectTimeout,
	})
	if err != nil {
		return backoff.Permanent(fmt.Errorf("constructing DSN: %w", err))
	}

	db, err := sql.Open("snowflake", dsn)
	if err != nil {
		return fmt.Errorf("opening connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging warehouse: %w", err)
	}
	return nil
}
