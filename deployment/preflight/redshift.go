package preflight

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/skyliftdata/skylift-go/deployment"
)

func (c *Checker) pingRedshift(ctx context.Context, p deployment.RedshiftProfile) error {
	port := p.Port
	if port == 0 {
		port = 5439
	}

	dsn := fmt.Sprintf("sslmode=require user=%v password=%v host=%v port=%v dbname=%v",
		p.Username,
		p.Password,
		p.Host,
		port,
		p.Database,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("opening connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging warehouse: %w", err)
	}
	return nil
}
