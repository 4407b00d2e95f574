// Package preflight verifies a warehouse connection profile by dialing the
// target the same way the control plane will during deployment. A passing
// check means the credentials reach a live warehouse; it does not validate
// schema contents.
package preflight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/rudderlabs/rudder-go-kit/config"
	"github.com/rudderlabs/rudder-go-kit/logger"
	obskit "github.com/rudderlabs/rudder-observability-kit/go/labels"

	"github.com/skyliftdata/skylift-go/deployment"
)

// ErrUnsupported marks targets with no native driver to dial. Spark
// deployments are submitted untested; the backend validates the connection.
var ErrUnsupported = errors.New("preflight: connection check not supported for this warehouse")

type Checker struct {
	log logger.Logger

	config struct {
		connectTimeout time.Duration
		maxRetries     uint64
	}
}

func New(conf *config.Config, log logger.Logger) *Checker {
	c := &Checker{
		log: log.Child("preflight"),
	}
	c.config.connectTimeout = conf.GetDuration("Preflight.connectTimeout", 15, time.Second)
	c.config.maxRetries = uint64(conf.GetInt("Preflight.maxRetries", 2))
	return c
}

// Check dials the profile's active warehouse and pings it, retrying transient
// failures with exponential backoff under ctx.
func (c *Checker) Check(ctx context.Context, profile *deployment.ConnectionProfile) error {
	var ping func(context.Context) error
	switch profile.Type {
	case deployment.Snowflake:
		ping = func(ctx context.Context) error { return c.pingSnowflake(ctx, profile.Snowflake) }
	case deployment.BigQuery:
		ping = func(ctx context.Context) error { return c.pingBigQuery(ctx, profile.BigQuery) }
	case deployment.Databricks:
		ping = func(ctx context.Context) error { return c.pingDatabricks(ctx, profile.Databricks) }
	case deployment.Redshift:
		ping = func(ctx context.Context) error { return c.pingRedshift(ctx, profile.Redshift) }
	case deployment.Fabric:
		ping = func(ctx context.Context) error { return c.pingFabric(ctx, profile.Fabric) }
	case deployment.Spark:
		return fmt.Errorf("%w: %s", ErrUnsupported, profile.Type)
	case "":
		return deployment.ErrNoWarehouseSelected
	default:
		return fmt.Errorf("%w: %q", deployment.ErrUnknownWarehouse, profile.Type)
	}

	c.log.Infon("checking warehouse connection",
		logger.NewStringField("warehouseType", string(profile.Type)),
	)

	boCtx := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.config.maxRetries), ctx)
	err := backoff.Retry(func() error {
		pingCtx, cancel := context.WithTimeout(ctx, c.config.connectTimeout)
		defer cancel()

		if err := ping(pingCtx); err != nil {
			c.log.Warnn("connection check attempt failed", obskit.Error(err))
			return err
		}
		return nil
	}, boCtx)
	if err != nil {
		return fmt.Errorf("checking %s connection: %w", profile.Type, err)
	}
	return nil
}
