package preflight

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rudderlabs/rudder-go-kit/config"
	"github.com/rudderlabs/rudder-go-kit/logger"

	"github.com/skyliftdata/skylift-go/deployment"
)

func newTestChecker(t *testing.T) *Checker {
	t.Helper()
	conf := config.New()
	conf.Set("Preflight.connectTimeout", "1s")
	conf.Set("Preflight.maxRetries", 0)
	return New(conf, logger.NOP)
}

func TestCheckGuards(t *testing.T) {
	c := newTestChecker(t)
	ctx := context.Background()

	t.Run("spark has no driver", func(t *testing.T) {
		err := c.Check(ctx, &deployment.ConnectionProfile{Type: deployment.Spark})
		require.ErrorIs(t, err, ErrUnsupported)
	})
	t.Run("no warehouse selected", func(t *testing.T) {
		err := c.Check(ctx, &deployment.ConnectionProfile{})
		require.ErrorIs(t, err, deployment.ErrNoWarehouseSelected)
	})
	t.Run("unknown warehouse", func(t *testing.T) {
		err := c.Check(ctx, &deployment.ConnectionProfile{Type: "teradata"})
		require.ErrorIs(t, err, deployment.ErrUnknownWarehouse)
	})
	t.Run("unknown fabric auth is not retried", func(t *testing.T) {
		profile := &deployment.ConnectionProfile{Type: deployment.Fabric}
		profile.Fabric.Authentication = "kerberos"
		err := c.Check(ctx, profile)
		require.ErrorIs(t, err, deployment.ErrUnknownFabricAuth)
	})
}

func TestCheckUnreachableWarehouse(t *testing.T) {
	// Reserve a port and close it again so nothing is listening there.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().(*net.TCPAddr)
	require.NoError(t, l.Close())

	profile := &deployment.ConnectionProfile{Type: deployment.Redshift}
	profile.Redshift = deployment.RedshiftProfile{
		Host:     "127.0.0.1",
		Port:     addr.Port,
		Database: "dev",
		Username: "u",
		Password: "p",
	}

	c := newTestChecker(t)
	err = c.Check(context.Background(), profile)
	require.Error(t, err)
	require.ErrorContains(t, err, "checking redshift connection")
}
