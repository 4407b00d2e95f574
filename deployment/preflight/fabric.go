package preflight

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/denisenkom/go-mssqldb"
	"github.com/denisenkom/go-mssqldb/azuread"

	"github.com/skyliftdata/skylift-go/deployment"
)

// pingFabric dials the SQL endpoint of a Fabric warehouse. SQL auth uses the
// plain sqlserver driver; service principals go through the azuread driver
// with federated auth.
func (c *Checker) pingFabric(ctx context.Context, p deployment.FabricProfile) error {
	port := p.Port
	if port == 0 {
		port = 1433
	}

	query := url.Values{}
	query.Add("database", p.Database)
	query.Add("encrypt", "true")
	query.Add("TrustServerCertificate", "false")
	if c.config.connectTimeout > 0 {
		query.Add("dial timeout", strconv.Itoa(int(c.config.connectTimeout/time.Second)))
	}

	connURL := &url.URL{
		Scheme:   "sqlserver",
		Host:     net.JoinHostPort(p.Server, strconv.Itoa(port)),
		RawQuery: query.Encode(),
	}

	driver := "sqlserver"
	switch p.Authentication {
	case deployment.FabricAuthSQL:
		connURL.User = url.UserPassword(p.Username, p.Password)
	case deployment.FabricAuthServicePrincipal:
		driver = azuread.DriverName
		query.Add("fedauth", azuread.ActiveDirectoryServicePrincipal)
		connURL.User = url.UserPassword(p.ClientID+"@"+p.TenantID, p.ClientSecret)
		connURL.RawQuery = query.Encode()
	default:
		return backoff.Permanent(fmt.Errorf("%w: %q", deployment.ErrUnknownFabricAuth, p.Authentication))
	}

	db, err := sql.Open(driver, connURL.String())
	if err != nil {
		return fmt.Errorf("opening connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging warehouse: %w", err)
	}
	return nil
}
