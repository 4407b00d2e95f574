package deployment

import "fmt"

// Options toggle the post-deploy phases.
type Options struct {
	RunTests    bool
	FullRefresh bool
}

// Payload is the flattened deploy request body. Keys of the active variant
// are prefixed with the backend name, so the backend can dispatch on key
// prefix as well as warehouse_type.
type Payload map[string]any

// BuildPayload flattens the profile's active variant into a deploy request.
// Only the selected variant is read; values entered for other warehouses
// never leak into the payload.
func BuildPayload(profile *ConnectionProfile, options Options) (Payload, error) {
	if profile.Type == "" {
		return nil, ErrNoWarehouseSelected
	}

	payload := Payload{
		"warehouse_type": string(profile.Type),
		"run_tests":      options.RunTests,
		"full_refresh":   options.FullRefresh,
	}

	switch profile.Type {
	case Snowflake:
		p := profile.Snowflake
		payload["snowflake_account"] = p.Account
		payload["snowflake_warehouse"] = p.Warehouse
		payload["snowflake_database"] = p.Database
		payload["snowflake_schema"] = p.Schema
		payload["snowflake_username"] = p.Username
		payload["snowflake_password"] = p.Password
		payload["snowflake_role"] = p.Role
	case BigQuery:
		p := profile.BigQuery
		payload["bigquery_project_id"] = p.ProjectID
		payload["bigquery_dataset"] = p.Dataset
		payload["bigquery_location"] = p.Location
		payload["bigquery_credentials_json"] = p.CredentialsJSON
	case Databricks:
		p := profile.Databricks
		payload["databricks_server_hostname"] = p.ServerHostname
		payload["databricks_port"] = p.Port
		payload["databricks_http_path"] = p.HTTPPath
		payload["databricks_access_token"] = p.AccessToken
		payload["databricks_catalog"] = p.Catalog
		payload["databricks_schema"] = p.Schema
	case Redshift:
		p := profile.Redshift
		payload["redshift_host"] = p.Host
		payload["redshift_port"] = p.Port
		payload["redshift_database"] = p.Database
		payload["redshift_schema"] = p.Schema
		payload["redshift_username"] = p.Username
		payload["redshift_password"] = p.Password
	case Fabric:
		p := profile.Fabric
		payload["fabric_server"] = p.Server
		payload["fabric_port"] = p.Port
		payload["fabric_database"] = p.Database
		payload["fabric_schema"] = p.Schema
		payload["fabric_authentication"] = string(p.Authentication)
		// The inactive group's keys are omitted, not sent empty, so the
		// backend cannot mistake unset for an empty credential.
		switch p.Authentication {
		case FabricAuthSQL:
			payload["fabric_username"] = p.Username
			payload["fabric_password"] = p.Password
		case FabricAuthServicePrincipal:
			payload["fabric_tenant_id"] = p.TenantID
			payload["fabric_client_id"] = p.ClientID
			payload["fabric_client_secret"] = p.ClientSecret
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownFabricAuth, p.Authentication)
		}
	case Spark:
		p := profile.Spark
		payload["spark_host"] = p.Host
		payload["spark_port"] = p.Port
		payload["spark_database"] = p.Database
		payload["spark_username"] = p.Username
		payload["spark_password"] = p.Password
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownWarehouse, profile.Type)
	}
	return payload, nil
}
