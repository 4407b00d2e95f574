package deployment

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPayloadSnowflake(t *testing.T) {
	profile := &ConnectionProfile{
		Type: Snowflake,
		Snowflake: SnowflakeProfile{
			Account:   "abc123.us-east-1",
			Warehouse: "WH",
			Database:  "DB",
			Schema:    "PUBLIC",
			Username:  "u",
			Password:  "p",
			Role:      "R",
		},
		// Values entered for another warehouse must not leak.
		Redshift: RedshiftProfile{Host: "leftover.example.com", Password: "old"},
	}

	payload, err := BuildPayload(profile, Options{RunTests: true, FullRefresh: false})
	require.NoError(t, err)
	require.Equal(t, Payload{
		"warehouse_type":      "snowflake",
		"run_tests":           true,
		"full_refresh":        false,
		"snowflake_account":   "abc123.us-east-1",
		"snowflake_warehouse": "WH",
		"snowflake_database":  "DB",
		"snowflake_schema":    "PUBLIC",
		"snowflake_username":  "u",
		"snowflake_password":  "p",
		"snowflake_role":      "R",
	}, payload)
}

func TestBuildPayloadFabricAuthGroups(t *testing.T) {
	profile := &ConnectionProfile{
		Type: Fabric,
		Fabric: FabricProfile{
			Server:         "fabric.example.com",
			Port:           1433,
			Database:       "analytics",
			Schema:         "dbo",
			Authentication: FabricAuthSQL,
			Username:       "sa",
			Password:       "secret",
			TenantID:       "tenant",
			ClientID:       "client",
			ClientSecret:   "clientsecret",
		},
	}

	t.Run("sql omits service principal fields", func(t *testing.T) {
		payload, err := BuildPayload(profile, Options{})
		require.NoError(t, err)
		require.Equal(t, "sa", payload["fabric_username"])
		require.Equal(t, "secret", payload["fabric_password"])
		require.NotContains(t, payload, "fabric_tenant_id")
		require.NotContains(t, payload, "fabric_client_id")
		require.NotContains(t, payload, "fabric_client_secret")
	})

	t.Run("serviceprincipal omits sql fields", func(t *testing.T) {
		profile.Fabric.Authentication = FabricAuthServicePrincipal
		payload, err := BuildPayload(profile, Options{})
		require.NoError(t, err)
		require.Equal(t, "tenant", payload["fabric_tenant_id"])
		require.Equal(t, "client", payload["fabric_client_id"])
		require.Equal(t, "clientsecret", payload["fabric_client_secret"])
		require.NotContains(t, payload, "fabric_username")
		require.NotContains(t, payload, "fabric_password")
	})

	t.Run("unknown auth mode", func(t *testing.T) {
		profile.Fabric.Authentication = "kerberos"
		_, err := BuildPayload(profile, Options{})
		require.ErrorIs(t, err, ErrUnknownFabricAuth)
	})
}

func TestBuildPayloadGuards(t *testing.T) {
	t.Run("no warehouse selected", func(t *testing.T) {
		_, err := BuildPayload(&ConnectionProfile{}, Options{})
		require.ErrorIs(t, err, ErrNoWarehouseSelected)
	})
	t.Run("unknown warehouse", func(t *testing.T) {
		_, err := BuildPayload(&ConnectionProfile{Type: "teradata"}, Options{})
		require.ErrorIs(t, err, ErrUnknownWarehouse)
	})
}

func TestBuildPayloadPerBackendPrefixes(t *testing.T) {
	testCases := []struct {
		warehouseType WarehouseType
		wantKey       string
	}{
		{BigQuery, "bigquery_project_id"},
		{Databricks, "databricks_http_path"},
		{Redshift, "redshift_host"},
		{Spark, "spark_host"},
	}
	for _, tc := range testCases {
		t.Run(string(tc.warehouseType), func(t *testing.T) {
			profile := &ConnectionProfile{Type: tc.warehouseType}
			profile.Fabric.Authentication = FabricAuthSQL
			payload, err := BuildPayload(profile, Options{})
			require.NoError(t, err)
			require.Contains(t, payload, tc.wantKey)
			require.Equal(t, string(tc.warehouseType), payload["warehouse_type"])
		})
	}
}

func TestSwitchingTypePreservesVariants(t *testing.T) {
	profile := &ConnectionProfile{Type: Redshift}
	profile.Redshift = RedshiftProfile{Host: "rs.example.com", Database: "prod"}
	profile.Snowflake = SnowflakeProfile{Account: "abc123"}

	profile.Type = Snowflake
	payload, err := BuildPayload(profile, Options{})
	require.NoError(t, err)
	require.Equal(t, "abc123", payload["snowflake_account"])
	require.NotContains(t, payload, "redshift_host")

	profile.Type = Redshift
	payload, err = BuildPayload(profile, Options{})
	require.NoError(t, err)
	require.Equal(t, "rs.example.com", payload["redshift_host"], "switching back must not lose values")
	require.NotContains(t, payload, "snowflake_account")
}

func TestProfileDecode(t *testing.T) {
	var profile ConnectionProfile
	require.NoError(t, profile.Decode(map[string]any{
		"warehouse_type": "fabric",
		"fabric": map[string]any{
			"server":         "fabric.example.com",
			"port":           1433,
			"authentication": "serviceprincipal",
			"tenant_id":      "t",
			"client_id":      "c",
			"client_secret":  "s",
		},
	}))
	require.Equal(t, Fabric, profile.Type)
	require.Equal(t, FabricAuthServicePrincipal, profile.Fabric.Authentication)
	require.Equal(t, 1433, profile.Fabric.Port)
}

func TestLoadProfile(t *testing.T) {
	t.Run("reads a profile file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"warehouse_type": "snowflake",
			"snowflake": {
				"account": "org-acct",
				"warehouse": "COMPUTE_WH",
				"database": "ANALYTICS",
				"schema": "PUBLIC",
				"username": "loader",
				"password": "hunter2",
				"role": "SYSADMIN"
			}
		}`), 0o600))

		profile, err := LoadProfile(path)
		require.NoError(t, err)
		require.Equal(t, Snowflake, profile.Type)
		require.Equal(t, "org-acct", profile.Snowflake.Account)
		require.Equal(t, "SYSADMIN", profile.Snowflake.Role)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadProfile(filepath.Join(t.TempDir(), "nope.json"))
		require.ErrorContains(t, err, "reading profile")
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profile.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"warehouse_type":`), 0o600))
		_, err := LoadProfile(path)
		require.ErrorContains(t, err, "parsing profile")
	})
}
