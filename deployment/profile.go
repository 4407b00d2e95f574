// Package deployment builds warehouse connection payloads and drives the
// deployment of a completed migration's generated project against a live
// warehouse.
package deployment

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"

	"github.com/skyliftdata/skylift-go/jsonrs"
)

// WarehouseType discriminates the connection profile. Only the fields of the
// selected variant are read when building a payload.
type WarehouseType string

const (
	Snowflake  WarehouseType = "snowflake"
	BigQuery   WarehouseType = "bigquery"
	Databricks WarehouseType = "databricks"
	Redshift   WarehouseType = "redshift"
	Fabric     WarehouseType = "fabric"
	Spark      WarehouseType = "spark"
)

// WarehouseTypes lists every supported target.
func WarehouseTypes() []WarehouseType {
	return []WarehouseType{Snowflake, BigQuery, Databricks, Redshift, Fabric, Spark}
}

// FabricAuth selects which credential group a Fabric profile submits.
type FabricAuth string

const (
	FabricAuthSQL              FabricAuth = "sql"
	FabricAuthServicePrincipal FabricAuth = "serviceprincipal"
)

type SnowflakeProfile struct {
	Account   string `mapstructure:"account"`
	Warehouse string `mapstructure:"warehouse"`
	Database  string `mapstructure:"database"`
	Schema    string `mapstructure:"schema"`
	Username  string `mapstructure:"username"`
	Password  string `mapstructure:"password"`
	Role      string `mapstructure:"role"`
}

type BigQueryProfile struct {
	ProjectID       string `mapstructure:"project_id"`
	Dataset         string `mapstructure:"dataset"`
	Location        string `mapstructure:"location"`
	CredentialsJSON string `mapstructure:"credentials_json"`
}

type DatabricksProfile struct {
	ServerHostname string `mapstructure:"server_hostname"`
	Port           int    `mapstructure:"port"`
	HTTPPath       string `mapstructure:"http_path"`
	AccessToken    string `mapstructure:"access_token"`
	Catalog        string `mapstructure:"catalog"`
	Schema         string `mapstructure:"schema"`
}

type RedshiftProfile struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	Schema   string `mapstructure:"schema"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// FabricProfile carries both credential groups; Authentication picks which
// one is submitted, the other is never sent.
type FabricProfile struct {
	Server         string     `mapstructure:"server"`
	Port           int        `mapstructure:"port"`
	Database       string     `mapstructure:"database"`
	Schema         string     `mapstructure:"schema"`
	Authentication FabricAuth `mapstructure:"authentication"`

	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`

	TenantID     string `mapstructure:"tenant_id"`
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
}

type SparkProfile struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// ConnectionProfile holds every variant at once so switching the discriminant
// back and forth never loses entered values. Payload building reads only the
// active variant.
type ConnectionProfile struct {
	Type WarehouseType `mapstructure:"warehouse_type"`

	Snowflake  SnowflakeProfile  `mapstructure:"snowflake"`
	BigQuery   BigQueryProfile   `mapstructure:"bigquery"`
	Databricks DatabricksProfile `mapstructure:"databricks"`
	Redshift   RedshiftProfile   `mapstructure:"redshift"`
	Fabric     FabricProfile     `mapstructure:"fabric"`
	Spark      SparkProfile      `mapstructure:"spark"`
}

// Decode fills the profile from a generic map, as read from a profile file.
func (p *ConnectionProfile) Decode(m map[string]any) error {
	return mapstructure.Decode(m, p)
}

// LoadProfile reads a connection profile from a JSON file. The file carries
// warehouse_type plus one object per variant it cares to fill.
func LoadProfile(path string) (*ConnectionProfile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	var m map[string]any
	if err := jsonrs.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parsing profile: %w", err)
	}
	var profile ConnectionProfile
	if err := profile.Decode(m); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	return &profile, nil
}
