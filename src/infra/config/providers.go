package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// PostgresSettings are the libpq-style variables of the postgres driver.
type PostgresSettings struct {
	Host     string `envconfig:"PGHOST"`
	Port     int    `envconfig:"PGPORT" default:"5432"`
	Database string `envconfig:"PGDATABASE"`
	User     string `envconfig:"PGUSER"`
	Password string `envconfig:"PGPASSWORD"`
	SSL      bool   `envconfig:"PGSSL" default:"false"`
}

// MSSQLSettings are the variables of the mssql driver.
type MSSQLSettings struct {
	Server                 string `envconfig:"DB_SERVER"`
	Port                   int    `envconfig:"DB_PORT" default:"1433"`
	Name                   string `envconfig:"DB_NAME"`
	User                   string `envconfig:"DB_USER"`
	Password               string `envconfig:"DB_PASSWORD"`
	Encrypt                bool   `envconfig:"DB_ENCRYPT" default:"true"`
	TrustServerCertificate bool   `envconfig:"DB_TRUST_SERVER_CERTIFICATE" default:"false"`
}

// LoadPostgresSettings reads the postgres variables from the current environment.
func LoadPostgresSettings() (PostgresSettings, error) {
	var s PostgresSettings
	if err := processSettings(&s); err != nil {
		return s, fmt.Errorf("failed to load postgres settings: %w", err)
	}
	return s, nil
}

// LoadMSSQLSettings reads the mssql variables from the current environment.
func LoadMSSQLSettings() (MSSQLSettings, error) {
	var s MSSQLSettings
	if err := processSettings(&s); err != nil {
		return s, fmt.Errorf("failed to load mssql settings: %w", err)
	}
	return s, nil
}

// processSettings runs envconfig over spec after unsetting variables that are
// present but blank, so their default tags apply. This matches the Gate, which
// counts a blank value as absent.
func processSettings(spec any) error {
	t := reflect.TypeOf(spec).Elem()
	for i := range t.NumField() {
		key := t.Field(i).Tag.Get("envconfig")
		if key == "" {
			continue
		}
		if raw, ok := os.LookupEnv(key); ok && strings.TrimSpace(raw) == "" {
			if err := os.Unsetenv(key); err != nil {
				return fmt.Errorf("unset blank %s: %w", key, err)
			}
		}
	}
	return envconfig.Process("", spec)
}

// DSN returns the PostgreSQL connection string.
func (s PostgresSettings) DSN() string {
	sslMode := "disable"
	if s.SSL {
		sslMode = "require"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(s.User, s.Password),
		Host:     net.JoinHostPort(s.Host, strconv.Itoa(s.Port)),
		Path:     "/" + s.Database,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}
	return u.String()
}

// DSN returns the SQL Server connection string.
func (s MSSQLSettings) DSN() string {
	q := url.Values{}
	q.Set("database", s.Name)
	q.Set("encrypt", strconv.FormatBool(s.Encrypt))
	q.Set("TrustServerCertificate", strconv.FormatBool(s.TrustServerCertificate))
	u := url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(s.User, s.Password),
		Host:     net.JoinHostPort(s.Server, strconv.Itoa(s.Port)),
		RawQuery: q.Encode(),
	}
	return u.String()
}

// Target describes the endpoint without credentials, for logs.
func (s PostgresSettings) Target() string {
	return fmt.Sprintf("%s:%d/%s", s.Host, s.Port, s.Database)
}

// Target describes the endpoint without credentials, for logs.
func (s MSSQLSettings) Target() string {
	return fmt.Sprintf("%s:%d/%s", s.Server, s.Port, s.Name)
}
