package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/cloudmesh-io/skymeta/pkg/metadata/store"
)

var validate = validator.New()

// Validate checks cfg against its struct validation tags and the additional
// cross-field constraints that tags alone can't express.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := validateDatabase(&cfg.Database); err != nil {
		return err
	}
	return validateTelemetry(&cfg.Telemetry)
}

func validateTelemetry(cfg *TelemetryConfig) error {
	if cfg.Enabled && cfg.Endpoint == "" {
		return fmt.Errorf("telemetry.endpoint is required when telemetry is enabled")
	}
	return nil
}

func validateDatabase(cfg *store.Config) error {
	switch cfg.Type {
	case store.DatabaseTypeSQLite:
		if cfg.SQLite.Path == "" {
			return fmt.Errorf("database.sqlite.path is required when database.type is sqlite")
		}
	case store.DatabaseTypePostgres:
		if cfg.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required when database.type is postgres")
		}
		if cfg.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required when database.type is postgres")
		}
	default:
		return fmt.Errorf("database.type must be %q or %q, got %q", store.DatabaseTypeSQLite, store.DatabaseTypePostgres, cfg.Type)
	}
	return nil
}
