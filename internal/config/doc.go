// Package config manages configuration for the factorygirl command.
//
// The config package loads and validates configuration from environment variables.
//
// # Configuration Loading
//
//	cfg, err := config.Load()
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - FactoryConfig: definitions file and resolution limits
//   - StoreConfig: where created models are saved
//   - DatabaseConfig: SurrealDB connection settings
//   - LogConfig: slog level and format
//
// # Environment Variables
//
//	FACTORY_DEFINITIONS        - YAML definitions file (default: tests/factories.yaml)
//	FACTORY_MAX_RESOLVE_STEPS  - finalization step bound, 0 disables (default: 10000)
//	FACTORY_STORE              - memory, sqlite, postgres or surreal (default: memory)
//	FACTORY_SQL_DSN            - sqlite or postgres DSN
//	FACTORY_STORE_TIMEOUT      - timeout for store operations (default: 10s)
//	DB_HOST, DB_PORT           - SurrealDB address (default: localhost:8000)
//	DB_NAMESPACE, DB_DATABASE  - SurrealDB namespace and database
//	DB_USER, DB_PASSWORD       - SurrealDB credentials
//	LOG_LEVEL                  - debug, info, warn or error (default: info)
//	LOG_FORMAT                 - json or text (default: text)
package config
