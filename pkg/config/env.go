package config

const (
	EnvPrefix = "REPAIRS"

	AppEnvDev  = "dev"
	AppEnvTest = "test"
	AppEnvProd = "prod"

	EnvAppEnv   = "REPAIRS_APP_ENV"
	EnvPort     = "REPAIRS_APP_PORT"
	EnvLogLevel = "REPAIRS_LOG_LEVEL"

	EnvDBDSN  = "REPAIRS_DB_DSN"
	EnvDBHost = "REPAIRS_DB_HOST"
	EnvDBUser = "REPAIRS_DB_USER"
	EnvDBName = "REPAIRS_DB_NAME"

	EnvRedisURL = "REPAIRS_REDIS_URL"

	EnvJWTSecret              = "REPAIRS_JWT_SECRET"
	EnvJWTIssuer              = "REPAIRS_JWT_ISSUER"
	EnvJWTExpMins             = "REPAIRS_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "REPAIRS_REFRESH_TOKEN_TTL_MINUTES"

	EnvStaffPINHashes      = "REPAIRS_STAFF_PIN_HASHES"
	EnvStaffAdminPINHashes = "REPAIRS_STAFF_ADMIN_PIN_HASHES"

	EnvUseSQLite       = "REPAIRS_USE_SQLITE"
	EnvArchiveTimezone = "REPAIRS_ARCHIVE_TIMEZONE"
)

var dbEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
