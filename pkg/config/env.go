package config

// EnvPrefix scopes every configuration variable read by envconfig.
const EnvPrefix = "TS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "TS_DB_DSN"
	EnvDBHost = "TS_DB_HOST"
	EnvDBUser = "TS_DB_USER"
	EnvDBName = "TS_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
