package config

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces the environment variables read by parseEnv,
// e.g. MEDIDESK_SECRET_KEY.
const EnvPrefix = "medidesk"

// parseEnv overlays variables from the environment, after loading a .env
// file from the working directory if there is one. Variables already set in
// the real environment win over the .env file. Unset variables leave the
// field untouched.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if err := envconfig.Process(EnvPrefix, config); err != nil {
		panic(err)
	}
}
