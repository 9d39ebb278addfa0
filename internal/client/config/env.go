package config

import "github.com/caarlos0/env/v11"

// parseEnv copies AUTHBRIDGE_* variables into cfg. Unset variables leave
// fields untouched.
func parseEnv(cfg *Config) {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(err)
	}
}
