package config

import "time"

// EnvPrefix matches the server so both sides can read one .env file.
const EnvPrefix = "AUTHBRIDGE_"

// Config holds runtime settings for hookctl.
//
// Fields:
//   - ServerEndpointAddr: host:port of the hook service.
//   - SecretKey: HMAC secret the server verifies caller tokens with.
//   - Caller: subject put into generated tokens.
//   - TokenTTL: lifetime of generated tokens; zero means no expiry.
//   - RequestTimeout: per-call deadline.
type Config struct {
	ServerEndpointAddr string        `env:"GRPC_ADDR"`
	SecretKey          string        `env:"SECRET_KEY"`
	Caller             string        `env:"CALLER"`
	TokenTTL           time.Duration `env:"TOKEN_TTL"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.Caller = "hookctl"
	c.TokenTTL = 5 * time.Minute
	c.RequestTimeout = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
