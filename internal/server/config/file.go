package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/authbridge/internal/timex"
	"go.yaml.in/yaml/v4"
)

// FileConfig is the on-disk shape of the configuration. Durations use
// timex.Duration so both "5s" and integer nanoseconds are accepted. Only
// keys present in the file override the current values.
type FileConfig struct {
	EndpointAddrGRPC *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN      *string         `json:"database_dsn"`
	SecretKey        *string         `json:"secret_key"`
	VerificationURL  *string         `json:"verification_url"`
	Channels         []string        `json:"channels"`
	BusBackend       *string         `json:"bus_backend"`
	BusTimeout       *timex.Duration `json:"bus_timeout"`
	RedisAddr        *string         `json:"redis_addr"`
	RedisPassword    *string         `json:"redis_password"`
	RedisDB          *int            `json:"redis_db"`
	RedisStream      *string         `json:"redis_stream"`
	S3RootUser       *string         `json:"s3_root_user"`
	S3RootPassword   *string         `json:"s3_root_password"`
	S3Bucket         *string         `json:"s3_bucket"`
	S3Region         *string         `json:"s3_region"`
	S3BaseEndpoint   *string         `json:"s3_base_endpoint"`
	S3Prefix         *string         `json:"s3_prefix"`
	HealthInterval   *timex.Duration `json:"health_interval"`
	OTLPEndpoint     *string         `json:"otlp_endpoint"`
	ServiceName      *string         `json:"service_name"`
	LogLevel         *string         `json:"log_level"`
}

// parseFile loads the file named by -c/-config into config. Files ending in
// .yaml or .yml are read as YAML, anything else as JSON. Without the flag
// nothing is loaded. Unreadable or invalid files panic.
func parseFile(config *Config) {
	path := configFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c, err := decodeFile(path, data)
	if err != nil {
		panic(err)
	}
	c.apply(config)
}

func decodeFile(path string, data []byte) (*FileConfig, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		// YAML goes through a generic map so the json tags and
		// timex.Duration decoding are shared with JSON files.
		var m map[string]any
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		var err error
		if data, err = json.Marshal(m); err != nil {
			return nil, err
		}
	}

	c := &FileConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.VerificationURL, c.VerificationURL)
	if c.Channels != nil {
		config.Channels = c.Channels
	}
	setString(&config.BusBackend, c.BusBackend)
	setDuration(&config.BusTimeout, c.BusTimeout)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisPassword, c.RedisPassword)
	if c.RedisDB != nil {
		config.RedisDB = *c.RedisDB
	}
	setString(&config.RedisStream, c.RedisStream)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3Prefix, c.S3Prefix)
	setDuration(&config.HealthInterval, c.HealthInterval)
	setString(&config.OTLPEndpoint, c.OTLPEndpoint)
	setString(&config.ServiceName, c.ServiceName)
	setString(&config.LogLevel, c.LogLevel)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
