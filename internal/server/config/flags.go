package config

import (
	"flag"
	"os"
	"strings"

	"github.com/dmitrijs2005/authbridge/internal/flagx"
)

var configFileFlag = flagx.ConfigFileFlag

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     gRPC bind address (e.g., ":50051")
//	-d string     database DSN
//	-s string     hook caller JWT secret
//	-l string     verification base URL
//	-n string     comma separated channel list
//	-q string     bus backend: redis, s3 or log
//	-t duration   bus publish timeout (e.g., "5s")
//	-r string     Redis address
//	-u string     S3 root user
//	-p string     S3 root password
//	-b string     S3 bucket name
//	-g string     S3 region
//	-e string     S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-o string     OTLP/HTTP collector endpoint
//	-v string     log level
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-d", "-s", "-l", "-n", "-q", "-t", "-r", "-u", "-p", "-b", "-g", "-e", "-o", "-v",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.VerificationURL, "l", config.VerificationURL, "verification base URL")
	channels := fs.String("n", strings.Join(config.Channels, ","), "notification channels")
	fs.StringVar(&config.BusBackend, "q", config.BusBackend, "bus backend (redis, s3, log)")
	fs.DurationVar(&config.BusTimeout, "t", config.BusTimeout, "bus publish timeout")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "Redis address")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.OTLPEndpoint, "o", config.OTLPEndpoint, "OTLP/HTTP endpoint")
	fs.StringVar(&config.LogLevel, "v", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.Channels = flagx.SplitList(*channels)
}
