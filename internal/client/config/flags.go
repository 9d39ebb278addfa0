package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/authbridge/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     address and port of the hook service
//	-s string     shared signing secret
//	-n string     caller name placed in tokens
//	-t duration   token lifetime
//	-w duration   per-request timeout
func parseFlags(cfg *Config) {
	parseFlagArgs(cfg, os.Args[1:])
}

func parseFlagArgs(cfg *Config, raw []string) {
	args := flagx.FilterArgs(raw, []string{"-a", "-s", "-n", "-t", "-w"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the hook service")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "shared signing secret")
	fs.StringVar(&cfg.Caller, "n", cfg.Caller, "caller name placed in tokens")
	fs.DurationVar(&cfg.TokenTTL, "t", cfg.TokenTTL, "token lifetime")
	fs.DurationVar(&cfg.RequestTimeout, "w", cfg.RequestTimeout, "per-request timeout")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
