// Package config loads runtime settings for the hookctl console.
//
// Sources are applied in order, later ones winning:
//
//  1. defaults (LoadDefaults)
//  2. a JSON file named with -c or -config
//  3. AUTHBRIDGE_* environment variables, shared with the server
//  4. command-line flags
//
// The signing secret is shared with the server. When it stays empty the
// console asks for it on the terminal.
package config
