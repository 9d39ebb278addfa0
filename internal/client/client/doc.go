// Package client is a thin gRPC client for the hook service. Every call
// carries a freshly signed caller token in the access_token metadata key,
// and status errors are mapped back to the shared sentinel errors.
package client
