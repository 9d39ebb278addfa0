// Package health runs dependency checks and publishes the result through the
// standard gRPC health service.
package health

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/authbridge/internal/logging"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Checker reports whether one dependency is usable.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// DBChecker pings the database with SELECT 1.
type DBChecker struct {
	db *sql.DB
}

func NewDBChecker(db *sql.DB) *DBChecker {
	return &DBChecker{db: db}
}

func (c *DBChecker) Name() string { return "database" }

func (c *DBChecker) Check(ctx context.Context) error {
	var one int
	return c.db.QueryRowContext(ctx, "SELECT 1").Scan(&one)
}

// Reporter sets the serving status of the overall server ("") and of each
// named service from the combined checker result.
type Reporter struct {
	server   *grpchealth.Server
	services []string
	checkers []Checker
	interval time.Duration
	timeout  time.Duration
	logger   logging.Logger
}

func NewReporter(server *grpchealth.Server, services []string, interval time.Duration, logger logging.Logger, checkers ...Checker) *Reporter {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Reporter{
		server:   server,
		services: append([]string{""}, services...),
		checkers: checkers,
		interval: interval,
		timeout:  interval / 2,
		logger:   logger.With("module", "health"),
	}
}

// CheckOnce runs every checker and updates the status. It returns the
// resulting status.
func (r *Reporter) CheckOnce(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	for _, c := range r.checkers {
		if err := c.Check(ctx); err != nil {
			r.logger.Warn(ctx, "dependency unhealthy", "dependency", c.Name(), "error", err)
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}

	for _, svc := range r.services {
		r.server.SetServingStatus(svc, status)
	}
	return status
}

// Run checks immediately and then every interval until ctx is done, when it
// marks everything NOT_SERVING.
func (r *Reporter) Run(ctx context.Context) {
	r.CheckOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.server.Shutdown()
			return
		case <-ticker.C:
			r.CheckOnce(ctx)
		}
	}
}
