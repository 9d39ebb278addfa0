// Package server wires the storage, delivery bus, hooks and gRPC transport
// together and runs them until the process is told to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/authbridge/internal/logging"
	"github.com/dmitrijs2005/authbridge/internal/server/config"
	"github.com/dmitrijs2005/authbridge/internal/server/health"
	"github.com/dmitrijs2005/authbridge/internal/server/notify"
	"github.com/dmitrijs2005/authbridge/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/authbridge/internal/server/services"
	"github.com/dmitrijs2005/authbridge/internal/telemetry"
	grpchealth "google.golang.org/grpc/health"

	gs "github.com/dmitrijs2005/authbridge/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	bus      notify.Bus
	server   *gs.GRPCServer
	reporter *health.Reporter
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	rm, dsn, err := repomanager.ForDSN(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	db, err := rm.Open(dsn)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	bus, err := newBus(ctx, c, logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bus init error: %w", err)
	}
	dispatcher := notify.NewDispatcher(bus, c.Channels, c.BusTimeout, logger)

	profiles := services.NewProfileService(db, rm, logger)
	users := rm.Users(db)
	hooks := gs.Hooks{
		UserCreated:      services.NewUserRegistration(profiles, users, logger),
		SendMagicLink:    services.NewMagicLinkSender(users, rm.Profiles(db), dispatcher, c.VerificationURL, logger),
		SendVerification: services.NewVerificationSender(dispatcher, c.VerificationURL, logger),
	}

	hs := grpchealth.NewServer()
	reporter := health.NewReporter(hs, []string{gs.ServiceName}, c.HealthInterval, logger, health.NewDBChecker(db))
	srv := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, hooks, profiles, hs, c.SecretKey)

	return &App{config: c, logger: logger, db: db, bus: bus, server: srv, reporter: reporter}, nil
}

// newBus builds the delivery bus selected by the configuration.
func newBus(ctx context.Context, c *config.Config, logger logging.Logger) (notify.Bus, error) {
	switch c.BusBackend {
	case config.BusRedis:
		return notify.NewRedisBus(notify.RedisConfig{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Stream:   c.RedisStream,
		}), nil
	case config.BusS3:
		return notify.NewS3Bus(ctx, notify.S3Config{
			User:     c.S3RootUser,
			Password: c.S3RootPassword,
			Bucket:   c.S3Bucket,
			Region:   c.S3Region,
			Endpoint: c.S3BaseEndpoint,
			Prefix:   c.S3Prefix,
		})
	case config.BusLog:
		return notify.NewLogBus(logger), nil
	default:
		return nil, fmt.Errorf("unknown bus backend %q", c.BusBackend)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a termination signal arrives or the
// gRPC server fails, then releases the database and bus.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	shutdownTracing, err := telemetry.Setup(ctx, app.config.OTLPEndpoint, app.config.ServiceName)
	if err != nil {
		app.logger.Warn(ctx, "tracing disabled", "error", err)
	}

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.reporter.Run(ctx)
	}()

	wg.Wait()

	app.close(context.WithoutCancel(ctx), shutdownTracing)
}

func (app *App) close(ctx context.Context, shutdownTracing func(context.Context) error) {
	if c, ok := app.bus.(io.Closer); ok {
		if err := c.Close(); err != nil {
			app.logger.Error(ctx, "bus close failed", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close failed", "error", err)
	}
	if err := shutdownTracing(ctx); err != nil {
		app.logger.Error(ctx, "tracing shutdown failed", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
