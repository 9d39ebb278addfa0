package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/authbridge/internal/logging"
	"github.com/dmitrijs2005/authbridge/internal/server/config"
	"github.com/dmitrijs2005/authbridge/internal/server/notify"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.DatabaseDSN = "sqlite:file:" + uuid.NewString() + "?mode=memory&cache=shared"
	c.LogLevel = "error"
	return c
}

func TestNewBus(t *testing.T) {
	ctx := context.Background()
	c := testConfig()

	c.BusBackend = config.BusLog
	bus, err := newBus(ctx, c, logging.Nop{})
	require.NoError(t, err)
	assert.IsType(t, &notify.LogBus{}, bus)

	c.BusBackend = config.BusRedis
	bus, err = newBus(ctx, c, logging.Nop{})
	require.NoError(t, err)
	assert.IsType(t, &notify.RedisBus{}, bus)
	assert.NoError(t, bus.(*notify.RedisBus).Close())

	c.BusBackend = config.BusS3
	bus, err = newBus(ctx, c, logging.Nop{})
	require.NoError(t, err)
	assert.IsType(t, &notify.S3Bus{}, bus)

	c.BusBackend = "carrier-pigeon"
	_, err = newBus(ctx, c, logging.Nop{})
	assert.Error(t, err)
}

func TestNewApp_InvalidConfig(t *testing.T) {
	c := testConfig()
	c.VerificationURL = "not absolute"

	_, err := NewApp(context.Background(), c)
	assert.Error(t, err)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop")
	}
}
