package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/authbridge/internal/client/config"
	"github.com/dmitrijs2005/authbridge/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	row    map[string]any
	err    error
	calls  []string
	closed bool
}

func (f *fakeClient) Ping(context.Context) (map[string]any, error) {
	f.calls = append(f.calls, "ping")
	return map[string]any{"status": "OK"}, f.err
}

func (f *fakeClient) GetProfile(_ context.Context, id string) (map[string]any, error) {
	f.calls = append(f.calls, "get:"+id)
	return f.row, f.err
}

func (f *fakeClient) DeleteProfile(_ context.Context, id string) (map[string]any, error) {
	f.calls = append(f.calls, "delete:"+id)
	return f.row, f.err
}

func (f *fakeClient) RestoreProfile(_ context.Context, id string) (map[string]any, error) {
	f.calls = append(f.calls, "restore:"+id)
	return f.row, f.err
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func newTestApp(fc *fakeClient) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{config: cfg, secret: []byte("s"), client: fc, out: &out}, &out
}

func TestApp_GetPrintsRow(t *testing.T) {
	fc := &fakeClient{row: map[string]any{"id": "p-1", "name": "Ada", "deleted_at": nil}}
	app, out := newTestApp(fc)

	require.NoError(t, app.Get(context.Background(), "p-1"))

	assert.Equal(t, []string{"get:p-1"}, fc.calls)
	assert.Contains(t, out.String(), `"name": "Ada"`)
	assert.Contains(t, out.String(), `"deleted_at": null`)
}

func TestApp_ErrorsAreReported(t *testing.T) {
	boom := errors.New("profile not found: p-9")
	fc := &fakeClient{err: boom}
	app, out := newTestApp(fc)

	err := app.Delete(context.Background(), "p-9")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, out.String(), "error: profile not found: p-9")
}

func TestApp_PingAndRestore(t *testing.T) {
	fc := &fakeClient{row: map[string]any{"id": "p-1"}}
	app, out := newTestApp(fc)
	ctx := context.Background()

	require.NoError(t, app.Ping(ctx))
	require.NoError(t, app.Restore(ctx, "p-1"))

	assert.Equal(t, []string{"ping", "restore:p-1"}, fc.calls)
	assert.Contains(t, out.String(), `"status": "OK"`)
}

func TestApp_TokenIsVerifiable(t *testing.T) {
	app, out := newTestApp(&fakeClient{})
	app.config.Caller = "ops"
	app.config.TokenTTL = time.Minute

	require.NoError(t, app.Token(context.Background()))

	caller, err := auth.CallerFromToken(strings.TrimSpace(out.String()), []byte("s"))
	require.NoError(t, err)
	assert.Equal(t, "ops", caller)
}

func TestGetSecret_UsesTerminalReader(t *testing.T) {
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return []byte("typed"), nil }
	t.Cleanup(func() { readPassword = orig })

	var out bytes.Buffer
	secret, err := GetSecret(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("typed"), secret)
	assert.Contains(t, out.String(), "Enter signing secret")
}

func TestGetSecret_PropagatesError(t *testing.T) {
	orig := readPassword
	readPassword = func(int) ([]byte, error) { return nil, errors.New("not a terminal") }
	t.Cleanup(func() { readPassword = orig })

	_, err := GetSecret(&bytes.Buffer{})
	assert.Error(t, err)
}
