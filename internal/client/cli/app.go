package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/authbridge/internal/client/client"
	"github.com/dmitrijs2005/authbridge/internal/client/config"
	"github.com/dmitrijs2005/authbridge/internal/server/auth"
)

type hookClient interface {
	Ping(ctx context.Context) (map[string]any, error)
	GetProfile(ctx context.Context, id string) (map[string]any, error)
	DeleteProfile(ctx context.Context, id string) (map[string]any, error)
	RestoreProfile(ctx context.Context, id string) (map[string]any, error)
	Close() error
}

type App struct {
	config *config.Config
	secret []byte
	client hookClient
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {
	secret := []byte(c.SecretKey)
	if len(secret) == 0 {
		s, err := GetSecret(os.Stdout)
		if err != nil {
			return nil, err
		}
		secret = s
	}

	tokens := client.SignedTokens(c.Caller, secret, c.TokenTTL)
	apiClient, err := client.NewHookClient(c.ServerEndpointAddr, tokens, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	return &App{config: c, secret: secret, client: apiClient, out: os.Stdout}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.client.Close()

	fmt.Fprintf(a.out, "hookctl connected to %s (type 'help' for commands)\n", a.config.ServerEndpointAddr)
	runREPL(ctx, a, bufio.NewScanner(os.Stdin))
}

func (a *App) Ping(ctx context.Context) error {
	resp, err := a.client.Ping(ctx)
	if err != nil {
		return a.fail(err)
	}
	return a.print(resp)
}

func (a *App) Get(ctx context.Context, id string) error {
	return a.profileCommand(ctx, id, a.client.GetProfile)
}

func (a *App) Delete(ctx context.Context, id string) error {
	return a.profileCommand(ctx, id, a.client.DeleteProfile)
}

func (a *App) Restore(ctx context.Context, id string) error {
	return a.profileCommand(ctx, id, a.client.RestoreProfile)
}

// Token prints a caller token signed with the configured secret.
func (a *App) Token(context.Context) error {
	token, err := auth.GenerateToken(a.config.Caller, a.secret, a.config.TokenTTL)
	if err != nil {
		return a.fail(err)
	}
	_, err = fmt.Fprintln(a.out, token)
	return err
}

func (a *App) profileCommand(ctx context.Context, id string, call func(context.Context, string) (map[string]any, error)) error {
	row, err := call(ctx, id)
	if err != nil {
		return a.fail(err)
	}
	return a.print(row)
}

func (a *App) print(v map[string]any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(b))
	return err
}

func (a *App) fail(err error) error {
	fmt.Fprintf(a.out, "error: %v\n", err)
	return err
}
