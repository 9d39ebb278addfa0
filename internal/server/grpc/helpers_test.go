package grpc

import (
	"context"
	"net"
	"sync"
	"testing"

	"github.com/dmitrijs2005/authbridge/internal/logging"
	"github.com/dmitrijs2005/authbridge/internal/server/authengine"
	"github.com/dmitrijs2005/authbridge/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakeHooks struct {
	mu sync.Mutex

	createdCtx authengine.RegistrationContext
	createdID  any
	createdErr error

	magicToken authengine.MagicLinkToken
	magicErr   error

	verifyCtx   authengine.RegistrationContext
	verifyToken authengine.MagicLinkToken
	verifyErr   error
}

func (f *fakeHooks) Execute(_ context.Context, rc authengine.RegistrationContext, id any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdCtx, f.createdID = rc, id
	return f.createdErr
}

type magicHook struct{ *fakeHooks }

func (h magicHook) Send(_ context.Context, token authengine.MagicLinkToken) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.magicToken = token
	return h.magicErr
}

type verifyHook struct{ *fakeHooks }

func (h verifyHook) Send(_ context.Context, rc authengine.RegistrationContext, token authengine.MagicLinkToken) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.verifyCtx, h.verifyToken = rc, token
	return h.verifyErr
}

func (f *fakeHooks) hooks() Hooks {
	return Hooks{UserCreated: f, SendMagicLink: magicHook{f}, SendVerification: verifyHook{f}}
}

type fakeProfiles struct {
	profile *models.Profile
	err     error
	calls   []string
}

func (f *fakeProfiles) op(name string) func(context.Context, string) (*models.Profile, error) {
	return func(_ context.Context, id string) (*models.Profile, error) {
		f.calls = append(f.calls, name+":"+id)
		return f.profile, f.err
	}
}

func (f *fakeProfiles) Get(ctx context.Context, id string) (*models.Profile, error) {
	return f.op("get")(ctx, id)
}

func (f *fakeProfiles) Delete(ctx context.Context, id string) (*models.Profile, error) {
	return f.op("delete")(ctx, id)
}

func (f *fakeProfiles) Restore(ctx context.Context, id string) (*models.Profile, error) {
	return f.op("restore")(ctx, id)
}

// startBufconn serves s in memory and returns a connected client.
func startBufconn(t *testing.T, s *GRPCServer) *grpc.ClientConn {
	t.Helper()
	lis := bufconn.Listen(1 << 20)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("grpc.NewClient error: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})
	return conn
}
