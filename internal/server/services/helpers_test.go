package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/dmitrijs2005/authbridge/internal/common"
	"github.com/dmitrijs2005/authbridge/internal/logging"
	"github.com/dmitrijs2005/authbridge/internal/server/authengine"
	"github.com/dmitrijs2005/authbridge/internal/server/models"
	"github.com/dmitrijs2005/authbridge/internal/server/notify"
	"github.com/dmitrijs2005/authbridge/internal/server/notify/notifytest"
	"github.com/dmitrijs2005/authbridge/internal/server/repositories/repomanager"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testVerifyURL = "http://localhost:8088/magic-link/verify"

// newSQLiteDB opens an isolated in-memory database with the schema applied.
func newSQLiteDB(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	m := repomanager.NewSQLiteRepositoryManager()
	require.NoError(t, m.RunMigrations(context.Background(), db))
	return db, m
}

func newRecorderDispatcher() (*notify.Dispatcher, *notifytest.Recorder) {
	rec := &notifytest.Recorder{}
	return notify.NewDispatcher(rec, nil, 0, logging.Nop{}), rec
}

type fakeUsers struct {
	mu      sync.Mutex
	users   map[string]authengine.User
	findErr error
	updErr  error
	updated []authengine.User
	lookups []string
}

func newFakeUsers(users ...authengine.User) *fakeUsers {
	f := &fakeUsers{users: map[string]authengine.User{}}
	for _, u := range users {
		f.users[authengine.DisplayID(u.ID())] = u
	}
	return f
}

func (f *fakeUsers) FindUserByID(_ context.Context, id string) (authengine.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups = append(f.lookups, id)
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsers) Update(_ context.Context, u authengine.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updErr != nil {
		return f.updErr
	}
	f.updated = append(f.updated, u)
	return nil
}

type fakeProfiles struct {
	profiles  map[string]*models.Profile
	createErr error
	created   []string
	findErr   error
}

func (f *fakeProfiles) Create(_ context.Context, name string) (*models.Profile, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, name)
	p := &models.Profile{ID: "p-" + name, Name: name}
	if f.profiles == nil {
		f.profiles = map[string]*models.Profile{}
	}
	f.profiles[p.ID] = p
	return p, nil
}

func (f *fakeProfiles) FindByID(_ context.Context, id string) (*models.Profile, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	p, ok := f.profiles[id]
	if !ok || p.IsDeleted() {
		return nil, common.ErrorNotFound
	}
	return p, nil
}

func registration(email, name string) authengine.RegistrationContext {
	return authengine.NewRegistrationContext(map[string]any{
		authengine.KeyEmail:    email,
		authengine.KeyClientID: "web",
		authengine.KeyAdditionalData: map[string]any{
			authengine.KeyDisplayName: name,
		},
	})
}
